package pattern

// Expand turns a declarative tree into an expanded, compiled tree. Every
// blueprint is replaced in place by one Spec per variant (in declaration
// order), every leaf pattern is compiled, and subtype names are checked for
// uniqueness across the whole mode.
//
// Expansion is pure: the input tree is not modified, and the same input
// always produces the same output structure.
func Expand(modeName string, root *Group) (*Group, error) {
	seen := make(map[string]bool)
	return expandGroup(modeName, root, seen)
}

func expandGroup(modeName string, g *Group, seen map[string]bool) (*Group, error) {
	out := &Group{Name: g.Name, Members: make([]Node, 0, len(g.Members))}

	for _, m := range g.Members {
		switch n := m.(type) {
		case *Spec:
			spec, err := expandLeaf(modeName, n, seen)
			if err != nil {
				return nil, err
			}
			out.Members = append(out.Members, spec)

		case *Group:
			sub, err := expandGroup(modeName, n, seen)
			if err != nil {
				return nil, err
			}
			out.Members = append(out.Members, sub)

		case *Blueprint:
			specs, err := expandBlueprint(modeName, n, seen)
			if err != nil {
				return nil, err
			}
			for _, s := range specs {
				out.Members = append(out.Members, s)
			}
		}
	}

	return out, nil
}

func expandLeaf(modeName string, s *Spec, seen map[string]bool) (*Spec, error) {
	if err := claimSubtype(modeName, s.Subtype, seen); err != nil {
		return nil, err
	}
	if !s.Type.IsValid() {
		return nil, &ConfigurationError{
			Mode:    modeName,
			Subtype: s.Subtype,
			Reason:  "top-level type must be Block or Spacer, got " + string(s.Type),
		}
	}

	re, err := s.Flags.Compile(s.Source)
	if err != nil {
		return nil, &ConfigurationError{
			Mode:    modeName,
			Subtype: s.Subtype,
			Reason:  "pattern does not compile",
			Err:     err,
		}
	}

	spec := *s
	spec.Regexp = re
	return &spec, nil
}

// expandBlueprint builds one Spec per variant. Marker texts are inserted raw
// between the blueprint's beginning and ending fragments; they are regex
// fragments themselves, so literal parentheses and the like must be escaped
// in the configuration.
func expandBlueprint(modeName string, b *Blueprint, seen map[string]bool) ([]*Spec, error) {
	if len(b.Variants) == 0 {
		return nil, &ConfigurationError{
			Mode:   modeName,
			Reason: "blueprint has no variants",
		}
	}

	specs := make([]*Spec, 0, len(b.Variants))
	for _, v := range b.Variants {
		leaf := &Spec{
			Subtype: v.Subtype,
			Type:    TypeBlock,
			Source:  b.Beginning + v.Marker + b.Ending,
			Flags:   b.Flags,
		}
		spec, err := expandLeaf(modeName, leaf, seen)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func claimSubtype(modeName, subtype string, seen map[string]bool) error {
	if subtype == "" {
		return &ConfigurationError{Mode: modeName, Reason: "pattern has an empty subtype name"}
	}
	if seen[subtype] {
		return &ConfigurationError{
			Mode:    modeName,
			Subtype: subtype,
			Reason:  "subtype declared more than once",
		}
	}
	seen[subtype] = true
	return nil
}
