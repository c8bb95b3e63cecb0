package pattern

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is one decoded mode configuration document.
type File struct {
	// Mode is the mode name the document defines.
	Mode string

	// Root is the declarative (unexpanded) pattern tree.
	Root *Group
}

// DecodeFile parses a mode configuration document.
//
// The format is a declarative tree. Every group has an `order` list naming
// its members by priority and a `members` map holding their definitions.
// A member is one of:
//   - a terminal pattern: {p_type, p_subtype, pattern, flags, comment}
//   - a nested group: {order, members}
//   - a blueprint: {pattern_structure: {beginning, ending, flags},
//     pattern_texts: {subtype_name: marker_text, ...}}
//
// pattern_texts declaration order is preserved: it determines the expansion
// order of the blueprint's variants.
func DecodeFile(data []byte) (*File, error) {
	var doc struct {
		Mode string    `yaml:"mode"`
		Root yaml.Node `yaml:"root"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse mode configuration: %w", err)
	}
	if doc.Mode == "" {
		return nil, &ConfigurationError{Mode: "?", Reason: "missing mode name"}
	}
	if doc.Root.Kind == 0 {
		return nil, &ConfigurationError{Mode: doc.Mode, Reason: "missing root group"}
	}

	root, err := decodeGroup(doc.Mode, "root", &doc.Root)
	if err != nil {
		return nil, err
	}
	return &File{Mode: doc.Mode, Root: root}, nil
}

func decodeGroup(mode, name string, n *yaml.Node) (*Group, error) {
	var raw struct {
		Order   []string  `yaml:"order"`
		Members yaml.Node `yaml:"members"`
	}
	if err := n.Decode(&raw); err != nil {
		return nil, &ConfigurationError{Mode: mode, Reason: "group " + name + " is malformed", Err: err}
	}
	if len(raw.Order) == 0 {
		return nil, &ConfigurationError{Mode: mode, Reason: "group " + name + " has an empty order list"}
	}

	g := &Group{Name: name, Members: make([]Node, 0, len(raw.Order))}
	for _, memberName := range raw.Order {
		memberNode := mappingValue(&raw.Members, memberName)
		if memberNode == nil {
			return nil, &ConfigurationError{
				Mode:   mode,
				Reason: fmt.Sprintf("group %s orders %q but does not define it", name, memberName),
			}
		}
		member, err := decodeMember(mode, memberName, memberNode)
		if err != nil {
			return nil, err
		}
		g.Members = append(g.Members, member)
	}
	return g, nil
}

// decodeMember classifies a member node by its keys: `order` makes it a
// group, `pattern_structure` a blueprint, and `pattern` a terminal pattern.
func decodeMember(mode, name string, n *yaml.Node) (Node, error) {
	switch {
	case mappingValue(n, "order") != nil:
		return decodeGroup(mode, name, n)
	case mappingValue(n, "pattern_structure") != nil:
		return decodeBlueprint(mode, name, n)
	case mappingValue(n, "pattern") != nil:
		return decodeLeaf(mode, name, n)
	default:
		return nil, &ConfigurationError{
			Mode:   mode,
			Reason: fmt.Sprintf("member %q is neither a pattern, a group, nor a blueprint", name),
		}
	}
}

func decodeLeaf(mode, name string, n *yaml.Node) (*Spec, error) {
	var raw struct {
		PType    string   `yaml:"p_type"`
		PSubtype string   `yaml:"p_subtype"`
		Pattern  string   `yaml:"pattern"`
		Flags    []string `yaml:"flags"`
		Comment  string   `yaml:"comment"`
	}
	if err := n.Decode(&raw); err != nil {
		return nil, &ConfigurationError{Mode: mode, Subtype: name, Reason: "pattern entry is malformed", Err: err}
	}

	flags, err := parseFlags(mode, raw.PSubtype, raw.Flags)
	if err != nil {
		return nil, err
	}
	subtype := raw.PSubtype
	if subtype == "" {
		subtype = name
	}
	return &Spec{
		Subtype: subtype,
		Type:    TopLevelType(raw.PType),
		Source:  raw.Pattern,
		Flags:   flags,
		Comment: raw.Comment,
	}, nil
}

func decodeBlueprint(mode, name string, n *yaml.Node) (*Blueprint, error) {
	var raw struct {
		Structure struct {
			Beginning string   `yaml:"beginning"`
			Ending    string   `yaml:"ending"`
			Flags     []string `yaml:"flags"`
		} `yaml:"pattern_structure"`
		Texts yaml.Node `yaml:"pattern_texts"`
	}
	if err := n.Decode(&raw); err != nil {
		return nil, &ConfigurationError{Mode: mode, Subtype: name, Reason: "blueprint entry is malformed", Err: err}
	}

	flags, err := parseFlags(mode, name, raw.Structure.Flags)
	if err != nil {
		return nil, err
	}

	b := &Blueprint{
		Beginning: raw.Structure.Beginning,
		Ending:    raw.Structure.Ending,
		Flags:     flags,
	}

	// Walk the mapping node directly so declaration order survives.
	if raw.Texts.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(raw.Texts.Content); i += 2 {
			b.Variants = append(b.Variants, Variant{
				Subtype: raw.Texts.Content[i].Value,
				Marker:  raw.Texts.Content[i+1].Value,
			})
		}
	}
	return b, nil
}

func parseFlags(mode, subtype string, names []string) (Flags, error) {
	var f Flags
	for _, name := range names {
		switch strings.ToLower(name) {
		case "multiline":
			f.Multiline = true
		case "dotall":
			f.DotAll = true
		case "ignorecase":
			f.IgnoreCase = true
		default:
			return Flags{}, &ConfigurationError{
				Mode:    mode,
				Subtype: subtype,
				Reason:  fmt.Sprintf("unknown flag %q", name),
			}
		}
	}
	return f, nil
}

// mappingValue returns the value node for key in a mapping node, resolving
// aliases, or nil when the key is absent or n is not a mapping.
func mappingValue(n *yaml.Node, key string) *yaml.Node {
	if n == nil {
		return nil
	}
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}
