package render

import "regexp"

// Specialized renderers extract structured values from well-known ORCA
// blocks. Extraction is best-effort and purely decorative: the values ride
// along as data attributes while the raw text stays untouched.

var (
	finalEnergyRe = regexp.MustCompile(`FINAL SINGLE POINT ENERGY\s+(-?\d+\.\d+)`)
	versionRe     = regexp.MustCompile(`Program Version\s+(\S+)`)
)

// FinalEnergy extracts the total energy in Hartree from an ORCA final
// single point energy banner.
func FinalEnergy() Renderer {
	return WithCaption(func(text string) map[string]string {
		m := finalEnergyRe.FindStringSubmatch(text)
		if m == nil {
			return nil
		}
		return map[string]string{"energy-eh": m[1]}
	})
}

// ProgramVersion extracts the version string from an ORCA program header.
func ProgramVersion() Renderer {
	return WithCaption(func(text string) map[string]string {
		m := versionRe.FindStringSubmatch(text)
		if m == nil {
			return nil
		}
		return map[string]string{"version": m[1]}
	})
}
