package mode

import (
	_ "embed"
	"fmt"

	"github.com/chemscan/chemscan/pkg/pattern"
	"github.com/chemscan/chemscan/pkg/render"
)

//go:embed modes/orca.yaml
var orcaYAML []byte

//go:embed modes/gpaw.yaml
var gpawYAML []byte

//nolint:gochecknoinits // Built-in modes register themselves at startup
func init() {
	mustRegister(orcaYAML, orcaRenderers())
	mustRegister(gpawYAML, nil)
}

// mustRegister installs an embedded mode into the default registry. The
// embedded configurations ship with the binary, so a failure here is a
// programming error.
func mustRegister(data []byte, renderers *render.Table) {
	f, err := pattern.DecodeFile(data)
	if err != nil {
		panic(fmt.Sprintf("built-in mode: %v", err))
	}
	if err := DefaultRegistry.RegisterFile(f, renderers); err != nil {
		panic(fmt.Sprintf("built-in mode %q: %v", f.Mode, err))
	}
}

func orcaRenderers() *render.Table {
	return render.NewTable().
		With("BlockOrcaFinalSinglePointEnergy", render.FinalEnergy()).
		With("BlockOrcaVersion", render.ProgramVersion())
}
