package report

import (
	"io"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/luashield/luashield/internal/rules"
	"github.com/luashield/luashield/internal/types"
)

func sevToLevel(s types.Severity) string {
	switch s {
	case types.SevHigh:
		return "error"
	case types.SevMed:
		return "warning"
	}
	return "note"
}

// WriteSARIF writes findings as SARIF 2.1.0. The path is attributed to
// every result; findings without a resolved line carry no region.
func WriteSARIF(w io.Writer, path string, findings []types.Finding) error {
	rep, err := sarif.New(sarif.Version210)
	if err != nil {
		return err
	}
	run := sarif.NewRunWithInformationURI("luashield", "https://github.com/luashield/luashield")
	for _, r := range rules.All() {
		run.AddRule(string(r.ID())).WithDescription(r.Doc())
	}
	for _, f := range findings {
		res := run.CreateResultForRule(string(f.Pattern)).
			WithLevel(sevToLevel(f.Severity)).
			WithMessage(sarif.NewTextMessage(f.Description))
		loc := sarif.NewPhysicalLocation().
			WithArtifactLocation(sarif.NewSimpleArtifactLocation(path))
		if f.Line != nil {
			loc.WithRegion(sarif.NewRegion().WithStartLine(*f.Line))
		}
		res.AddLocation(sarif.NewLocation().WithPhysicalLocation(loc))
	}
	rep.AddRun(run)
	return rep.PrettyWrite(w)
}
