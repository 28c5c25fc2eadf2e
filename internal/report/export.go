package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/njchilds90/airy"
)

// VesselDoc is the exported form of a solved vessel.
type VesselDoc struct {
	Inner   string             `json:"a" yaml:"a"`
	Outer   string             `json:"b" yaml:"b"`
	PIn     string             `json:"p_in" yaml:"p_in"`
	POut    string             `json:"p_out" yaml:"p_out"`
	A       string             `json:"A" yaml:"A"`
	C       string             `json:"C" yaml:"C"`
	RR      string             `json:"sigma_rr" yaml:"sigma_rr"`
	TT      string             `json:"sigma_thetatheta" yaml:"sigma_thetatheta"`
	RT      string             `json:"sigma_rtheta" yaml:"sigma_rtheta"`
	Samples []airy.StressPoint `json:"samples,omitempty" yaml:"samples,omitempty"`
}

func NewVesselDoc(sol *airy.VesselSolution, pts []airy.StressPoint) VesselDoc {
	v := sol.Vessel
	return VesselDoc{
		Inner:   v.Inner.String(),
		Outer:   v.Outer.String(),
		PIn:     v.PIn.String(),
		POut:    v.POut.String(),
		A:       sol.A.String(),
		C:       sol.C.String(),
		RR:      sol.Stress.RR.String(),
		TT:      sol.Stress.TT.String(),
		RT:      sol.Stress.RT.String(),
		Samples: pts,
	}
}

// Write encodes v as indented JSON or as YAML.
func Write(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported export format %q", format)
}
