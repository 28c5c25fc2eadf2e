package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/njchilds90/airy"
)

// Text renders every derivation step as styled terminal text.
func Text(d *airy.Derivation) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Airy stress function in polar coordinates"))
	sb.WriteString("\n\n")
	for i, st := range d.Steps {
		sb.WriteString(fmt.Sprintf("%s %s\n", stepStyle.Render(fmt.Sprintf("%2d. %s", i+1, st.Title)), nameStyle.Render("["+st.Name+"]")))
		sb.WriteString(exprStyle.Render(st.Text))
		sb.WriteString("\n")
		if st.Note != "" {
			sb.WriteString(noteStyle.Render(st.Note))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// VesselText summarises a solved vessel and an optional sample table.
func VesselText(sol *airy.VesselSolution, pts []airy.StressPoint) string {
	v := sol.Vessel
	rows := []string{
		row("inner a", v.Inner.String()),
		row("outer b", v.Outer.String()),
		row("p_in", v.PIn.String()),
		row("p_out", v.POut.String()),
		row("A", sol.A.String()),
		row("C", sol.C.String()),
		row("σrr", sol.Stress.RR.String()),
		row("σθθ", sol.Stress.TT.String()),
	}
	out := panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	if len(pts) == 0 {
		return out + "\n"
	}
	return out + "\n\n" + Table(pts)
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}

// Table formats sampled stresses as fixed-width columns.
func Table(pts []airy.StressPoint) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%10s %12s %12s %12s %12s %12s\n", "r", "σrr", "σθθ", "σ1", "σ2", "von Mises"))
	for _, p := range pts {
		sb.WriteString(fmt.Sprintf("%10.4f %12.4f %12.4f %12.4f %12.4f %12.4f\n", p.R, p.RR, p.TT, p.Sigma1, p.Sigma2, p.VonMises))
	}
	return sb.String()
}
