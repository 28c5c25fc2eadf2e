package report

import (
	"fmt"
	"strings"

	"github.com/njchilds90/airy"
)

var latexEscaper = strings.NewReplacer(`\`, `\textbackslash{}`, "_", `\_`, "&", `\&`, "%", `\%`, "#", `\#`, "$", `\$`, "{", `\{`, "}", `\}`)

// LaTeX renders a standalone document with one display equation per step.
func LaTeX(d *airy.Derivation) string {
	var sb strings.Builder
	sb.WriteString("\\documentclass{article}\n")
	sb.WriteString("\\usepackage{amsmath}\n")
	sb.WriteString("\\allowdisplaybreaks\n")
	sb.WriteString("\\begin{document}\n")
	sb.WriteString("\\section*{Airy stress function in polar coordinates}\n\n")
	for _, st := range d.Steps {
		sb.WriteString(fmt.Sprintf("\\paragraph{%s}", latexEscaper.Replace(st.Title)))
		if st.Note != "" {
			sb.WriteString(" " + latexEscaper.Replace(st.Note))
		}
		sb.WriteString("\n\\begin{equation*}\n")
		sb.WriteString(st.LaTeX)
		sb.WriteString("\n\\end{equation*}\n\n")
	}
	sb.WriteString("\\end{document}\n")
	return sb.String()
}
