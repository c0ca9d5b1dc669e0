package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/agbru/limbkern/internal/format"
	"github.com/agbru/limbkern/internal/ui"
)

// PrintResults writes the calibration summary table and the chosen
// threshold to out.
func PrintResults(out io.Writer, r Result) {
	t := ui.GetCurrentTheme()
	fmt.Fprintf(out, "\n--- Calibration Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %s │ %s │ %s │ %s\n",
		t.Paint(t.Underline, "Limbs"), t.Paint(t.Underline, "Schoolbook"),
		t.Paint(t.Underline, "Strassen"), t.Paint(t.Underline, "Speedup"))
	fmt.Fprintf(tw, "  %s\n", strings.Repeat("─", 52))
	for _, p := range r.Probes {
		marker := ""
		if r.Crossover && p.Size == r.Threshold {
			marker = " " + t.Paint(t.Success, "(threshold)")
		}
		if p.Err != nil {
			fmt.Fprintf(tw, "  %s │ %s │ %s │ %s\n",
				t.Paint(t.Primary, fmt.Sprintf("%6d", p.Size)),
				t.Paint(t.Error, "N/A"), t.Paint(t.Error, "N/A"), t.Paint(t.Error, p.Err.Error()))
			continue
		}
		fmt.Fprintf(tw, "  %s │ %s │ %s │ %s%s\n",
			t.Paint(t.Primary, fmt.Sprintf("%6d", p.Size)),
			format.FormatExecutionDuration(p.Schoolbook),
			format.FormatExecutionDuration(p.Strassen),
			t.Paint(t.Warning, fmt.Sprintf("%.2fx", p.Speedup())),
			marker)
	}
	tw.Flush()

	if r.Crossover {
		fmt.Fprintf(out, "%sStrassen threshold%s: %s limbs\n", t.Success, t.Reset, t.Paint(t.Warning, fmt.Sprint(r.Threshold)))
		return
	}
	fmt.Fprintf(out, "%sNo crossover observed%s: Strassen threshold at least %s limbs\n",
		t.Warning, t.Reset, t.Paint(t.Warning, fmt.Sprint(r.Threshold)))
}
