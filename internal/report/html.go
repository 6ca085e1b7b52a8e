package report

import (
	"fmt"
	"html/template"
	"io"
	"sort"

	"github.com/DurdagiLab/dynophore-analysis/model"
)

// summaryTemplate renders the analysis report: hypothesis groups bucketed by
// signature length, the frame-wise mapping table, and the run audit footer.
const summaryTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Pharmacophore Feature Summary</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #999; padding: 4px 10px; text-align: left; }
footer { margin-top: 2em; color: #555; font-size: 0.85em; }
</style>
</head>
<body>
<h2>Generated Pharmacophore Hypotheses</h2>
{{- range .Sections }}
<h3>{{ .Length }}-Feature Combinations</h3>
<ul>
{{- range .Entries }}
<li><b>{{ .Signature }}</b>: {{ .Count }} frames ({{ .Percent }}%), Lowest RMSD = {{ .LowestRMSD }} at frame {{ .Frame }}.</li>
{{- end }}
</ul>
{{- end }}
<h2>Frame-wise Hypothesis Mapping</h2>
<table>
<tr><th>Frame</th><th>RMSD</th><th>Features</th></tr>
{{- range .Frames }}
<tr><td>{{ .FrameID }}</td><td>{{ .RMSD }}</td><td>{{ .Signature }}</td></tr>
{{- end }}
</table>
<footer>
Run {{ .RunID }} &mdash; {{ .Aggregated }}/{{ .Total }} frames aggregated,
{{ .DroppedNoFeatures }} dropped without features, {{ .DroppedNoRMSD }} dropped without RMSD,
{{ .MalformedRows }} malformed feature rows, {{ .SkippedRMSDRows }} skipped RMSD rows.
</footer>
</body>
</html>
`

var reportTemplate = template.Must(template.New("summary").Parse(summaryTemplate))

type summaryEntry struct {
	Signature  string
	Count      int
	Percent    string
	LowestRMSD string
	Frame      int
}

type summarySection struct {
	Length  int
	Entries []summaryEntry
}

type frameRow struct {
	FrameID   int
	RMSD      string
	Signature string
}

type summaryView struct {
	Sections          []summarySection
	Frames            []frameRow
	RunID             string
	Total             int
	Aggregated        int
	DroppedNoFeatures int
	DroppedNoRMSD     int
	MalformedRows     int
	SkippedRMSDRows   int
}

// writeHTMLReport renders the summary report for one finished run. Groups
// with signatures shorter than minLength are left out of the per-length
// summary (they still appear in the frame mapping).
func writeHTMLReport(w io.Writer, result *model.AnalysisResult, minLength int) error {
	return reportTemplate.Execute(w, buildSummaryView(result, minLength))
}

func buildSummaryView(result *model.AnalysisResult, minLength int) summaryView {
	byLength := make(map[int][]summaryEntry)
	for _, group := range result.Groups {
		length := group.Signature.Len()
		if length < minLength {
			continue
		}
		byLength[length] = append(byLength[length], summaryEntry{
			Signature:  group.Signature.String(),
			Count:      group.Count,
			Percent:    fmt.Sprintf("%.1f", group.Percent),
			LowestRMSD: fmt.Sprintf("%.3f", group.Representative.RMSD),
			Frame:      group.Representative.FrameID,
		})
	}

	lengths := make([]int, 0, len(byLength))
	for length := range byLength {
		lengths = append(lengths, length)
	}
	sort.Ints(lengths)

	view := summaryView{
		RunID:             result.Run.RunID,
		Total:             result.Run.TotalFrames,
		Aggregated:        result.Run.AggregatedFrames,
		DroppedNoFeatures: result.Run.DroppedNoFeatures,
		DroppedNoRMSD:     result.Run.DroppedNoRMSD,
		MalformedRows:     result.Run.MalformedRows,
		SkippedRMSDRows:   result.Run.SkippedRMSDRows,
	}
	for _, length := range lengths {
		view.Sections = append(view.Sections, summarySection{Length: length, Entries: byLength[length]})
	}
	for _, rec := range result.Frames {
		view.Frames = append(view.Frames, frameRow{
			FrameID:   rec.FrameID,
			RMSD:      fmt.Sprintf("%.3f", rec.RMSD),
			Signature: rec.Signature.String(),
		})
	}
	return view
}
