package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/DurdagiLab/dynophore-analysis/model"
)

// palette is a qualitative color set for chart wedges and bars (cycled when
// there are more hypotheses than colors).
var palette = []string{
	"#66c2a5", "#fc8d62", "#8da0cb", "#e78ac3", "#a6d854",
	"#ffd92f", "#e5c494", "#b3b3b3", "#7fc97f", "#beaed4",
}

type chartEntry struct {
	Label   string
	Percent float64
}

// chartEntries picks the top qualifying hypotheses for plotting: signatures
// of at least minLength features, highest percentage first, at most topN.
func chartEntries(groups []model.HypothesisGroup, minLength, topN int) []chartEntry {
	var entries []chartEntry
	for _, group := range groups {
		if group.Signature.Len() < minLength {
			continue
		}
		entries = append(entries, chartEntry{Label: group.Signature.String(), Percent: group.Percent})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Percent > entries[j].Percent
	})
	if len(entries) > topN {
		entries = entries[:topN]
	}
	return entries
}

// barChartSVG renders a horizontal bar chart of hypothesis frequencies.
func barChartSVG(entries []chartEntry, title string) string {
	const (
		width     = 720
		barHeight = 22
		barGap    = 10
		marginX   = 160
		marginTop = 48
	)
	height := marginTop + len(entries)*(barHeight+barGap) + 20

	maxPercent := 0.0
	for _, e := range entries {
		if e.Percent > maxPercent {
			maxPercent = e.Percent
		}
	}
	if maxPercent == 0 {
		maxPercent = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" font-family="sans-serif">`+"\n", width, height)
	fmt.Fprintf(&b, `<text x="%d" y="24" font-size="16" font-weight="bold">%s</text>`+"\n", width/2-len(title)*4, escape(title))

	for i, e := range entries {
		y := marginTop + i*(barHeight+barGap)
		barWidth := (e.Percent / maxPercent) * float64(width-marginX-120)
		color := palette[i%len(palette)]
		fmt.Fprintf(&b, `<text x="%d" y="%d" font-size="12" text-anchor="end">%s</text>`+"\n",
			marginX-8, y+barHeight-6, escape(e.Label))
		fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%.1f" height="%d" fill="%s"/>`+"\n",
			marginX, y, barWidth, barHeight, color)
		fmt.Fprintf(&b, `<text x="%.1f" y="%d" font-size="12">%.1f%%</text>`+"\n",
			float64(marginX)+barWidth+6, y+barHeight-6, e.Percent)
	}

	b.WriteString("</svg>\n")
	return b.String()
}

// donutChartSVG renders a donut chart of hypothesis frequencies. Wedge sizes
// are proportional to each entry's share of the plotted total.
func donutChartSVG(entries []chartEntry, title string) string {
	const (
		size   = 520
		center = size / 2
		radius = 170.0
		hole   = 95.0
	)

	total := 0.0
	for _, e := range entries {
		total += e.Percent
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" font-family="sans-serif">`+"\n", size, size+40)
	fmt.Fprintf(&b, `<text x="%d" y="24" font-size="16" font-weight="bold" text-anchor="middle">%s</text>`+"\n", center, escape(title))

	if total == 0 || len(entries) == 0 {
		b.WriteString("</svg>\n")
		return b.String()
	}

	// A single wedge would degenerate into a zero-length arc; draw full rings.
	if len(entries) == 1 {
		fmt.Fprintf(&b, `<circle cx="%d" cy="%d" r="%.1f" fill="%s"/>`+"\n", center, center+40, radius, palette[0])
		fmt.Fprintf(&b, `<circle cx="%d" cy="%d" r="%.1f" fill="white"/>`+"\n", center, center+40, hole)
		fmt.Fprintf(&b, `<text x="%d" y="%d" font-size="12" text-anchor="middle">%s (%.1f%%)</text>`+"\n",
			center, center+44, escape(entries[0].Label), entries[0].Percent)
		b.WriteString("</svg>\n")
		return b.String()
	}

	cy := center + 40
	angle := -math.Pi / 2 // start at 12 o'clock
	for i, e := range entries {
		sweep := (e.Percent / total) * 2 * math.Pi
		x1 := float64(center) + radius*math.Cos(angle)
		y1 := float64(cy) + radius*math.Sin(angle)
		angle += sweep
		x2 := float64(center) + radius*math.Cos(angle)
		y2 := float64(cy) + radius*math.Sin(angle)

		largeArc := 0
		if sweep > math.Pi {
			largeArc = 1
		}

		color := palette[i%len(palette)]
		fmt.Fprintf(&b, `<path d="M %d %d L %.1f %.1f A %.1f %.1f 0 %d 1 %.1f %.1f Z" fill="%s"/>`+"\n",
			center, cy, x1, y1, radius, radius, largeArc, x2, y2, color)

		mid := angle - sweep/2
		lx := float64(center) + (radius+24)*math.Cos(mid)
		ly := float64(cy) + (radius+24)*math.Sin(mid)
		anchor := "start"
		if math.Cos(mid) < 0 {
			anchor = "end"
		}
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" font-size="11" text-anchor="%s">%s (%.1f%%)</text>`+"\n",
			lx, ly, anchor, escape(e.Label), e.Percent)
	}

	// Punch the hole last so wedges never overlap it.
	fmt.Fprintf(&b, `<circle cx="%d" cy="%d" r="%.1f" fill="white"/>`+"\n", center, cy, hole)

	b.WriteString("</svg>\n")
	return b.String()
}

func escape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
