package export

import (
	"bytes"
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/randocore/randocore/pkg/rando"
)

// SVGOptions configures the placement overview rendered by WriteSVG.
type SVGOptions struct {
	BoxWidth  int
	BoxHeight int
	Margin    int
	Title     string
}

// DefaultSVGOptions returns sensible default layout options.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{BoxWidth: 200, BoxHeight: 40, Margin: 20, Title: "Randomizer Placements"}
}

// WriteSVG renders result as a grid: one row per stage, one box per
// placement in that stage (across all groups, in declaration order),
// labelled "item -> location", using a straightforward row/column
// layout over this package's single flat record shape.
func WriteSVG(w io.Writer, result *rando.RunResult, opts SVGOptions) error {
	if opts.BoxWidth <= 0 {
		opts.BoxWidth = 200
	}
	if opts.BoxHeight <= 0 {
		opts.BoxHeight = 40
	}
	if opts.Margin <= 0 {
		opts.Margin = 20
	}

	records := Flatten(result)
	byStage := make(map[int][]PlacementRecord)
	maxStage := -1
	maxCols := 0
	for _, r := range records {
		byStage[r.Stage] = append(byStage[r.Stage], r)
		if r.Stage > maxStage {
			maxStage = r.Stage
		}
	}
	for _, rs := range byStage {
		if len(rs) > maxCols {
			maxCols = len(rs)
		}
	}

	headerHeight := 40
	width := opts.Margin*2 + maxCols*(opts.BoxWidth+opts.Margin)
	height := headerHeight + opts.Margin*2 + (maxStage+1)*(opts.BoxHeight+opts.Margin)
	if width < 400 {
		width = 400
	}
	if height < 200 {
		height = 200
	}

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#1a1a2e")

	if opts.Title != "" {
		canvas.Text(width/2, 24, opts.Title,
			"text-anchor:middle;font-size:18px;font-weight:bold;fill:#e2e8f0;font-family:sans-serif")
	}

	for stage := 0; stage <= maxStage; stage++ {
		y := headerHeight + opts.Margin + stage*(opts.BoxHeight+opts.Margin)
		for col, rec := range byStage[stage] {
			x := opts.Margin + col*(opts.BoxWidth+opts.Margin)
			canvas.Rect(x, y, opts.BoxWidth, opts.BoxHeight,
				"fill:#2d3748;stroke:#4a5568;stroke-width:1;rx:4")
			label := fmt.Sprintf("%s -> %s", rec.Item, rec.Location)
			canvas.Text(x+opts.BoxWidth/2, y+opts.BoxHeight/2+4, label,
				"text-anchor:middle;font-size:11px;fill:#e2e8f0;font-family:monospace")
		}
		canvas.Text(opts.Margin/2, y+opts.BoxHeight/2+4, fmt.Sprintf("%d", stage),
			"font-size:11px;fill:#a0aec0;font-family:monospace")
	}

	canvas.End()
	_, err := w.Write(buf.Bytes())
	return err
}
