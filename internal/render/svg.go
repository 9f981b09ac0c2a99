package render

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/naka-gawa/github-activity-grid/internal/domain"
	"github.com/naka-gawa/github-activity-grid/internal/scale"
)

// Layout holds the sizing and palette of a rendered chart.
type Layout struct {
	Width      int
	CellHeight int
	Margin     int
	Background string
	NoActivity string
	Highlight  string
	Stroke     string
	AxisText   string
	// Shade varies the opacity of active blocks by the quantile of their count.
	Shade bool
}

// DefaultLayout matches the dark block graph palette.
func DefaultLayout() Layout {
	return Layout{
		Width:      800,
		CellHeight: 20,
		Margin:     20,
		Background: "#24273a",
		NoActivity: "#282a36",
		Highlight:  "#f5bde6",
		Stroke:     "#000",
		AxisText:   "#cad3f5",
	}
}

// LevelPalette is used for categories that carry no color of their own.
var LevelPalette = []string{"#f1fa8c", "#ff5555", "#ff79c6", "#8be9fd", "#50fa7b", "#bd93f9"}

func levelColor(c domain.Category, level int) string {
	if c.Color != "" {
		return c.Color
	}
	return LevelPalette[level%len(LevelPalette)]
}

const legendItemWidth = 120

// NoActivityLabel names the legend swatch for empty cells.
const NoActivityLabel = "No Activity"

// shadeLevels is the number of intensity levels used when Layout.Shade is set.
const shadeLevels = 5

// opacity maps an intensity level in [1, levels) onto [0.4, 1].
func opacity(level, levels int) float64 {
	if levels <= 2 {
		return 1
	}
	return 0.4 + 0.6*float64(level-1)/float64(levels-2)
}

// BlockGraph renders one rectangle per (level, day) with level 0 on top, followed
// by an axis of day numbers and a legend of the ranking's labels plus a
// "No Activity" swatch.
func BlockGraph(grid *domain.ActivityGrid, layout Layout) ([]byte, error) {
	if layout.Width <= 2*layout.Margin || layout.CellHeight <= 0 {
		return nil, goerr.Wrap(domain.ErrInvalidArgument, "layout too small",
			goerr.V("width", layout.Width), goerr.V("cell_height", layout.CellHeight))
	}
	if grid.PeriodLength <= 0 {
		return nil, goerr.Wrap(domain.ErrInvalidArgument, "grid has no period")
	}

	var shade scale.Threshold
	if layout.Shade {
		th, err := scale.Quantile(scale.Flatten(grid), shadeLevels)
		if err != nil {
			return nil, err
		}
		shade = th
	}

	levels := grid.Levels()
	blockWidth := float64(layout.Width-2*layout.Margin) / float64(grid.PeriodLength)
	gridHeight := levels * layout.CellHeight
	legendTop := layout.Margin + gridHeight + 2*layout.Margin
	height := legendTop + 30 + layout.Margin

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		layout.Width, height, layout.Width, height)
	fmt.Fprintf(&b, `<style>.block:hover{fill:%s}</style>`, layout.Highlight)
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="%s"/>`, layout.Background)

	b.WriteString(`<g class="blocks">`)
	for level := 0; level < levels; level++ {
		category := grid.Ranking.Categories[level]
		color := levelColor(category, level)
		y := layout.Margin + level*layout.CellHeight
		for day := 0; day < grid.PeriodLength; day++ {
			count := grid.Cell(level, day)
			fill := layout.NoActivity
			extra := ""
			if count > 0 {
				fill = color
				if shade != nil {
					extra = fmt.Sprintf(` fill-opacity="%s"`, num(opacity(shade.Level(float64(count)), shade.Levels())))
				}
			}
			x := float64(layout.Margin) + float64(day)*blockWidth
			fmt.Fprintf(&b, `<rect class="block" x="%s" y="%d" width="%s" height="%d" fill="%s"%s stroke="%s" stroke-width="0.5"><title>%s, day %d: %d</title></rect>`,
				num(x), y, num(blockWidth), layout.CellHeight, fill, extra, layout.Stroke,
				html.EscapeString(category.Label), day+1, count)
		}
	}
	b.WriteString(`</g>`)

	axisY := layout.Margin + gridHeight + layout.Margin
	b.WriteString(`<g class="x axis">`)
	for day := 0; day < grid.PeriodLength; day++ {
		x := float64(layout.Margin) + (float64(day)+0.5)*blockWidth
		fmt.Fprintf(&b, `<text x="%s" y="%d" fill="%s" font-size="10" text-anchor="middle">%d</text>`,
			num(x), axisY, layout.AxisText, day+1)
	}
	b.WriteString(`</g>`)

	b.WriteString(`<g class="legend">`)
	swatch := func(i int, color, label string) {
		x := layout.Margin + i*legendItemWidth
		fmt.Fprintf(&b, `<rect class="swatch" x="%d" y="%d" width="%d" height="30" fill="%s" stroke="%s" stroke-width="0.5"/>`,
			x, legendTop, legendItemWidth-20, color, layout.Stroke)
		fmt.Fprintf(&b, `<text x="%d" y="%d" fill="%s" font-size="12">%s</text>`,
			x+10, legendTop+20, TextColor(color), html.EscapeString(label))
	}
	swatch(0, layout.NoActivity, NoActivityLabel)
	for level, category := range grid.Ranking.Categories {
		swatch(level+1, levelColor(category, level), category.Label)
	}
	b.WriteString(`</g></svg>`)
	return []byte(b.String()), nil
}

const hexRadius = 30.0

// HexCenter converts axial hex coordinates into pixel offsets from the origin.
func HexCenter(q, r int) (float64, float64) {
	x := hexRadius * math.Sqrt(3) * (float64(q) + float64(r)/2)
	y := hexRadius * 1.5 * float64(r)
	return x, y
}

func hexPoints() string {
	points := make([]string, 6)
	for i := range points {
		angle := math.Pi / 3 * float64(i)
		points[i] = num(hexRadius*math.Cos(angle)) + "," + num(hexRadius*math.Sin(angle))
	}
	return strings.Join(points, " ")
}

// HexGrid renders repositories as linked hexagons centered in the canvas,
// colored by their intensity level. palette[0] is the "no activity" color.
func HexGrid(cells []domain.HexCell, palette []string, layout Layout, height int) ([]byte, error) {
	if len(palette) == 0 {
		return nil, goerr.Wrap(domain.ErrInvalidArgument, "hex grid needs a palette")
	}
	if layout.Width <= 0 || height <= 0 {
		return nil, goerr.Wrap(domain.ErrInvalidArgument, "layout too small",
			goerr.V("width", layout.Width), goerr.V("height", height))
	}
	cx, cy := float64(layout.Width)/2, float64(height)/2
	points := hexPoints()

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		layout.Width, height, layout.Width, height)
	fmt.Fprintf(&b, `<style>.hex:hover{fill:%s}</style>`, layout.Highlight)
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="%s"/>`, layout.Background)

	b.WriteString(`<g class="links">`)
	for i, cell := range cells {
		next := cells[(i+1)%len(cells)]
		x1, y1 := HexCenter(cell.Q, cell.R)
		x2, y2 := HexCenter(next.Q, next.R)
		fmt.Fprintf(&b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#fff" stroke-width="1"/>`,
			num(x1+cx), num(y1+cy), num(x2+cx), num(y2+cy))
	}
	b.WriteString(`</g><g class="hexes">`)
	for _, cell := range cells {
		x, y := HexCenter(cell.Q, cell.R)
		level := cell.Level
		if level >= len(palette) {
			level = len(palette) - 1
		}
		name := html.EscapeString(cell.Repository.Name)
		fmt.Fprintf(&b, `<a href="%s" target="_blank"><polygon class="hex" points="%s" transform="translate(%s,%s)" fill="%s" stroke="#fff" stroke-width="1.5"><title>%s (%d stars)</title></polygon></a>`,
			html.EscapeString(cell.Repository.URL), points, num(x+cx), num(y+cy), palette[level], name, cell.Repository.Stars)
		fmt.Fprintf(&b, `<text transform="translate(%s,%s)" text-anchor="middle" font-size="10" fill="#fff">%s</text>`,
			num(x+cx), num(y+cy-40), name)
	}
	b.WriteString(`</g></svg>`)
	return []byte(b.String()), nil
}

// StarPalette colors hexagons from no activity up to very high activity.
var StarPalette = []string{"#282a36", "#8be9fd", "#ff79c6", "#ff5555", "#f1fa8c"}

// num formats coordinates compactly and deterministically.
func num(f float64) string {
	s := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}
