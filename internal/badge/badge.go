// Package badge renders the public coding-time badge as a flat SVG.
package badge

import "fmt"

// Defaults and fallbacks for the badge endpoint. FallbackColor keeps the
// historical literal "#red" emitted for hidden or missing projects.
const (
	Label         = "Coding time"
	DefaultColor  = "#4c1"
	FallbackValue = "Not Found"
	FallbackColor = "#red"
)

const svgTemplate = `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="20">
  <linearGradient id="b" x2="0" y2="100%%">
    <stop offset="0" stop-color="#bbb" stop-opacity=".1"/>
    <stop offset="1" stop-opacity=".1"/>
  </linearGradient>
  <mask id="a">
    <rect width="%d" height="20" rx="3" fill="#fff"/>
  </mask>
  <g mask="url(#a)">
    <rect width="%d" height="20" fill="#555"/>
    <rect x="%d" width="%d" height="20" fill="%s"/>
    <rect width="%d" height="20" fill="url(#b)"/>
  </g>
  <g fill="#fff" text-anchor="middle" font-family="Verdana,Geneva,DejaVu Sans,sans-serif" font-size="11">
    <text x="%d" y="15" fill="#010101" fill-opacity=".3">%s</text>
    <text x="%d" y="15">%s</text>
    <text x="%d" y="15" fill="#010101" fill-opacity=".3">%s</text>
    <text x="%d" y="15">%s</text>
  </g>
</svg>
`

// Render formats the two-panel badge. Panel widths scale with text length:
// 60 base pixels plus 6 per character.
func Render(label, value, color string) string {
	labelWidth := 60 + 6*len(label)
	valueWidth := 60 + 6*len(value)
	totalWidth := labelWidth + valueWidth

	return fmt.Sprintf(svgTemplate,
		totalWidth,
		totalWidth,
		labelWidth,
		labelWidth, valueWidth, color,
		totalWidth,
		labelWidth/2, label,
		labelWidth/2, label,
		labelWidth+valueWidth/2, value,
		labelWidth+valueWidth/2, value,
	)
}

// FormatCodingTime renders accumulated seconds as "{h}h {m}min".
func FormatCodingTime(seconds int64) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	return fmt.Sprintf("%dh %dmin", hours, minutes)
}
