package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Amjad50/Fyp/pkg/pipeline"
	"github.com/Amjad50/Fyp/pkg/relation"
)

// Styling applies to status lines and tables only. LaTeX, JSON and DOT
// output is written unstyled so it can be piped.

var (
	colorAccent = lipgloss.Color("36")
	colorGood   = lipgloss.Color("35")
	colorWrong  = lipgloss.Color("220")
	colorFailed = lipgloss.Color("167")
	colorText   = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
)

var (
	// StyleTitle renders table headers and screen titles.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	// StyleDim renders borders, hints and secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorFaint)

	// StyleValue renders LaTeX and paths in status lines.
	StyleValue = lipgloss.NewStyle().Foreground(colorText)

	// StyleNumber renders numeric table columns.
	StyleNumber = lipgloss.NewStyle().Foreground(colorAccent)

	styleSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
)

// Cache states as shown in progress messages.
const (
	cacheHit  = "cached"
	cacheMiss = "fresh"
)

func cacheStatus(hit bool) string {
	if hit {
		return cacheHit
	}
	return cacheMiss
}

// outcomeMark returns the first column of an evaluation row: a check for a
// match, a bang for a wrong prediction and a cross for a failed parse.
func outcomeMark(o pipeline.Outcome) string {
	switch {
	case o.Error != "":
		return lipgloss.NewStyle().Foreground(colorFailed).Render("✗")
	case !o.Correct:
		return lipgloss.NewStyle().Foreground(colorWrong).Render("!")
	}
	return lipgloss.NewStyle().Foreground(colorGood).Render("✓")
}

// Vertical relations share the accent color, horizontal ones stay muted.
var relationColors = map[relation.Relation]lipgloss.Color{
	relation.Left:  colorText,
	relation.Power: colorAccent,
	relation.Sub:   colorAccent,
	relation.Up:    colorGood,
	relation.Down:  colorGood,
	relation.None:  colorFaint,
}

// relationLabel renders the name of r in its color. Inverse relations use
// the color of their forward counterpart.
func relationLabel(r relation.Relation) string {
	fwd := r
	if r.IsInverse() {
		fwd = r.Inverse()
	}
	c, ok := relationColors[fwd]
	if !ok {
		c = colorMuted
	}
	return lipgloss.NewStyle().Foreground(c).Render(r.String())
}

func printSuccess(format string, args ...any) {
	fmt.Println(lipgloss.NewStyle().Foreground(colorGood).Render("✓") + " " + fmt.Sprintf(format, args...))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleMuted.Render("›") + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile reports a written output file.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(styleMuted.Width(12).Render(key) + " " + StyleValue.Render(value))
}

// statsLine summarizes a parse on one line: symbols, candidate edges,
// spanning tree weight, time and cache state.
func statsLine(res *pipeline.Result) string {
	parts := []string{fmt.Sprintf("%d symbols", res.Stats.Symbols)}
	if res.Stats.Candidates > 0 {
		parts = append(parts, fmt.Sprintf("%d candidate edges", res.Stats.Candidates))
	}
	if res.Weight > 0 {
		parts = append(parts, fmt.Sprintf("weight %.1f", res.Weight))
	}
	if res.Stats.ParseTime > 0 {
		parts = append(parts, res.Stats.ParseTime.Round(time.Microsecond).String())
	}

	state := styleMuted.Render(cacheMiss)
	if res.CacheInfo.Hit {
		state = lipgloss.NewStyle().Foreground(colorGood).Render(cacheHit)
	}
	for i, p := range parts {
		parts[i] = StyleDim.Render(p)
	}
	return "  " + strings.Join(append(parts, state), StyleDim.Render(" · "))
}

func printStats(res *pipeline.Result) {
	fmt.Println(statsLine(res))
}
