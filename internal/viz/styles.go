package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	CanvasPanel = lipgloss.NewStyle().Padding(1, 2)
	StatsPanel  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Width(45)
	Header = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	Label  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	Value  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	Graph  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	Help   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)

	StatusRunning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82"))
	StatusPaused  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	StatusDone    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

	SparkGood = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	SparkWarn = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	SparkBad  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// ProgressBar renders a fixed-width bar filled to the given fraction.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	if percent > 0.8 {
		return SparkGood.Render(bar)
	} else if percent > 0.4 {
		return SparkWarn.Render(bar)
	}
	return SparkBad.Render(bar)
}

// SparklineChart renders a mini sparkline from values. Low values read as
// good, so the coloring runs green at the bottom of the range and red at
// the top.
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	rng := max - min
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var result strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		v := values[i*step]
		norm := (v - min) / rng
		idx := int(norm * float64(len(chars)-1))
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		if idx < 0 {
			idx = 0
		}

		c := chars[idx]
		if norm > 0.7 {
			result.WriteString(SparkBad.Render(string(c)))
		} else if norm > 0.3 {
			result.WriteString(SparkWarn.Render(string(c)))
		} else {
			result.WriteString(SparkGood.Render(string(c)))
		}
	}

	return result.String()
}
