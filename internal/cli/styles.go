package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"gocache/internal/cache"
	"gocache/internal/workload"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(14)
	valueStyle = lipgloss.NewStyle().Bold(true)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func row(label string, value any) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		labelStyle.Render(label),
		valueStyle.Render(fmt.Sprint(value)),
	)
}

func percent(f float64) string {
	return fmt.Sprintf("%.2f%%", f*100)
}

// renderStats draws the cache counters, plus run figures when res is non-nil.
func renderStats(title string, src cache.StatsSource, res *workload.Result) string {
	m := src.Metrics()
	rows := []string{
		titleStyle.Render(title),
		row("entries", fmt.Sprintf("%d / %d", src.Len(), src.Cap())),
		row("hits", m.Hits),
		row("misses", m.Misses),
		row("evictions", m.Evictions),
		row("requests", m.TotalRequests),
		row("hit rate", percent(m.HitRate())),
		row("miss rate", percent(m.MissRate())),
	}
	if res != nil {
		rows = append(rows,
			row("ops", res.Ops),
			row("elapsed", res.Elapsed.Round(time.Microsecond)),
			row("throughput", fmt.Sprintf("%.0f ops/s", res.Throughput())),
		)
	}
	return boxStyle.Render(strings.Join(rows, "\n"))
}
