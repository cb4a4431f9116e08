package tui

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"stockchart/internal/feature/search/domain/entity"
)

const (
	chartHeight       = 12
	defaultChartWidth = 60
	minChartWidth     = 20
	// asciigraph の縦軸ラベル分の幅
	axisWidth = 12
)

// RenderChart は終値の折れ線グラフと要約行を返します。
// width はターミナルの幅で、0 の場合は既定値を使います。
func RenderChart(ticker string, series []entity.Point, width int) string {
	if len(series) == 0 {
		return messageStyle.Render(fmt.Sprintf("%s: no data points returned.", ticker))
	}

	closes := entity.Closes(series)
	// 1点だけでは線を引けないため水平線として描画します。
	if len(closes) == 1 {
		closes = append(closes, closes[0])
	}

	first, last := series[0], series[len(series)-1]
	graph := asciigraph.Plot(closes,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth(width)),
		asciigraph.Precision(2),
		asciigraph.Caption(fmt.Sprintf("%s close, %s to %s", ticker, first.Date, last.Date)),
	)

	var b strings.Builder
	b.WriteString(graph)
	b.WriteString("\n\n")
	b.WriteString(summary(series))
	return b.String()
}

func chartWidth(termWidth int) int {
	if termWidth <= 0 {
		return defaultChartWidth
	}
	return max(termWidth-axisWidth, minChartWidth)
}

func summary(series []entity.Point) string {
	first, last := series[0].Close, series[len(series)-1].Close
	change := last - first
	pct := 0.0
	if first != 0 {
		pct = change / first * 100
	}

	lo, hi := last, last
	for _, p := range series {
		lo = min(lo, p.Close)
		hi = max(hi, p.Close)
	}
	return fmt.Sprintf("Last %.2f  Change %+.2f (%+.2f%%)  Low %.2f  High %.2f  Points %d",
		last, change, pct, lo, hi, len(series))
}
