package dashboard

import (
	"strconv"
	"strings"

	"campusdesk/app/models"
)

// windowDays reads the analytics window, defaulting to 30 and clamped to 1..365.
func windowDays(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return defaultWindow
	}
	if n < 1 {
		return 1
	}
	if n > maxWindow {
		return maxWindow
	}
	return n
}

// trendChart is the column layout the chart widgets read.
type trendChart struct {
	Labels     []string  `json:"labels"`
	Present    []int     `json:"present"`
	Absent     []int     `json:"absent"`
	Late       []int     `json:"late"`
	Percentage []float64 `json:"percentage"`
}

func newTrendChart(days []models.DailyAttendance) trendChart {
	chart := trendChart{
		Labels:     make([]string, 0, len(days)),
		Present:    make([]int, 0, len(days)),
		Absent:     make([]int, 0, len(days)),
		Late:       make([]int, 0, len(days)),
		Percentage: make([]float64, 0, len(days)),
	}
	for _, d := range days {
		chart.Labels = append(chart.Labels, d.Date.Format("Jan 02"))
		chart.Present = append(chart.Present, d.Present)
		chart.Absent = append(chart.Absent, d.Absent)
		chart.Late = append(chart.Late, d.Late)
		chart.Percentage = append(chart.Percentage, d.Percentage())
	}
	return chart
}
