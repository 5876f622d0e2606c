// Package analytics shapes temperature telemetry for charts and
// dashboards.
package analytics

import (
	"math"

	"github.com/ositopolar/fleet-console/internal/domain"
)

// FormatTime renders an ISO timestamp as 24h HH:MM. Unparsable input is
// returned unchanged and an empty timestamp gives "".
func FormatTime(ts string) string {
	return domain.TemperatureReading{Timestamp: ts}.FormattedTime()
}

// DayName is the short weekday ("Mon") of a date.
func DayName(date string) string {
	return domain.DailyTemperatureAverage{Date: date}.DayName()
}

// HourBucket is the "H:00" chart bucket of a timestamp.
func HourBucket(ts string) string {
	return domain.TemperatureReading{Timestamp: ts}.HourBucket()
}

// FormatTemperature rounds v to decimals places, half away from zero.
func FormatTemperature(v float64, decimals int) float64 {
	if decimals < 0 {
		decimals = 0
	}
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

var readingColors = map[domain.TemperatureStatus]string{
	domain.TemperatureNormal:   "#28a745",
	domain.TemperatureWarning:  "#ffc107",
	domain.TemperatureCritical: "#dc3545",
}

// ReadingStatusColor falls back to the normal color for unknown statuses.
func ReadingStatusColor(status domain.TemperatureStatus) string {
	if c, ok := readingColors[status]; ok {
		return c
	}
	return readingColors[domain.TemperatureNormal]
}

// ClassifyReading rates a telemetry sample against an optimal range with
// the same rules used for equipment.
func ClassifyReading(temp, low, high float64) domain.TemperatureStatus {
	return domain.ClassifyTemperature(temp, low, high)
}

type ChartPoint struct {
	X      string                   `json:"x"`
	Y      float64                  `json:"y"`
	Label  string                   `json:"label"`
	Status domain.TemperatureStatus `json:"status"`
	Color  string                   `json:"color"`
}

func ChartPoints(readings []domain.TemperatureReading) []ChartPoint {
	out := make([]ChartPoint, 0, len(readings))
	for _, r := range readings {
		out = append(out, ChartPoint{
			X:      r.Timestamp,
			Y:      r.Temperature,
			Label:  r.FormattedTime(),
			Status: r.Status,
			Color:  ReadingStatusColor(r.Status),
		})
	}
	return out
}

type SummaryPoint struct {
	Date    string  `json:"date"`
	Day     string  `json:"day"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

func SummaryPoints(averages []domain.DailyTemperatureAverage) []SummaryPoint {
	out := make([]SummaryPoint, 0, len(averages))
	for _, a := range averages {
		out = append(out, SummaryPoint{
			Date:    a.Date,
			Day:     a.DayName(),
			Average: FormatTemperature(a.AverageTemperature, 1),
			Min:     FormatTemperature(a.MinTemperature, 1),
			Max:     FormatTemperature(a.MaxTemperature, 1),
		})
	}
	return out
}
