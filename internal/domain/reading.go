package domain

import "fmt"

// TemperatureReading is a single temperature sample of one equipment.
type TemperatureReading struct {
	ID          string            `json:"id" db:"id"`
	EquipmentID int64             `json:"equipmentId" db:"equipment_id"`
	Temperature float64           `json:"temperature" db:"temperature"`
	Timestamp   string            `json:"timestamp" db:"timestamp"`
	Status      TemperatureStatus `json:"status" db:"status"`
}

// NewTemperatureReading accepts both the legacy reading shape and the
// analytics shape, where the temperature travels as "value".
func NewTemperatureReading(raw Raw) TemperatureReading {
	return TemperatureReading{
		ID:          raw.str("", "id"),
		EquipmentID: raw.int(0, "equipmentId"),
		Temperature: raw.float(0, "temperature", "value"),
		Timestamp:   raw.str("", "timestamp"),
		Status:      TemperatureStatus(raw.str(string(TemperatureNormal), "status")),
	}
}

// FormattedTime renders the reading time as 24h HH:MM, or "" when the
// timestamp is missing. Unparsable timestamps are returned unchanged.
func (r TemperatureReading) FormattedTime() string {
	if r.Timestamp == "" {
		return ""
	}
	t, ok := ParseTimestamp(r.Timestamp)
	if !ok {
		return r.Timestamp
	}
	return t.Format("15:04")
}

// HourBucket is the chart bucket of the reading, e.g. "9:00".
func (r TemperatureReading) HourBucket() string {
	if r.Timestamp == "" {
		return ""
	}
	t, ok := ParseTimestamp(r.Timestamp)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%d:00", t.Hour())
}

type DailyTemperatureAverage struct {
	ID                 string  `json:"id" db:"id"`
	EquipmentID        int64   `json:"equipmentId" db:"equipment_id"`
	Date               string  `json:"date" db:"date"`
	AverageTemperature float64 `json:"averageTemperature" db:"average_temperature"`
	MinTemperature     float64 `json:"minTemperature" db:"min_temperature"`
	MaxTemperature     float64 `json:"maxTemperature" db:"max_temperature"`
}

func NewDailyTemperatureAverage(raw Raw) DailyTemperatureAverage {
	return DailyTemperatureAverage{
		ID:                 raw.str("", "id"),
		EquipmentID:        raw.int(0, "equipmentId"),
		Date:               raw.str("", "date"),
		AverageTemperature: raw.float(0, "averageTemperature"),
		MinTemperature:     raw.float(0, "minTemperature"),
		MaxTemperature:     raw.float(0, "maxTemperature"),
	}
}

// DayName is the short weekday of Date ("Mon"), or "" when it is missing
// or unparsable.
func (d DailyTemperatureAverage) DayName() string {
	if d.Date == "" {
		return ""
	}
	t, ok := ParseTimestamp(d.Date)
	if !ok {
		return ""
	}
	return t.Weekday().String()[:3]
}
