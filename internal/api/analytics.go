package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ositopolar/fleet-console/internal/domain"
	"github.com/ositopolar/fleet-console/internal/normalize"
)

const analyticsPath = "/analytics/equipments"

// ReadingsQuery filters the analytics readings endpoint. Zero values fall
// back to temperature readings of the last 24 hours, at most 100 of them.
type ReadingsQuery struct {
	Type  string
	Hours int
	Limit int
}

func (q ReadingsQuery) values() url.Values {
	if q.Type == "" {
		q.Type = "temperature"
	}
	if q.Hours <= 0 {
		q.Hours = 24
	}
	if q.Limit <= 0 {
		q.Limit = 100
	}
	v := url.Values{}
	v.Set("type", q.Type)
	v.Set("hours", strconv.Itoa(q.Hours))
	v.Set("limit", strconv.Itoa(q.Limit))
	return v
}

func (c *Client) EquipmentReadings(ctx context.Context, equipmentID int64, q ReadingsQuery) ([]domain.TemperatureReading, error) {
	return getMany(ctx, c, request{
		path:     idPath(analyticsPath, equipmentID) + "/readings",
		params:   q.values(),
		resource: "Equipment",
	}, domain.NewTemperatureReading)
}

// DailyAverages returns the daily temperature summaries of the last days
// days (7 when days <= 0).
func (c *Client) DailyAverages(ctx context.Context, equipmentID int64, days int) ([]domain.DailyTemperatureAverage, error) {
	if days <= 0 {
		days = 7
	}
	params := url.Values{}
	params.Set("type", "daily-averages")
	params.Set("days", strconv.Itoa(days))
	return getMany(ctx, c, request{
		path:     idPath(analyticsPath, equipmentID) + "/summaries",
		params:   params,
		resource: "Equipment",
	}, domain.NewDailyTemperatureAverage)
}

// Overview returns the current state of several units as raw records; the
// backend shape of this endpoint varies with overviewType.
func (c *Client) Overview(ctx context.Context, ids []int64, overviewType string) ([]domain.Raw, error) {
	if overviewType == "" {
		overviewType = "current"
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	params := url.Values{}
	params.Set("ids", strings.Join(parts, ","))
	params.Set("type", overviewType)
	payload, err := c.do(ctx, request{method: http.MethodGet, path: analyticsPath + "/overview", params: params})
	if err != nil {
		return nil, err
	}
	return normalize.Many(normalize.Data(payload), rawRecord)
}
