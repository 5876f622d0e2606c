package service

import (
	"context"

	"github.com/ositopolar/fleet-console/internal/analytics"
	"github.com/ositopolar/fleet-console/internal/api"
	"github.com/ositopolar/fleet-console/internal/domain"
	"github.com/ositopolar/fleet-console/internal/geo"
)

type FleetService struct {
	backend *api.Client
}

// EquipmentDerived carries the computed attributes of one Equipment.
type EquipmentDerived struct {
	TemperatureStatus         domain.TemperatureStatus `json:"temperatureStatus"`
	StatusColor               string                   `json:"statusColor"`
	TemperatureStatusClass    string                   `json:"temperatureStatusClass"`
	StatusClass               string                   `json:"statusClass"`
	StatusDisplay             string                   `json:"statusDisplay"`
	TypeDisplay               string                   `json:"typeDisplay"`
	IsOperational             bool                     `json:"isOperational"`
	NeedsAttention            bool                     `json:"needsAttention"`
	FormattedInstallationDate string                   `json:"formattedInstallationDate"`
}

type EquipmentView struct {
	domain.Equipment
	Derived EquipmentDerived `json:"derived"`
}

func NewEquipmentView(e domain.Equipment) EquipmentView {
	return EquipmentView{
		Equipment: e,
		Derived: EquipmentDerived{
			TemperatureStatus:         e.TemperatureStatus(),
			StatusColor:               e.StatusColor(),
			TemperatureStatusClass:    e.TemperatureStatusClass(),
			StatusClass:               e.StatusClass(),
			StatusDisplay:             e.StatusDisplay(),
			TypeDisplay:               e.TypeDisplay(),
			IsOperational:             e.IsOperational(),
			NeedsAttention:            e.NeedsAttention(),
			FormattedInstallationDate: e.FormattedInstallationDate(),
		},
	}
}

func (s *FleetService) List(ctx context.Context) ([]EquipmentView, error) {
	items, err := s.backend.ListEquipment(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]EquipmentView, 0, len(items))
	for _, e := range items {
		out = append(out, NewEquipmentView(e))
	}
	return out, nil
}

// Attention lists only the units whose temperature or lifecycle status
// needs a look.
func (s *FleetService) Attention(ctx context.Context) ([]domain.EquipmentSummary, error) {
	items, err := s.backend.ListEquipment(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.EquipmentSummary{}
	for _, e := range items {
		if e.NeedsAttention() {
			out = append(out, e.Summary())
		}
	}
	return out, nil
}

func (s *FleetService) Get(ctx context.Context, id int64) (EquipmentView, error) {
	e, err := s.backend.GetEquipment(ctx, id)
	if err != nil {
		return EquipmentView{}, err
	}
	return NewEquipmentView(e), nil
}

func (s *FleetService) Validate(ctx context.Context, id int64) (domain.ValidationResult, error) {
	e, err := s.backend.GetEquipment(ctx, id)
	if err != nil {
		return domain.ValidationResult{}, err
	}
	return e.Validate(), nil
}

func (s *FleetService) SetTemperature(ctx context.Context, id int64, setPoint float64) (EquipmentView, error) {
	e, err := s.backend.UpdateTemperature(ctx, id, setPoint)
	if err != nil {
		return EquipmentView{}, err
	}
	return NewEquipmentView(e), nil
}

func (s *FleetService) SetPower(ctx context.Context, id int64, on bool) (EquipmentView, error) {
	e, err := s.backend.UpdatePowerState(ctx, id, on)
	if err != nil {
		return EquipmentView{}, err
	}
	return NewEquipmentView(e), nil
}

// equipmentCoords treats (0,0) as "no coordinates recorded".
func equipmentCoords(e domain.Equipment) (geo.Point, bool) {
	if e.LocationLatitude == 0 && e.LocationLongitude == 0 {
		return geo.Point{}, false
	}
	return geo.Point{Lat: e.LocationLatitude, Lng: e.LocationLongitude}, true
}

type NearestEquipment struct {
	Equipment EquipmentView `json:"equipment"`
	Distance  float64       `json:"distance"`
	MapsURL   string        `json:"mapsUrl"`
}

// Nearest returns the unit closest to origin, or false when no unit has
// coordinates.
func (s *FleetService) Nearest(ctx context.Context, origin geo.Point) (NearestEquipment, bool, error) {
	items, err := s.backend.ListEquipment(ctx)
	if err != nil {
		return NearestEquipment{}, false, err
	}
	n, ok := geo.FindNearest(&origin, items, equipmentCoords)
	if !ok {
		return NearestEquipment{}, false, nil
	}
	p, _ := equipmentCoords(n.Item)
	return NearestEquipment{
		Equipment: NewEquipmentView(n.Item),
		Distance:  n.Distance,
		MapsURL:   geo.MapsURL(p, 0),
	}, true, nil
}

type Chart struct {
	Readings []analytics.ChartPoint   `json:"readings"`
	Daily    []analytics.SummaryPoint `json:"daily"`
}

func (s *FleetService) Chart(ctx context.Context, id int64, q api.ReadingsQuery, days int) (Chart, error) {
	readings, err := s.backend.EquipmentReadings(ctx, id, q)
	if err != nil {
		return Chart{}, err
	}
	daily, err := s.backend.DailyAverages(ctx, id, days)
	if err != nil {
		return Chart{}, err
	}
	return Chart{
		Readings: analytics.ChartPoints(readings),
		Daily:    analytics.SummaryPoints(daily),
	}, nil
}
