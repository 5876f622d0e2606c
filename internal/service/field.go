package service

import (
	"context"

	"github.com/ositopolar/fleet-console/internal/api"
	"github.com/ositopolar/fleet-console/internal/domain"
)

type FieldService struct {
	backend *api.Client
}

type TechnicianView struct {
	domain.Technician
	AvailabilityClass string `json:"availabilityClass"`
	RatingDisplay     string `json:"ratingDisplay"`
}

func (s *FieldService) Technicians(ctx context.Context) ([]TechnicianView, error) {
	items, err := s.backend.ListTechnicians(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]TechnicianView, 0, len(items))
	for _, t := range items {
		out = append(out, TechnicianView{
			Technician:        t,
			AvailabilityClass: t.AvailabilityClass(),
			RatingDisplay:     t.RatingDisplay(),
		})
	}
	return out, nil
}

type WorkOrderView struct {
	domain.WorkOrder
	Summary               string `json:"summary"`
	StatusBadgeClass      string `json:"statusBadgeClass"`
	HasAssignedTechnician bool   `json:"hasAssignedTechnician"`
	FormattedCreationTime string `json:"formattedCreationTime"`
}

// WorkOrders lists every work order, or only those assigned to
// technicianID when it is set.
func (s *FieldService) WorkOrders(ctx context.Context, technicianID string) ([]WorkOrderView, error) {
	var (
		items []domain.WorkOrder
		err   error
	)
	if technicianID != "" {
		items, err = s.backend.WorkOrdersByTechnician(ctx, technicianID)
	} else {
		items, err = s.backend.ListWorkOrders(ctx)
	}
	if err != nil {
		return nil, err
	}
	out := make([]WorkOrderView, 0, len(items))
	for _, w := range items {
		out = append(out, WorkOrderView{
			WorkOrder:             w,
			Summary:               w.Summary(),
			StatusBadgeClass:      w.StatusBadgeClass(),
			HasAssignedTechnician: w.HasAssignedTechnician(),
			FormattedCreationTime: w.FormattedCreationTime(),
		})
	}
	return out, nil
}

type ServiceRequestView struct {
	domain.ServiceRequest
	Summary              string `json:"summary"`
	StatusBadgeClass     string `json:"statusBadgeClass"`
	CanBeRated           bool   `json:"canBeRated"`
	HasTechnician        bool   `json:"hasTechnician"`
	FormattedRequestTime string `json:"formattedRequestTime"`
}

func (s *FieldService) ServiceRequests(ctx context.Context, f api.ServiceRequestFilter) ([]ServiceRequestView, error) {
	items, err := s.backend.ServiceRequests(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]ServiceRequestView, 0, len(items))
	for _, r := range items {
		out = append(out, ServiceRequestView{
			ServiceRequest:       r,
			Summary:              r.Summary(),
			StatusBadgeClass:     r.StatusBadgeClass(),
			CanBeRated:           r.CanBeRated(),
			HasTechnician:        r.HasTechnician(),
			FormattedRequestTime: r.FormattedRequestTime(),
		})
	}
	return out, nil
}
