package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ositopolar/fleet-console/internal/api"
	"github.com/ositopolar/fleet-console/internal/domain"
	"github.com/ositopolar/fleet-console/internal/pricing"
)

var ErrNoPricing = errors.New("no pricing found for this equipment")

type RentalService struct {
	backend *api.Client
}

// Catalog lists available rental equipment, of one type when equipmentType
// is set.
func (s *RentalService) Catalog(ctx context.Context, equipmentType string) ([]domain.RentalEquipment, error) {
	if equipmentType != "" {
		return s.backend.RentalEquipmentByType(ctx, equipmentType)
	}
	return s.backend.AvailableRentalEquipment(ctx)
}

type QuoteView struct {
	pricing.Quote
	Currency              string `json:"currency"`
	FormattedMonthlyPrice string `json:"formattedMonthlyPrice"`
	FormattedFirstPayment string `json:"formattedFirstPayment"`
}

func (s *RentalService) Quote(ctx context.Context, rentalEquipmentID string, quantity, months int64) (QuoteView, error) {
	price, err := s.backend.RentalPricing(ctx, rentalEquipmentID)
	if errors.Is(err, api.ErrNotFound) {
		return QuoteView{}, fmt.Errorf("%w: %s", ErrNoPricing, rentalEquipmentID)
	}
	if err != nil {
		return QuoteView{}, err
	}
	q, err := pricing.NewQuote(price, quantity, months)
	if err != nil {
		return QuoteView{}, err
	}
	return QuoteView{
		Quote:                 q,
		Currency:              price.Currency,
		FormattedMonthlyPrice: pricing.FormatPrice(q.MonthlyPrice, price.Currency),
		FormattedFirstPayment: pricing.FormatPrice(q.FirstPayment, price.Currency),
	}, nil
}
