// Package pricing computes rental quotes from a RentalPrice and its
// duration discount tiers.
package pricing

import (
	"errors"
	"fmt"

	"github.com/ositopolar/fleet-console/internal/domain"
)

var (
	ErrInvalidTier    = errors.New("invalid discount tier")
	ErrInvalidRequest = errors.New("invalid rental request")
)

// SelectDiscount returns the percentage of the tier with the largest months
// threshold not exceeding months. Tiers sharing that threshold resolve to
// the highest percentage. No qualifying tier means no discount.
func SelectDiscount(months int64, tiers []domain.DiscountTier) float64 {
	found := false
	var best domain.DiscountTier
	for _, t := range tiers {
		if t.Months > months {
			continue
		}
		if !found || t.Months > best.Months || (t.Months == best.Months && t.Percentage > best.Percentage) {
			best = t
			found = true
		}
	}
	if !found {
		return 0
	}
	return best.Percentage
}

// DiscountedPrice applies pct multiplicatively and never returns a negative
// price.
func DiscountedPrice(base, pct float64) float64 {
	p := base * (1 - pct/100)
	if p < 0 {
		return 0
	}
	return p
}

func ValidateTiers(tiers []domain.DiscountTier) error {
	for i, t := range tiers {
		if t.Percentage < 0 || t.Percentage > 100 {
			return fmt.Errorf("%w: tier %d percentage %g outside [0,100]", ErrInvalidTier, i, t.Percentage)
		}
		if t.Months < 0 {
			return fmt.Errorf("%w: tier %d has negative months", ErrInvalidTier, i)
		}
	}
	return nil
}

// Quote is the cost breakdown of renting quantity units for a number of
// months.
type Quote struct {
	MonthlyPrice float64 `json:"monthlyPrice"`
	TotalMonthly float64 `json:"totalMonthly"`
	SetupCost    float64 `json:"setupCost"`
	Discount     float64 `json:"discount"`
	FirstPayment float64 `json:"firstPayment"`
}

// NewQuote prices a rental. The monthly price covers all units after the
// duration discount; setup and delivery fees are charged once per unit and
// are due with the first payment.
func NewQuote(price domain.RentalPrice, quantity, months int64) (Quote, error) {
	if quantity < 1 {
		return Quote{}, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidRequest)
	}
	if months < 1 {
		return Quote{}, fmt.Errorf("%w: rental period must be at least 1 month", ErrInvalidRequest)
	}
	if err := ValidateTiers(price.Discounts); err != nil {
		return Quote{}, err
	}

	discount := SelectDiscount(months, price.Discounts)
	monthly := DiscountedPrice(price.BaseMonthlyPrice*float64(quantity), discount)
	setup := (price.SetupFee + price.DeliveryFee) * float64(quantity)
	return Quote{
		MonthlyPrice: monthly,
		TotalMonthly: monthly * float64(months),
		SetupCost:    setup,
		Discount:     discount,
		FirstPayment: monthly + setup,
	}, nil
}

// FormatPrice renders v with two decimals followed by the currency symbol,
// "$" when currency is empty.
func FormatPrice(v float64, currency string) string {
	if currency == "" {
		currency = "$"
	}
	return fmt.Sprintf("%.2f %s", v, currency)
}
