package pricing

import (
	"errors"
	"math"
	"testing"

	"github.com/ositopolar/fleet-console/internal/domain"
)

var tiers = []domain.DiscountTier{
	{Months: 3, Percentage: 5},
	{Months: 6, Percentage: 10},
	{Months: 12, Percentage: 15},
}

func TestSelectDiscount(t *testing.T) {
	cases := []struct {
		months int64
		tiers  []domain.DiscountTier
		want   float64
	}{
		{8, tiers, 10},
		{2, tiers, 0},
		{3, tiers, 5},
		{12, tiers, 15},
		{36, tiers, 15},
		{5, nil, 0},
		// largest qualifying threshold beats a bigger percentage on a smaller one
		{6, []domain.DiscountTier{{Months: 1, Percentage: 50}, {Months: 6, Percentage: 10}}, 10},
		{6, []domain.DiscountTier{{Months: 6, Percentage: 10}, {Months: 6, Percentage: 12}}, 12},
	}
	for _, tc := range cases {
		if got := SelectDiscount(tc.months, tc.tiers); got != tc.want {
			t.Fatalf("months=%d tiers=%v: got %v want %v", tc.months, tc.tiers, got, tc.want)
		}
	}
}

func TestDiscountedPrice(t *testing.T) {
	if got := DiscountedPrice(200, 10); !closeTo(got, 180) {
		t.Fatalf("got %v", got)
	}
	if got := DiscountedPrice(200, 150); got != 0 {
		t.Fatalf("clamp: got %v", got)
	}
}

func TestValidateTiers(t *testing.T) {
	if err := ValidateTiers(tiers); err != nil {
		t.Fatal(err)
	}
	bad := [][]domain.DiscountTier{
		{{Months: 3, Percentage: 101}},
		{{Months: 3, Percentage: -1}},
		{{Months: -1, Percentage: 5}},
	}
	for _, b := range bad {
		if err := ValidateTiers(b); !errors.Is(err, ErrInvalidTier) {
			t.Fatalf("%v: err=%v", b, err)
		}
	}
}

func TestNewQuote(t *testing.T) {
	price := domain.RentalPrice{
		BaseMonthlyPrice: 100,
		Discounts:        tiers,
		SetupFee:         40,
		DeliveryFee:      10,
	}
	q, err := NewQuote(price, 2, 8)
	if err != nil {
		t.Fatal(err)
	}
	want := Quote{MonthlyPrice: 180, TotalMonthly: 1440, SetupCost: 100, Discount: 10, FirstPayment: 280}
	if !closeTo(q.MonthlyPrice, want.MonthlyPrice) || !closeTo(q.TotalMonthly, want.TotalMonthly) ||
		q.SetupCost != want.SetupCost || q.Discount != want.Discount || !closeTo(q.FirstPayment, want.FirstPayment) {
		t.Fatalf("got %+v want %+v", q, want)
	}

	if _, err := NewQuote(price, 0, 8); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("quantity 0: err=%v", err)
	}
	price.Discounts = []domain.DiscountTier{{Months: 1, Percentage: 120}}
	if _, err := NewQuote(price, 1, 1); !errors.Is(err, ErrInvalidTier) {
		t.Fatalf("bad tier: err=%v", err)
	}
}

func TestFormatPrice(t *testing.T) {
	if got := FormatPrice(12.5, ""); got != "12.50 $" {
		t.Fatalf("got %q", got)
	}
	if got := FormatPrice(3, "S/"); got != "3.00 S/" {
		t.Fatalf("got %q", got)
	}
}

func closeTo(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
