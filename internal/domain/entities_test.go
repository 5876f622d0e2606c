package domain

import (
	"encoding/json"
	"testing"
)

func TestConstructorsToleratePartialInput(t *testing.T) {
	if r := NewTemperatureReading(nil); r.Status != TemperatureNormal {
		t.Fatalf("reading status=%q", r.Status)
	}
	if tech := NewTechnician(Raw{}); tech.Availability != "Unknown" {
		t.Fatalf("availability=%q", tech.Availability)
	}
	if w := NewWorkOrder(nil); w.Status != "created" || w.Priority != "medium" || w.Cost != nil {
		t.Fatalf("work order=%+v", w)
	}
	s := NewServiceRequest(nil)
	if s.Status != "pending" || s.Priority != "medium" || s.Urgency != "normal" || s.AssignedTechnicianID != nil {
		t.Fatalf("service request=%+v", s)
	}
	if n := NewNotification(nil); n.Status != NotificationUnread || n.Type != "alert" || !n.IsUnread() {
		t.Fatalf("notification=%+v", n)
	}
	if eq := NewRentalEquipment(nil); eq.Currency != "$" || eq.MinimumRentalPeriod != 1 || !eq.IsAvailable || eq.Features == nil {
		t.Fatalf("rental equipment=%+v", eq)
	}
	if rr := NewRentalRequest(nil); rr.Quantity != 1 || rr.RentalPeriodMonths != 1 || rr.Status != "draft" {
		t.Fatalf("rental request=%+v", rr)
	}
	if p := NewRentalPayment(nil); p.Type != "monthly" || p.Status != "pending" {
		t.Fatalf("payment=%+v", p)
	}
	if c := NewRentalContract(nil); c.Status != ContractActive {
		t.Fatalf("contract=%+v", c)
	}
	if pr := NewRentalPrice(nil); pr.Discounts == nil || len(pr.Discounts) != 0 {
		t.Fatalf("price=%+v", pr)
	}
	if u := NewUser(nil); u.CreatedAt != nil {
		t.Fatalf("user=%+v", u)
	}
	if a := NewAuthResponse(nil); a.Token != "" {
		t.Fatalf("auth=%+v", a)
	}
}

func TestNewPlanCoercesNumbers(t *testing.T) {
	cases := []struct {
		name string
		raw  Raw
		want Plan
	}{
		{
			name: "strings",
			raw:  Raw{"price": "29.90", "maxEquipment": "25", "maxClients": "3.7"},
			want: Plan{Price: 29.9, MaxEquipment: 25, MaxClients: 3},
		},
		{
			name: "unparsable",
			raw:  Raw{"price": "abc", "maxEquipment": "", "maxClients": map[string]any{}},
			want: Plan{},
		},
		{
			name: "json numbers",
			raw:  Raw{"price": json.Number("15"), "maxEquipment": json.Number("10")},
			want: Plan{Price: 15, MaxEquipment: 10},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPlan(tc.raw)
			if p.Price != tc.want.Price || p.MaxEquipment != tc.want.MaxEquipment || p.MaxClients != tc.want.MaxClients {
				t.Fatalf("got %+v", p)
			}
			if p.Features == nil {
				t.Fatal("features must default to an empty list")
			}
		})
	}
}

func TestNewPlanFeatures(t *testing.T) {
	p := NewPlan(Raw{"features": []any{"alerts", "reports", 3}})
	if len(p.Features) != 3 || p.Features[0] != "alerts" || p.Features[2] != "3" {
		t.Fatalf("features=%v", p.Features)
	}
}

func TestServiceRequestAliases(t *testing.T) {
	s := NewServiceRequest(Raw{"asap": true, "technicianId": "9", "rating": 4, "completionDate": "2024-05-01"})
	if !s.IsEmergency || s.AssignedTechnicianID == nil || *s.AssignedTechnicianID != 9 {
		t.Fatalf("legacy keys not resolved: %+v", s)
	}
	if *s.CustomerFeedbackRating != 4 || *s.ActualCompletionDate != "2024-05-01" {
		t.Fatalf("legacy keys not resolved: %+v", s)
	}

	s = NewServiceRequest(Raw{"isEmergency": false, "asap": true, "assignedTechnicianId": 1, "technicianId": 2})
	if s.IsEmergency || *s.AssignedTechnicianID != 1 {
		t.Fatalf("canonical key must win: %+v", s)
	}

	s.SetAsap(true)
	if !s.IsEmergency || !s.Asap() {
		t.Fatal("asap round trip")
	}
	id := int64(5)
	s.AssignedTechnicianID = &id
	if got := s.TechnicianID(); got == nil || *got != 5 {
		t.Fatal("technicianId round trip")
	}
	rating := 3.5
	s.SetRating(&rating)
	if *s.CustomerFeedbackRating != 3.5 {
		t.Fatal("rating round trip")
	}
	done := "2024-06-01"
	s.SetCompletionDate(&done)
	if *s.ActualCompletionDate != done {
		t.Fatal("completionDate round trip")
	}
}

func TestWorkOrderAliases(t *testing.T) {
	w := NewWorkOrder(Raw{"orderNumber": "WO-7", "technicianId": 12, "rating": "4.5"})
	if w.WorkOrderNumber != "WO-7" || *w.AssignedTechnicianID != "12" || *w.CustomerFeedbackRating != 4.5 {
		t.Fatalf("work order=%+v", w)
	}
	w.SetOrderNumber("WO-8")
	if w.OrderNumber() != "WO-8" || w.WorkOrderNumber != "WO-8" {
		t.Fatal("orderNumber round trip")
	}
	w.SetTechnicianID(nil)
	if w.HasAssignedTechnician() {
		t.Fatal("technician cleared")
	}
}

func TestServiceRequestDerived(t *testing.T) {
	s := NewServiceRequest(Raw{"orderNumber": "SR-1", "description": "Compressor noise", "status": "resolved", "priority": "high"})
	if got := s.Summary(); got != "[#SR-1] Compressor noise (high)" {
		t.Fatalf("summary=%q", got)
	}
	if !s.CanBeRated() || s.StatusBadgeClass() != "status-resolved" {
		t.Fatalf("rated=%v badge=%q", s.CanBeRated(), s.StatusBadgeClass())
	}
	rating := 0.0
	s.SetRating(&rating)
	if !s.CanBeRated() {
		t.Fatal("a zero rating still allows feedback")
	}
	rating = 5
	if s.CanBeRated() {
		t.Fatal("rated request")
	}

	s = NewServiceRequest(Raw{"description": "ééééé ééééé ééééé ééééé ééééé ééééé ééééé ééééé ééééé ééééé ééééé"})
	if got := []rune(s.ToAPI().Title); len(got) != 50 {
		t.Fatalf("title runes=%d", len(got))
	}
}

func TestTechnicianDerived(t *testing.T) {
	cases := []struct {
		availability, class string
	}{
		{"Available", "status-available"},
		{"occupied", "status-occupied"},
		{"On Leave", "status-on-leave"},
		{"", "status-unknown"},
	}
	for _, tc := range cases {
		tech := NewTechnician(Raw{"availability": tc.availability})
		if got := tech.AvailabilityClass(); got != tc.class {
			t.Fatalf("%q: got %q", tc.availability, got)
		}
	}
	if got := NewTechnician(Raw{"averageRating": "4.46"}).RatingDisplay(); got != "4.5 / 5" {
		t.Fatalf("rating=%q", got)
	}
	if got := NewTechnician(nil).RatingDisplay(); got != "N/A" {
		t.Fatalf("rating=%q", got)
	}
}

func TestReadingDerived(t *testing.T) {
	r := NewTemperatureReading(Raw{"value": "-17.2", "timestamp": "2024-03-05T09:07:00Z"})
	if r.Temperature != -17.2 {
		t.Fatalf("temperature=%v", r.Temperature)
	}
	if r.FormattedTime() != "09:07" || r.HourBucket() != "9:00" {
		t.Fatalf("time=%q bucket=%q", r.FormattedTime(), r.HourBucket())
	}
	if got := NewTemperatureReading(Raw{"timestamp": "soon"}).FormattedTime(); got != "soon" {
		t.Fatalf("unparsable=%q", got)
	}

	d := NewDailyTemperatureAverage(Raw{"date": "2024-03-05"})
	if d.DayName() != "Tue" {
		t.Fatalf("day=%q", d.DayName())
	}
}

func TestNotificationMarkAsRead(t *testing.T) {
	n := NewNotification(Raw{"id": "n1"})
	n.MarkAsRead()
	if n.IsUnread() || n.Status != NotificationRead {
		t.Fatalf("status=%q", n.Status)
	}
}

func TestNewRentalPriceTiers(t *testing.T) {
	p := NewRentalPrice(Raw{
		"baseMonthlyPrice": "120",
		"discounts": []any{
			map[string]any{"months": 3, "percentage": 5},
			"garbage",
			map[string]any{"months": "12", "percentage": "15"},
		},
	})
	if p.BaseMonthlyPrice != 120 || len(p.Discounts) != 3 {
		t.Fatalf("price=%+v", p)
	}
	if p.Discounts[1] != (DiscountTier{}) || p.Discounts[2] != (DiscountTier{Months: 12, Percentage: 15}) {
		t.Fatalf("tiers=%+v", p.Discounts)
	}
}
