package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewEquipmentDefaults(t *testing.T) {
	for _, raw := range []Raw{nil, {}} {
		e := NewEquipment(raw)
		if e.Status != EquipmentActive {
			t.Fatalf("status=%q", e.Status)
		}
		if e.EnergyConsumptionUnit != "watts" || e.OwnershipType != "owned" {
			t.Fatalf("unit=%q ownership=%q", e.EnergyConsumptionUnit, e.OwnershipType)
		}
		if e.CurrentTemperature != 0 || e.Name != "" || e.IsPoweredOn {
			t.Fatalf("unexpected defaults %+v", e)
		}
	}
}

func TestNewEquipmentCoercesNumericStrings(t *testing.T) {
	e := NewEquipment(Raw{
		"id":                    "42",
		"cost":                  "abc",
		"currentTemperature":    "-18.5",
		"optimalTemperatureMin": " -20 ",
		"optimalTemperatureMax": true,
		"isPoweredOn":           "true",
	})
	if e.ID != 42 {
		t.Fatalf("id=%d", e.ID)
	}
	if e.Cost != 0 {
		t.Fatalf("cost=%v", e.Cost)
	}
	if e.CurrentTemperature != -18.5 || e.OptimalTemperatureMin != -20 {
		t.Fatalf("temps=%v %v", e.CurrentTemperature, e.OptimalTemperatureMin)
	}
	if e.OptimalTemperatureMax != 0 {
		t.Fatalf("bool must not coerce, got %v", e.OptimalTemperatureMax)
	}
	if !e.IsPoweredOn {
		t.Fatal("isPoweredOn")
	}
}

func TestNewEquipmentFlattensLegacyNesting(t *testing.T) {
	e := NewEquipment(Raw{
		"location": map[string]any{
			"name":        "Warehouse 3",
			"address":     "Av. Primavera 120",
			"coordinates": map[string]any{"lat": -12.1, "lng": -77.0},
		},
		"energyConsumption": map[string]any{"current": 310.0, "average": 290.0},
		"locationName":      "Dock B",
	})
	if e.LocationName != "Dock B" {
		t.Fatalf("flat key must win, got %q", e.LocationName)
	}
	loc := e.Location()
	if loc.Address != "Av. Primavera 120" || loc.Coordinates.Lat != -12.1 || loc.Coordinates.Lng != -77.0 {
		t.Fatalf("location=%+v", loc)
	}
	energy := e.EnergyConsumption()
	if energy.Current != 310 || energy.Average != 290 || energy.Unit != "watts" {
		t.Fatalf("energy=%+v", energy)
	}
}

func TestEquipmentUpdateMergesRecognizedKeys(t *testing.T) {
	e := NewEquipment(Raw{"name": "Freezer A", "currentTemperature": -18.0})
	e.Update(Raw{"currentTemperature": "-16", "unknown": "x"})
	if e.Name != "Freezer A" || e.CurrentTemperature != -16 {
		t.Fatalf("after update %+v", e)
	}
}

func TestClassifyTemperature(t *testing.T) {
	cases := []struct {
		name        string
		cur, lo, hi float64
		want        TemperatureStatus
	}{
		{"inside", 5, 0, 10, TemperatureNormal},
		{"lower bound", 0, 0, 10, TemperatureNormal},
		{"upper bound", 10, 0, 10, TemperatureNormal},
		{"far above", 15, 0, 10, TemperatureCritical},
		{"just above", 10.5, 0, 10, TemperatureWarning},
		{"just below", -1, 0, 10, TemperatureWarning},
		{"far below", -3, 0, 10, TemperatureCritical},
		{"zero width", 4.01, 4, 4, TemperatureCritical},
		{"zero width inside", 4, 4, 4, TemperatureNormal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyTemperature(tc.cur, tc.lo, tc.hi); got != tc.want {
				t.Fatalf("got %s want %s", got, tc.want)
			}
		})
	}
}

func TestEquipmentDerivedAttributes(t *testing.T) {
	e := NewEquipment(Raw{
		"type":                  "cold_room",
		"status":                "maintenance",
		"isPoweredOn":           true,
		"currentTemperature":    10.5,
		"optimalTemperatureMin": 0,
		"optimalTemperatureMax": 10,
	})
	if e.TemperatureStatus() != TemperatureWarning {
		t.Fatalf("status=%s", e.TemperatureStatus())
	}
	if e.StatusColor() != "#FFC107" || e.TemperatureStatusClass() != "temp-warning" {
		t.Fatalf("color=%s class=%s", e.StatusColor(), e.TemperatureStatusClass())
	}
	if e.TypeDisplay() != "Cold Room" || e.StatusDisplay() != "Under Maintenance" {
		t.Fatalf("display=%s %s", e.TypeDisplay(), e.StatusDisplay())
	}
	if e.StatusClass() != "status-maintenance" {
		t.Fatalf("class=%s", e.StatusClass())
	}
	if e.IsOperational() || !e.NeedsAttention() {
		t.Fatal("maintenance unit must not be operational")
	}

	e.Update(Raw{"status": "retired"})
	if e.StatusClass() != "status-unknown" || e.StatusDisplay() != "retired" {
		t.Fatalf("unknown status class=%s", e.StatusClass())
	}
}

func TestEquipmentDerivedAttributesDoNotMutate(t *testing.T) {
	e := NewEquipment(Raw{"currentTemperature": 15, "optimalTemperatureMax": 10})
	before := e
	_ = e.Summary()
	_ = e.NeedsAttention()
	if e != before {
		t.Fatal("derived attribute mutated the record")
	}
}

func TestFormattedInstallationDate(t *testing.T) {
	cases := map[string]string{
		"":                         "Not available",
		"yesterday":                "Invalid date",
		"2024-03-05":               "2024-03-05",
		"2024-03-05T10:11:12.345Z": "2024-03-05",
	}
	for in, want := range cases {
		e := NewEquipment(Raw{"installationDate": in})
		if got := e.FormattedInstallationDate(); got != want {
			t.Fatalf("%q: got %q want %q", in, got, want)
		}
	}
}

func TestEquipmentValidate(t *testing.T) {
	res := NewEquipment(nil).Validate()
	if res.IsValid || len(res.Errors) != 4 {
		t.Fatalf("empty equipment: %+v", res)
	}

	e := NewEquipment(Raw{
		"name":                  "Freezer A",
		"type":                  "freezer",
		"serialNumber":          "SN-1",
		"ownerId":               7,
		"currentTemperature":    -31,
		"optimalTemperatureMin": -20,
		"optimalTemperatureMax": -15,
	})
	res = e.Validate()
	if res.IsValid || len(res.Errors) != 1 || res.Errors[0] != "Current temperature is extremely low" {
		t.Fatalf("cold equipment: %+v", res)
	}

	e.Update(Raw{"currentTemperature": -25})
	if res := e.Validate(); !res.IsValid {
		t.Fatalf("within slack: %+v", res)
	}
}

func TestEquipmentToAPI(t *testing.T) {
	e := NewEquipment(Raw{"id": 3, "name": "Cooler", "location": map[string]any{"name": "Shop"}})
	p := e.ToAPI()
	if p.Name != "Cooler" || p.LocationName != "Shop" || p.EnergyConsumptionUnit != "watts" {
		t.Fatalf("payload=%+v", p)
	}
}

func TestLargeIDsKeepPrecision(t *testing.T) {
	var raw Raw
	dec := json.NewDecoder(strings.NewReader(`{"id": 9007199254740993, "ownerId": "9007199254740995", "cost": 12.75}`))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		t.Fatal(err)
	}
	e := NewEquipment(raw)
	if e.ID != 9007199254740993 || e.OwnerID != 9007199254740995 || e.Cost != 12.75 {
		t.Fatalf("id=%d owner=%d cost=%v", e.ID, e.OwnerID, e.Cost)
	}

	e = NewEquipment(Raw{"id": json.Number("1e30"), "ownerId": json.Number("7.9")})
	if e.ID != 0 || e.OwnerID != 7 {
		t.Fatalf("id=%d owner=%d", e.ID, e.OwnerID)
	}
}
