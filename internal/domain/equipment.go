package domain

import (
	"fmt"
	"strings"
	"time"
)

// TemperatureStatus classifies a temperature against an optimal range.
type TemperatureStatus string

const (
	TemperatureNormal   TemperatureStatus = "normal"
	TemperatureWarning  TemperatureStatus = "warning"
	TemperatureCritical TemperatureStatus = "critical"
)

// Equipment lifecycle statuses.
const (
	EquipmentActive      = "active"
	EquipmentInactive    = "inactive"
	EquipmentMaintenance = "maintenance"
	EquipmentError       = "error"
)

// Equipment is a refrigeration unit as exposed by the fleet backend.
type Equipment struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Type             string  `json:"type"`
	Model            string  `json:"model"`
	Manufacturer     string  `json:"manufacturer"`
	SerialNumber     string  `json:"serialNumber"`
	Code             string  `json:"code"`
	Cost             float64 `json:"cost"`
	TechnicalDetails string  `json:"technicalDetails"`
	Status           string  `json:"status"`
	IsPoweredOn      bool    `json:"isPoweredOn"`
	InstallationDate string  `json:"installationDate"`
	Notes            string  `json:"notes"`

	CurrentTemperature    float64 `json:"currentTemperature"`
	SetTemperature        float64 `json:"setTemperature"`
	OptimalTemperatureMin float64 `json:"optimalTemperatureMin"`
	OptimalTemperatureMax float64 `json:"optimalTemperatureMax"`

	LocationName      string  `json:"locationName"`
	LocationAddress   string  `json:"locationAddress"`
	LocationLatitude  float64 `json:"locationLatitude"`
	LocationLongitude float64 `json:"locationLongitude"`

	EnergyConsumptionCurrent float64 `json:"energyConsumptionCurrent"`
	EnergyConsumptionUnit    string  `json:"energyConsumptionUnit"`
	EnergyConsumptionAverage float64 `json:"energyConsumptionAverage"`

	OwnerID       int64  `json:"ownerId"`
	OwnerType     string `json:"ownerType"`
	OwnershipType string `json:"ownershipType"`
}

// Coordinates is a latitude/longitude pair in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Location struct {
	Name        string      `json:"name"`
	Address     string      `json:"address"`
	Coordinates Coordinates `json:"coordinates"`
}

type EnergyConsumption struct {
	Current float64 `json:"current"`
	Unit    string  `json:"unit"`
	Average float64 `json:"average"`
}

// NewEquipment builds a fully defaulted Equipment from raw backend data.
// Older payloads carrying nested location/energyConsumption objects are
// flattened into the location* and energyConsumption* fields.
func NewEquipment(raw Raw) Equipment {
	e := Equipment{
		Status:                EquipmentActive,
		EnergyConsumptionUnit: "watts",
		OwnershipType:         "owned",
	}
	e.apply(raw)
	return e
}

// Update shallow-merges the recognized keys of patch into e.
func (e *Equipment) Update(patch Raw) {
	e.apply(patch)
}

func (e *Equipment) apply(raw Raw) {
	e.ID = raw.int(e.ID, "id")
	e.Name = raw.str(e.Name, "name")
	e.Type = raw.str(e.Type, "type")
	e.Model = raw.str(e.Model, "model")
	e.Manufacturer = raw.str(e.Manufacturer, "manufacturer")
	e.SerialNumber = raw.str(e.SerialNumber, "serialNumber")
	e.Code = raw.str(e.Code, "code")
	e.Cost = raw.float(e.Cost, "cost")
	e.TechnicalDetails = raw.str(e.TechnicalDetails, "technicalDetails")
	e.Status = raw.str(e.Status, "status")
	e.IsPoweredOn = raw.bool(e.IsPoweredOn, "isPoweredOn")
	e.InstallationDate = raw.str(e.InstallationDate, "installationDate")
	e.Notes = raw.str(e.Notes, "notes")

	e.CurrentTemperature = raw.float(e.CurrentTemperature, "currentTemperature")
	e.SetTemperature = raw.float(e.SetTemperature, "setTemperature")
	e.OptimalTemperatureMin = raw.float(e.OptimalTemperatureMin, "optimalTemperatureMin")
	e.OptimalTemperatureMax = raw.float(e.OptimalTemperatureMax, "optimalTemperatureMax")

	loc := raw.object("location")
	coords := loc.object("coordinates")
	e.LocationName = raw.str(loc.str(e.LocationName, "name"), "locationName")
	e.LocationAddress = raw.str(loc.str(e.LocationAddress, "address"), "locationAddress")
	e.LocationLatitude = raw.float(coords.float(e.LocationLatitude, "lat"), "locationLatitude")
	e.LocationLongitude = raw.float(coords.float(e.LocationLongitude, "lng"), "locationLongitude")

	energy := raw.object("energyConsumption")
	e.EnergyConsumptionCurrent = raw.float(energy.float(e.EnergyConsumptionCurrent, "current"), "energyConsumptionCurrent")
	e.EnergyConsumptionUnit = raw.str(energy.str(e.EnergyConsumptionUnit, "unit"), "energyConsumptionUnit")
	e.EnergyConsumptionAverage = raw.float(energy.float(e.EnergyConsumptionAverage, "average"), "energyConsumptionAverage")

	e.OwnerID = raw.int(e.OwnerID, "ownerId")
	e.OwnerType = raw.str(e.OwnerType, "ownerType")
	e.OwnershipType = raw.str(e.OwnershipType, "ownershipType")
}

func (e Equipment) Location() Location {
	return Location{
		Name:    e.LocationName,
		Address: e.LocationAddress,
		Coordinates: Coordinates{
			Lat: e.LocationLatitude,
			Lng: e.LocationLongitude,
		},
	}
}

func (e Equipment) EnergyConsumption() EnergyConsumption {
	return EnergyConsumption{
		Current: e.EnergyConsumptionCurrent,
		Unit:    e.EnergyConsumptionUnit,
		Average: e.EnergyConsumptionAverage,
	}
}

// ClassifyTemperature rates cur against the inclusive range [low, high].
// Outside the range the reading is critical when it sits further than 20% of
// the range width beyond the bound it crossed, otherwise a warning. A
// zero-width range therefore turns every out-of-range value critical.
func ClassifyTemperature(cur, low, high float64) TemperatureStatus {
	if cur >= low && cur <= high {
		return TemperatureNormal
	}
	threshold := abs(high-low) * 0.2
	diff := abs(cur - high)
	if cur < low {
		diff = abs(cur - low)
	}
	if diff > threshold {
		return TemperatureCritical
	}
	return TemperatureWarning
}

func (e Equipment) TemperatureStatus() TemperatureStatus {
	return ClassifyTemperature(e.CurrentTemperature, e.OptimalTemperatureMin, e.OptimalTemperatureMax)
}

// StatusColor is the display color of the temperature status.
func (e Equipment) StatusColor() string {
	switch e.TemperatureStatus() {
	case TemperatureCritical:
		return "#FF5252"
	case TemperatureWarning:
		return "#FFC107"
	default:
		return "#4CAF50"
	}
}

func (e Equipment) TemperatureStatusClass() string {
	return "temp-" + string(e.TemperatureStatus())
}

var equipmentTypes = map[string]string{
	"freezer":         "Freezer",
	"cold_room":       "Cold Room",
	"refrigerator":    "Refrigerator",
	"cooler":          "Cooler",
	"air_conditioner": "Air Conditioner",
}

func (e Equipment) TypeDisplay() string {
	if label, ok := equipmentTypes[e.Type]; ok {
		return label
	}
	return e.Type
}

var equipmentStatuses = map[string]string{
	EquipmentActive:      "Active",
	EquipmentInactive:    "Inactive",
	EquipmentMaintenance: "Under Maintenance",
	EquipmentError:       "Error",
}

func (e Equipment) StatusDisplay() string {
	if label, ok := equipmentStatuses[e.Status]; ok {
		return label
	}
	return e.Status
}

// StatusClass is the CSS class of the lifecycle status.
func (e Equipment) StatusClass() string {
	if _, ok := equipmentStatuses[e.Status]; ok {
		return "status-" + e.Status
	}
	return "status-unknown"
}

func (e Equipment) IsOperational() bool {
	return e.Status == EquipmentActive && e.IsPoweredOn
}

func (e Equipment) NeedsAttention() bool {
	return e.TemperatureStatus() != TemperatureNormal ||
		e.Status == EquipmentError ||
		e.Status == EquipmentMaintenance
}

func (e Equipment) FormattedInstallationDate() string {
	if e.InstallationDate == "" {
		return "Not available"
	}
	t, ok := ParseTimestamp(e.InstallationDate)
	if !ok {
		return "Invalid date"
	}
	return t.Format(dateLayout)
}

// EquipmentSummary is the list-view projection of an Equipment.
type EquipmentSummary struct {
	ID                int64             `json:"id"`
	Name              string            `json:"name"`
	Type              string            `json:"type"`
	Status            string            `json:"status"`
	Temperature       string            `json:"temperature"`
	Location          string            `json:"location"`
	TemperatureStatus TemperatureStatus `json:"temperatureStatus"`
	IsOperational     bool              `json:"isOperational"`
	NeedsAttention    bool              `json:"needsAttention"`
}

func (e Equipment) Summary() EquipmentSummary {
	return EquipmentSummary{
		ID:                e.ID,
		Name:              e.Name,
		Type:              e.TypeDisplay(),
		Status:            e.StatusDisplay(),
		Temperature:       fmt.Sprintf("%g°C", e.CurrentTemperature),
		Location:          e.LocationName,
		TemperatureStatus: e.TemperatureStatus(),
		IsOperational:     e.IsOperational(),
		NeedsAttention:    e.NeedsAttention(),
	}
}

// EquipmentPayload is the body accepted by the backend on create and update.
type EquipmentPayload struct {
	Name                     string  `json:"name"`
	Type                     string  `json:"type"`
	Model                    string  `json:"model"`
	Manufacturer             string  `json:"manufacturer"`
	SerialNumber             string  `json:"serialNumber"`
	Code                     string  `json:"code"`
	Cost                     float64 `json:"cost"`
	TechnicalDetails         string  `json:"technicalDetails"`
	CurrentTemperature       float64 `json:"currentTemperature"`
	SetTemperature           float64 `json:"setTemperature"`
	OptimalTemperatureMin    float64 `json:"optimalTemperatureMin"`
	OptimalTemperatureMax    float64 `json:"optimalTemperatureMax"`
	LocationName             string  `json:"locationName"`
	LocationAddress          string  `json:"locationAddress"`
	LocationLatitude         float64 `json:"locationLatitude"`
	LocationLongitude        float64 `json:"locationLongitude"`
	EnergyConsumptionCurrent float64 `json:"energyConsumptionCurrent"`
	EnergyConsumptionUnit    string  `json:"energyConsumptionUnit"`
	EnergyConsumptionAverage float64 `json:"energyConsumptionAverage"`
	OwnerID                  int64   `json:"ownerId"`
	OwnerType                string  `json:"ownerType"`
	OwnershipType            string  `json:"ownershipType"`
	Notes                    string  `json:"notes"`
}

func (e Equipment) ToAPI() EquipmentPayload {
	return EquipmentPayload{
		Name:                     e.Name,
		Type:                     e.Type,
		Model:                    e.Model,
		Manufacturer:             e.Manufacturer,
		SerialNumber:             e.SerialNumber,
		Code:                     e.Code,
		Cost:                     e.Cost,
		TechnicalDetails:         e.TechnicalDetails,
		CurrentTemperature:       e.CurrentTemperature,
		SetTemperature:           e.SetTemperature,
		OptimalTemperatureMin:    e.OptimalTemperatureMin,
		OptimalTemperatureMax:    e.OptimalTemperatureMax,
		LocationName:             e.LocationName,
		LocationAddress:          e.LocationAddress,
		LocationLatitude:         e.LocationLatitude,
		LocationLongitude:        e.LocationLongitude,
		EnergyConsumptionCurrent: e.EnergyConsumptionCurrent,
		EnergyConsumptionUnit:    e.EnergyConsumptionUnit,
		EnergyConsumptionAverage: e.EnergyConsumptionAverage,
		OwnerID:                  e.OwnerID,
		OwnerType:                e.OwnerType,
		OwnershipType:            e.OwnershipType,
		Notes:                    e.Notes,
	}
}

// ValidationResult is returned by the explicit Validate operations.
type ValidationResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// temperatureSlack is how far outside the optimal range a reading may sit
// before Validate reports it as implausible.
const temperatureSlack = 10

func (e Equipment) Validate() ValidationResult {
	errs := []string{}
	if strings.TrimSpace(e.Name) == "" {
		errs = append(errs, "Equipment name is required")
	}
	if strings.TrimSpace(e.Type) == "" {
		errs = append(errs, "Equipment type is required")
	}
	if strings.TrimSpace(e.SerialNumber) == "" {
		errs = append(errs, "Serial number is required")
	}
	if e.OwnerID == 0 {
		errs = append(errs, "Owner ID is required")
	}
	if e.CurrentTemperature < e.OptimalTemperatureMin-temperatureSlack {
		errs = append(errs, "Current temperature is extremely low")
	}
	if e.CurrentTemperature > e.OptimalTemperatureMax+temperatureSlack {
		errs = append(errs, "Current temperature is extremely high")
	}
	return ValidationResult{
		IsValid:  len(errs) == 0,
		Errors:   errs,
		Warnings: []string{},
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// ParseTimestamp accepts the timestamp shapes the backend emits: RFC 3339
// with or without fractional seconds, a zone-less ISO date-time, or a date.
// Zone-less values are read as UTC and results keep their own offset.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		dateTimeLayout,
		dateLayout,
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
