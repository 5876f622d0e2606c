package domain

import (
	"fmt"
	"strings"
)

type Technician struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Specialization string  `json:"specialization"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email"`
	AverageRating  float64 `json:"averageRating"`
	Availability   string  `json:"availability"`
	CompanyID      int64   `json:"companyId"`
}

func NewTechnician(raw Raw) Technician {
	return Technician{
		ID:             raw.int(0, "id"),
		Name:           raw.str("", "name"),
		Specialization: raw.str("", "specialization"),
		Phone:          raw.str("", "phone"),
		Email:          raw.str("", "email"),
		AverageRating:  raw.float(0, "averageRating"),
		Availability:   raw.str("Unknown", "availability"),
		CompanyID:      raw.int(0, "companyId"),
	}
}

func (t Technician) AvailabilityStatus() string {
	return t.Availability
}

func (t Technician) AvailabilityClass() string {
	switch strings.ToLower(t.Availability) {
	case "available":
		return "status-available"
	case "occupied":
		return "status-occupied"
	case "on leave":
		return "status-on-leave"
	default:
		return "status-unknown"
	}
}

// RatingDisplay formats the average rating as "4.5 / 5", or "N/A" when the
// technician has not been rated.
func (t Technician) RatingDisplay() string {
	if t.AverageRating <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f / 5", t.AverageRating)
}
