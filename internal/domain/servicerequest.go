package domain

import "fmt"

// ServiceRequest is a customer request for service on one equipment.
type ServiceRequest struct {
	ID                     int64    `json:"id"`
	OrderNumber            string   `json:"orderNumber"`
	Title                  string   `json:"title"`
	Description            string   `json:"description"`
	IssueDetails           string   `json:"issueDetails"`
	ClientID               int64    `json:"clientId"`
	CompanyID              int64    `json:"companyId"`
	EquipmentID            int64    `json:"equipmentId"`
	RequestTime            *string  `json:"requestTime"`
	Status                 string   `json:"status"`
	Priority               string   `json:"priority"`
	Urgency                string   `json:"urgency"`
	IsEmergency            bool     `json:"isEmergency"`
	ServiceType            string   `json:"serviceType"`
	ScheduledDate          *string  `json:"scheduledDate"`
	TimeSlot               string   `json:"timeSlot"`
	ServiceAddress         string   `json:"serviceAddress"`
	DesiredCompletionDate  *string  `json:"desiredCompletionDate"`
	ActualCompletionDate   *string  `json:"actualCompletionDate"`
	CustomerFeedbackRating *float64 `json:"customerFeedbackRating"`
	AssignedTechnicianID   *int64   `json:"assignedTechnicianId"`
}

// NewServiceRequest resolves the legacy keys asap, technicianId, rating and
// completionDate. A canonical key always wins over its legacy alias.
func NewServiceRequest(raw Raw) ServiceRequest {
	return ServiceRequest{
		ID:                     raw.int(0, "id"),
		OrderNumber:            raw.str("", "orderNumber"),
		Title:                  raw.str("", "title"),
		Description:            raw.str("", "description"),
		IssueDetails:           raw.str("", "issueDetails"),
		ClientID:               raw.int(0, "clientId"),
		CompanyID:              raw.int(0, "companyId"),
		EquipmentID:            raw.int(0, "equipmentId"),
		RequestTime:            raw.optStr("requestTime"),
		Status:                 raw.str("pending", "status"),
		Priority:               raw.str("medium", "priority"),
		Urgency:                raw.str("normal", "urgency"),
		IsEmergency:            raw.bool(false, "isEmergency", "asap"),
		ServiceType:            raw.str("", "serviceType"),
		ScheduledDate:          raw.optStr("scheduledDate"),
		TimeSlot:               raw.str("", "timeSlot"),
		ServiceAddress:         raw.str("", "serviceAddress"),
		DesiredCompletionDate:  raw.optStr("desiredCompletionDate"),
		ActualCompletionDate:   raw.optStr("actualCompletionDate", "completionDate"),
		CustomerFeedbackRating: raw.optFloat("customerFeedbackRating", "rating"),
		AssignedTechnicianID:   raw.optInt("assignedTechnicianId", "technicianId"),
	}
}

func (s ServiceRequest) Asap() bool                   { return s.IsEmergency }
func (s *ServiceRequest) SetAsap(v bool)              { s.IsEmergency = v }
func (s ServiceRequest) TechnicianID() *int64         { return s.AssignedTechnicianID }
func (s *ServiceRequest) SetTechnicianID(v *int64)    { s.AssignedTechnicianID = v }
func (s ServiceRequest) Rating() *float64             { return s.CustomerFeedbackRating }
func (s *ServiceRequest) SetRating(v *float64)        { s.CustomerFeedbackRating = v }
func (s ServiceRequest) CompletionDate() *string      { return s.ActualCompletionDate }
func (s *ServiceRequest) SetCompletionDate(v *string) { s.ActualCompletionDate = v }

func (s ServiceRequest) HasTechnician() bool {
	return s.AssignedTechnicianID != nil
}

func (s ServiceRequest) Summary() string {
	title := s.Title
	if title == "" {
		title = s.Description
	}
	return fmt.Sprintf("[#%s] %s (%s)", s.OrderNumber, title, s.Priority)
}

func (s ServiceRequest) FormattedRequestTime() string {
	return formatOptionalTime(s.RequestTime)
}

var serviceRequestBadges = map[string]string{
	"pending":     "status-pending",
	"accepted":    "status-accepted",
	"in_progress": "status-in-progress",
	"resolved":    "status-resolved",
	"rejected":    "status-rejected",
	"completed":   "status-completed",
	"cancelled":   "status-cancelled",
}

func (s ServiceRequest) StatusBadgeClass() string {
	return serviceRequestBadges[s.Status]
}

// CanBeRated reports whether the customer may still leave feedback: the
// request is resolved and carries no rating yet.
func (s ServiceRequest) CanBeRated() bool {
	return s.Status == "resolved" && (s.CustomerFeedbackRating == nil || *s.CustomerFeedbackRating == 0)
}

// ServiceRequestPayload is the body accepted by the backend on create and
// update.
type ServiceRequestPayload struct {
	ID             int64   `json:"id,omitempty"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	IssueDetails   string  `json:"issueDetails"`
	ClientID       int64   `json:"clientId"`
	CompanyID      int64   `json:"companyId"`
	EquipmentID    int64   `json:"equipmentId"`
	Status         string  `json:"status"`
	Priority       string  `json:"priority"`
	Urgency        string  `json:"urgency"`
	IsEmergency    bool    `json:"isEmergency"`
	ServiceType    string  `json:"serviceType"`
	ScheduledDate  *string `json:"scheduledDate"`
	TimeSlot       string  `json:"timeSlot"`
	ServiceAddress string  `json:"serviceAddress"`
}

const payloadTitleLimit = 50

// ToAPI falls back to the first 50 characters of the description when the
// request has no title.
func (s ServiceRequest) ToAPI() ServiceRequestPayload {
	title := s.Title
	if title == "" {
		title = truncateRunes(s.Description, payloadTitleLimit)
	}
	return ServiceRequestPayload{
		ID:             s.ID,
		Title:          title,
		Description:    s.Description,
		IssueDetails:   s.IssueDetails,
		ClientID:       s.ClientID,
		CompanyID:      s.CompanyID,
		EquipmentID:    s.EquipmentID,
		Status:         s.Status,
		Priority:       s.Priority,
		Urgency:        s.Urgency,
		IsEmergency:    s.IsEmergency,
		ServiceType:    s.ServiceType,
		ScheduledDate:  s.ScheduledDate,
		TimeSlot:       s.TimeSlot,
		ServiceAddress: s.ServiceAddress,
	}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
