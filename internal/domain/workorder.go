package domain

import "fmt"

// WorkOrder is a unit of field work, usually spawned from a ServiceRequest.
type WorkOrder struct {
	ID                     string   `json:"id"`
	WorkOrderNumber        string   `json:"workOrderNumber"`
	ServiceRequestID       *string  `json:"serviceRequestId"`
	Title                  string   `json:"title"`
	Description            string   `json:"description"`
	IssueDetails           string   `json:"issueDetails"`
	CreationTime           *string  `json:"creationTime"`
	Status                 string   `json:"status"`
	Priority               string   `json:"priority"`
	AssignedTechnicianID   *string  `json:"assignedTechnicianId"`
	ScheduledDate          *string  `json:"scheduledDate"`
	TimeSlot               string   `json:"timeSlot"`
	ServiceAddress         string   `json:"serviceAddress"`
	DesiredCompletionDate  *string  `json:"desiredCompletionDate"`
	ActualCompletionDate   *string  `json:"actualCompletionDate"`
	ResolutionDetails      string   `json:"resolutionDetails"`
	TechnicianNotes        string   `json:"technicianNotes"`
	Cost                   *float64 `json:"cost"`
	CustomerFeedbackRating *float64 `json:"customerFeedbackRating"`
	FeedbackSubmissionDate *string  `json:"feedbackSubmissionDate"`
	EquipmentID            string   `json:"equipmentId"`
	ServiceType            string   `json:"serviceType"`
}

// NewWorkOrder resolves the legacy keys orderNumber, technicianId, rating
// and completionDate into their canonical fields.
func NewWorkOrder(raw Raw) WorkOrder {
	return WorkOrder{
		ID:                     raw.str("", "id"),
		WorkOrderNumber:        raw.str("", "workOrderNumber", "orderNumber"),
		ServiceRequestID:       raw.optStr("serviceRequestId"),
		Title:                  raw.str("", "title"),
		Description:            raw.str("", "description"),
		IssueDetails:           raw.str("", "issueDetails"),
		CreationTime:           raw.optStr("creationTime"),
		Status:                 raw.str("created", "status"),
		Priority:               raw.str("medium", "priority"),
		AssignedTechnicianID:   raw.optStr("assignedTechnicianId", "technicianId"),
		ScheduledDate:          raw.optStr("scheduledDate"),
		TimeSlot:               raw.str("", "timeSlot"),
		ServiceAddress:         raw.str("", "serviceAddress"),
		DesiredCompletionDate:  raw.optStr("desiredCompletionDate"),
		ActualCompletionDate:   raw.optStr("actualCompletionDate", "completionDate"),
		ResolutionDetails:      raw.str("", "resolutionDetails"),
		TechnicianNotes:        raw.str("", "technicianNotes"),
		Cost:                   raw.optFloat("cost"),
		CustomerFeedbackRating: raw.optFloat("customerFeedbackRating", "rating"),
		FeedbackSubmissionDate: raw.optStr("feedbackSubmissionDate"),
		EquipmentID:            raw.str("", "equipmentId"),
		ServiceType:            raw.str("", "serviceType"),
	}
}

func (w WorkOrder) OrderNumber() string          { return w.WorkOrderNumber }
func (w *WorkOrder) SetOrderNumber(v string)     { w.WorkOrderNumber = v }
func (w WorkOrder) TechnicianID() *string        { return w.AssignedTechnicianID }
func (w *WorkOrder) SetTechnicianID(v *string)   { w.AssignedTechnicianID = v }
func (w WorkOrder) Rating() *float64             { return w.CustomerFeedbackRating }
func (w *WorkOrder) SetRating(v *float64)        { w.CustomerFeedbackRating = v }
func (w WorkOrder) CompletionDate() *string      { return w.ActualCompletionDate }
func (w *WorkOrder) SetCompletionDate(v *string) { w.ActualCompletionDate = v }

func (w WorkOrder) HasAssignedTechnician() bool {
	return w.AssignedTechnicianID != nil
}

func (w WorkOrder) Summary() string {
	return fmt.Sprintf("[#%s] %s (%s)", w.WorkOrderNumber, w.Title, w.Status)
}

func (w WorkOrder) FormattedCreationTime() string {
	return formatOptionalTime(w.CreationTime)
}

var workOrderBadges = map[string]string{
	"created":     "status-created",
	"assigned":    "status-assigned",
	"in_progress": "status-in-progress",
	"on_hold":     "status-on-hold",
	"resolved":    "status-resolved",
	"completed":   "status-completed",
	"cancelled":   "status-cancelled",
}

// StatusBadgeClass is "" for statuses the UI has no badge for.
func (w WorkOrder) StatusBadgeClass() string {
	return workOrderBadges[w.Status]
}

func formatOptionalTime(ts *string) string {
	if ts == nil || *ts == "" {
		return "Not recorded"
	}
	t, ok := ParseTimestamp(*ts)
	if !ok {
		return "Invalid date"
	}
	return t.Format(dateTimeLayout)
}
