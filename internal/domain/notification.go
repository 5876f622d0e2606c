package domain

const (
	NotificationUnread = "unread"
	NotificationRead   = "read"
)

type Notification struct {
	ID          string `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	Status      string `json:"status" db:"status"`
	Timestamp   string `json:"timestamp" db:"timestamp"`
	UserID      string `json:"userId" db:"user_id"`
	EquipmentID string `json:"equipmentId" db:"equipment_id"`
	Type        string `json:"type" db:"type"`
}

func NewNotification(raw Raw) Notification {
	return Notification{
		ID:          raw.str("", "id"),
		Title:       raw.str("", "title"),
		Description: raw.str("", "description"),
		Status:      raw.str(NotificationUnread, "status"),
		Timestamp:   raw.str("", "timestamp"),
		UserID:      raw.str("", "userId"),
		EquipmentID: raw.str("", "equipmentId"),
		Type:        raw.str("alert", "type"),
	}
}

func (n *Notification) MarkAsRead() {
	n.Status = NotificationRead
}

func (n Notification) IsUnread() bool {
	return n.Status == NotificationUnread
}
