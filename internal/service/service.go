package service

import (
	"context"
	"time"

	"github.com/ositopolar/fleet-console/internal/api"
	"github.com/ositopolar/fleet-console/internal/domain"
	"github.com/ositopolar/fleet-console/internal/session"
)

// ReadingStore persists ingested telemetry and locally raised alerts.
type ReadingStore interface {
	InsertReading(ctx context.Context, rd *domain.TemperatureReading) error
	RecentReadings(ctx context.Context, equipmentID int64, limit int) ([]domain.TemperatureReading, error)
	DailyAverages(ctx context.Context, day time.Time) ([]domain.DailyTemperatureAverage, error)
	InsertNotification(ctx context.Context, n *domain.Notification) error
	NotificationsForUser(ctx context.Context, userID string) ([]domain.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) (domain.Notification, error)
}

type AlertPublisher interface {
	SendTemperatureAlert(ctx context.Context, e domain.Equipment, rd domain.TemperatureReading) (string, error)
	SendDigest(ctx context.Context, lines []string, at time.Time) error
}

type NotificationMirror interface {
	Record(ctx context.Context, n domain.Notification) error
	MarkRead(ctx context.Context, id string) error
	ForEquipment(ctx context.Context, equipmentID string) ([]domain.Notification, error)
}

type ReportArchive interface {
	UploadDailyReport(ctx context.Context, day time.Time, averages []domain.DailyTemperatureAverage) (string, error)
	ListReports(ctx context.Context) ([]string, error)
}

// Deps are the collaborators of Services. The cloud fields stay nil when
// cloud services are disabled.
type Deps struct {
	Backend *api.Client
	Session *session.Session
	Store   ReadingStore
	Alerts  AlertPublisher
	Mirror  NotificationMirror
	Archive ReportArchive
}

type Services struct {
	Fleet         *FleetService
	Field         *FieldService
	Rental        *RentalService
	Plans         *PlanService
	Notifications *NotificationService
	Readings      *ReadingService
	Session       *session.Session
}

func New(d Deps) *Services {
	return &Services{
		Fleet:         &FleetService{backend: d.Backend},
		Field:         &FieldService{backend: d.Backend},
		Rental:        &RentalService{backend: d.Backend},
		Plans:         &PlanService{backend: d.Backend},
		Notifications: &NotificationService{backend: d.Backend, store: d.Store, mirror: d.Mirror},
		Readings: &ReadingService{
			equipment: d.Backend,
			store:     d.Store,
			alerts:    d.Alerts,
			mirror:    d.Mirror,
			archive:   d.Archive,
		},
		Session: d.Session,
	}
}
