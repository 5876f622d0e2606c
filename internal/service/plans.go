package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ositopolar/fleet-console/internal/api"
	"github.com/ositopolar/fleet-console/internal/domain"
	"github.com/ositopolar/fleet-console/internal/repository"
)

type PlanService struct {
	backend *api.Client
}

func (s *PlanService) List(ctx context.Context, audience api.Audience) ([]domain.Plan, error) {
	return s.backend.Plans(ctx, audience)
}

type NotificationService struct {
	backend *api.Client
	store   ReadingStore
	mirror  NotificationMirror
}

// ForUser merges the backend notifications of userID with the alerts
// raised locally by ingestion, newest first.
func (s *NotificationService) ForUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	remote, err := s.backend.Notifications(ctx, userID)
	if err != nil {
		return nil, err
	}
	local, err := s.store.NotificationsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := append(remote, local...)
	sort.SliceStable(out, func(i, j int) bool {
		return notificationTime(out[i]).After(notificationTime(out[j]))
	})
	return out, nil
}

func notificationTime(n domain.Notification) time.Time {
	t, _ := domain.ParseTimestamp(n.Timestamp)
	return t
}

// MarkRead marks a locally raised alert read, falling back to the backend
// for notifications ingestion did not create.
func (s *NotificationService) MarkRead(ctx context.Context, id string) (domain.Notification, error) {
	n, err := s.store.MarkNotificationRead(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return s.backend.MarkNotificationRead(ctx, id)
	}
	if err != nil {
		return n, err
	}
	if s.mirror != nil {
		if err := s.mirror.MarkRead(ctx, id); err != nil {
			log.Warn().Err(err).Str("notification_id", id).Msg("mirror mark read failed")
		}
	}
	return n, nil
}

var ErrMirrorDisabled = errors.New("notification log is not configured")

// AlertHistory returns the alerts raised for one equipment from the
// long-term notification log.
func (s *NotificationService) AlertHistory(ctx context.Context, equipmentID string) ([]domain.Notification, error) {
	if s.mirror == nil {
		return nil, ErrMirrorDisabled
	}
	return s.mirror.ForEquipment(ctx, equipmentID)
}
