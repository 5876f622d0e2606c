package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ositopolar/fleet-console/internal/domain"
	"github.com/ositopolar/fleet-console/internal/session"
)

var ErrNotFound = errors.New("record not found")

type Repos struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repos { return &Repos{db: db} }

func (r *Repos) InsertReading(ctx context.Context, rd *domain.TemperatureReading) error {
	_, err := r.db.NamedExecContext(ctx, `INSERT INTO temperature_readings(id, equipment_id, temperature, timestamp, status)
		VALUES (:id, :equipment_id, :temperature, :timestamp, :status)`, rd)
	return err
}

// RecentReadings returns the newest readings of one equipment first.
func (r *Repos) RecentReadings(ctx context.Context, equipmentID int64, limit int) ([]domain.TemperatureReading, error) {
	if limit <= 0 {
		limit = 100
	}
	out := []domain.TemperatureReading{}
	err := r.db.SelectContext(ctx, &out, `SELECT id, equipment_id, temperature, timestamp, status
		FROM temperature_readings WHERE equipment_id = $1 ORDER BY timestamp DESC LIMIT $2`, equipmentID, limit)
	return out, err
}

// DailyAverages aggregates the readings of the UTC day containing day, one
// row per equipment.
func (r *Repos) DailyAverages(ctx context.Context, day time.Time) ([]domain.DailyTemperatureAverage, error) {
	start := day.UTC().Truncate(24 * time.Hour)
	out := []domain.DailyTemperatureAverage{}
	err := r.db.SelectContext(ctx, &out, `SELECT
			equipment_id::text || '-' || to_char($1::timestamptz AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS id,
			equipment_id,
			to_char($1::timestamptz AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS date,
			AVG(temperature) AS average_temperature,
			MIN(temperature) AS min_temperature,
			MAX(temperature) AS max_temperature
		FROM temperature_readings
		WHERE timestamp >= $1 AND timestamp < $2
		GROUP BY equipment_id
		ORDER BY equipment_id`, start, start.Add(24*time.Hour))
	return out, err
}

func (r *Repos) InsertNotification(ctx context.Context, n *domain.Notification) error {
	_, err := r.db.NamedExecContext(ctx, `INSERT INTO notifications(id, title, description, status, timestamp, user_id, equipment_id, type)
		VALUES (:id, :title, :description, :status, :timestamp, :user_id, :equipment_id, :type)`, n)
	return err
}

// NotificationsForUser lists newest first.
func (r *Repos) NotificationsForUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	out := []domain.Notification{}
	err := r.db.SelectContext(ctx, &out, `SELECT id, title, description, status, timestamp, user_id, equipment_id, type
		FROM notifications WHERE user_id = $1 ORDER BY timestamp DESC`, userID)
	return out, err
}

func (r *Repos) MarkNotificationRead(ctx context.Context, id string) (domain.Notification, error) {
	var n domain.Notification
	err := r.db.GetContext(ctx, &n, `UPDATE notifications SET status = $2 WHERE id = $1
		RETURNING id, title, description, status, timestamp, user_id, equipment_id, type`, id, domain.NotificationRead)
	if errors.Is(err, sql.ErrNoRows) {
		return n, fmt.Errorf("%w: notification %s", ErrNotFound, id)
	}
	return n, err
}

// SessionStore persists the console session in a single-row table.
type SessionStore struct {
	db *sqlx.DB
}

func (r *Repos) Sessions() *SessionStore { return &SessionStore{db: r.db} }

func (s *SessionStore) Load(ctx context.Context) (domain.AuthResponse, error) {
	var a domain.AuthResponse
	err := s.db.GetContext(ctx, &a, `SELECT user_id, username, token FROM console_session WHERE slot = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return a, session.ErrNoCredentials
	}
	return a, err
}

func (s *SessionStore) Save(ctx context.Context, a domain.AuthResponse) error {
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO console_session(slot, user_id, username, token)
		VALUES (1, :user_id, :username, :token)
		ON CONFLICT (slot) DO UPDATE SET user_id = EXCLUDED.user_id, username = EXCLUDED.username, token = EXCLUDED.token`, a)
	return err
}

func (s *SessionStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM console_session`)
	return err
}
