package database

import (
	"context"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/ositopolar/fleet-console/internal/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS temperature_readings (
  id TEXT PRIMARY KEY,
  equipment_id BIGINT NOT NULL,
  temperature DOUBLE PRECISION NOT NULL,
  timestamp TIMESTAMPTZ NOT NULL,
  status TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_readings_equipment_ts ON temperature_readings(equipment_id, timestamp DESC);

CREATE TABLE IF NOT EXISTS notifications (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'unread',
  timestamp TIMESTAMPTZ NOT NULL,
  user_id TEXT NOT NULL DEFAULT '',
  equipment_id TEXT NOT NULL DEFAULT '',
  type TEXT NOT NULL DEFAULT 'alert'
);
CREATE INDEX IF NOT EXISTS idx_notifications_user_ts ON notifications(user_id, timestamp DESC);

CREATE TABLE IF NOT EXISTS console_session (
  slot SMALLINT PRIMARY KEY DEFAULT 1,
  user_id BIGINT NOT NULL,
  username TEXT NOT NULL,
  token TEXT NOT NULL
);
`

func Connect() (*sqlx.DB, error) {
	return sqlx.Connect("pgx", config.DBDSN())
}

// Migrate creates the tables used by the repository when missing.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
