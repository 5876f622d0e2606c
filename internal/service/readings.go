package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ositopolar/fleet-console/internal/analytics"
	"github.com/ositopolar/fleet-console/internal/domain"
	"github.com/ositopolar/fleet-console/internal/normalize"
)

var (
	ErrUnknownEquipment = errors.New("reading has no equipment id")
	ErrArchiveDisabled  = errors.New("report archive is not configured")
)

type EquipmentSource interface {
	GetEquipment(ctx context.Context, id int64) (domain.Equipment, error)
}

type ReadingService struct {
	equipment EquipmentSource
	store     ReadingStore
	alerts    AlertPublisher
	mirror    NotificationMirror
	archive   ReportArchive
}

// FromMQTT ingests one telemetry message. The equipment id comes from the
// payload or, failing that, from the last topic segment
// (fleet/readings/42). The reading is classified against the optimal range
// of its equipment; critical readings raise a notification for the
// equipment owner and an SNS alert.
func (s *ReadingService) FromMQTT(ctx context.Context, topic string, payload []byte) (domain.TemperatureReading, error) {
	decoded, err := normalize.Decode(payload)
	if err != nil {
		return domain.TemperatureReading{}, err
	}
	rd, err := normalize.One(decoded, domain.NewTemperatureReading)
	if err != nil {
		return rd, err
	}
	if rd.EquipmentID == 0 {
		rd.EquipmentID = equipmentFromTopic(topic)
	}
	if rd.EquipmentID == 0 {
		return rd, ErrUnknownEquipment
	}
	if rd.ID == "" {
		rd.ID = uuid.NewString()
	}
	if rd.Timestamp == "" {
		rd.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	}

	e, err := s.equipment.GetEquipment(ctx, rd.EquipmentID)
	if err != nil {
		return rd, fmt.Errorf("lookup equipment %d: %w", rd.EquipmentID, err)
	}
	rd.Status = analytics.ClassifyReading(rd.Temperature, e.OptimalTemperatureMin, e.OptimalTemperatureMax)

	if err := s.store.InsertReading(ctx, &rd); err != nil {
		return rd, fmt.Errorf("store reading: %w", err)
	}
	log.Debug().Int64("equipment_id", rd.EquipmentID).Float64("temperature", rd.Temperature).Str("status", string(rd.Status)).Msg("reading stored")

	if rd.Status == domain.TemperatureCritical {
		if err := s.raiseAlert(ctx, e, rd); err != nil {
			return rd, err
		}
	}
	return rd, nil
}

func (s *ReadingService) raiseAlert(ctx context.Context, e domain.Equipment, rd domain.TemperatureReading) error {
	n := domain.NewNotification(domain.Raw{
		"id":          uuid.NewString(),
		"title":       "Critical temperature",
		"description": fmt.Sprintf("%s reads %.1f°C, optimal %.1f°C to %.1f°C", displayName(e, rd.EquipmentID), rd.Temperature, e.OptimalTemperatureMin, e.OptimalTemperatureMax),
		"timestamp":   rd.Timestamp,
		"userId":      strconv.FormatInt(e.OwnerID, 10),
		"equipmentId": strconv.FormatInt(rd.EquipmentID, 10),
	})
	if err := s.store.InsertNotification(ctx, &n); err != nil {
		return fmt.Errorf("store notification: %w", err)
	}
	if s.mirror != nil {
		if err := s.mirror.Record(ctx, n); err != nil {
			log.Error().Err(err).Str("notification_id", n.ID).Msg("notification mirror failed")
		}
	}
	if s.alerts != nil {
		if _, err := s.alerts.SendTemperatureAlert(ctx, e, rd); err != nil {
			log.Error().Err(err).Int64("equipment_id", rd.EquipmentID).Msg("alert publish failed")
		}
	}
	log.Warn().Int64("equipment_id", rd.EquipmentID).Float64("temperature", rd.Temperature).Msg("critical temperature")
	return nil
}

func displayName(e domain.Equipment, id int64) string {
	if e.Name != "" {
		return e.Name
	}
	return fmt.Sprintf("Equipment #%d", id)
}

func equipmentFromTopic(topic string) int64 {
	i := strings.LastIndexByte(topic, '/')
	id, err := strconv.ParseInt(topic[i+1:], 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// Recent returns the newest ingested readings of one equipment as chart
// points.
func (s *ReadingService) Recent(ctx context.Context, equipmentID int64, limit int) ([]analytics.ChartPoint, error) {
	items, err := s.store.RecentReadings(ctx, equipmentID, limit)
	if err != nil {
		return nil, err
	}
	return analytics.ChartPoints(items), nil
}

// ArchiveDaily uploads the per-equipment averages of day and returns the
// report URL. With alerts configured a digest of the averages follows.
func (s *ReadingService) ArchiveDaily(ctx context.Context, day time.Time) (string, error) {
	if s.archive == nil {
		return "", ErrArchiveDisabled
	}
	averages, err := s.store.DailyAverages(ctx, day)
	if err != nil {
		return "", fmt.Errorf("aggregate readings: %w", err)
	}
	url, err := s.archive.UploadDailyReport(ctx, day, averages)
	if err != nil {
		return "", err
	}
	log.Info().Str("day", day.UTC().Format("2006-01-02")).Int("equipment", len(averages)).Msg("daily report archived")

	if s.alerts != nil && len(averages) > 0 {
		if err := s.alerts.SendDigest(ctx, digestLines(averages), day); err != nil {
			log.Error().Err(err).Msg("daily digest failed")
		}
	}
	return url, nil
}

func (s *ReadingService) Reports(ctx context.Context) ([]string, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	return s.archive.ListReports(ctx)
}

func digestLines(averages []domain.DailyTemperatureAverage) []string {
	lines := make([]string, 0, len(averages))
	for _, a := range averages {
		lines = append(lines, fmt.Sprintf("Equipment #%d: avg %.1f°C (min %.1f°C, max %.1f°C)",
			a.EquipmentID, a.AverageTemperature, a.MinTemperature, a.MaxTemperature))
	}
	return lines
}
