package cloud

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog/log"

	"github.com/ositopolar/fleet-console/internal/domain"
)

type snsAPI interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSClient publishes fleet alerts to one SNS topic.
type SNSClient struct {
	svc      snsAPI
	topicArn string
}

func NewSNSClient(ctx context.Context, region, topicArn string) (*SNSClient, error) {
	cfg, err := loadConfig(ctx, region)
	if err != nil {
		return nil, err
	}
	return &SNSClient{svc: sns.NewFromConfig(cfg), topicArn: topicArn}, nil
}

// SendAlert publishes message and returns the SNS message id.
func (c *SNSClient) SendAlert(ctx context.Context, subject, message string) (string, error) {
	result, err := c.svc.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(c.topicArn),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})
	if err != nil {
		return "", fmt.Errorf("failed to publish to SNS: %w", err)
	}
	id := aws.ToString(result.MessageId)
	log.Debug().Str("message_id", id).Str("subject", subject).Msg("alert published")
	return id, nil
}

// SendTemperatureAlert reports a reading outside the optimal range of its
// equipment.
func (c *SNSClient) SendTemperatureAlert(ctx context.Context, e domain.Equipment, rd domain.TemperatureReading) (string, error) {
	name := e.Name
	if name == "" {
		name = fmt.Sprintf("equipment %d", rd.EquipmentID)
	}
	subject := fmt.Sprintf("Critical temperature: %s", name)
	message := fmt.Sprintf(
		"Temperature Alert\n\n"+
			"Equipment: %s (#%d)\n"+
			"Location: %s\n"+
			"Reading: %.1f°C\n"+
			"Optimal range: %.1f°C to %.1f°C\n"+
			"Status: %s\n"+
			"Time: %s\n\n"+
			"Please inspect the unit.",
		name,
		rd.EquipmentID,
		e.LocationName,
		rd.Temperature,
		e.OptimalTemperatureMin,
		e.OptimalTemperatureMax,
		rd.Status,
		rd.Timestamp,
	)
	return c.SendAlert(ctx, subject, message)
}

// SendDigest sends the daily temperature summary of day, one line per
// equipment. An empty list sends nothing.
func (c *SNSClient) SendDigest(ctx context.Context, lines []string, at time.Time) error {
	if len(lines) == 0 {
		return nil
	}
	date := at.UTC().Format("2006-01-02")
	message := fmt.Sprintf("Daily temperature summary for %s:\n\n", date)
	for i, l := range lines {
		message += fmt.Sprintf("%d. %s\n", i+1, l)
	}
	_, err := c.SendAlert(ctx, fmt.Sprintf("Fleet temperature summary %s (%d units)", date, len(lines)), message)
	return err
}
