package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/ositopolar/fleet-console/internal/api"
	"github.com/ositopolar/fleet-console/internal/cloud"
	"github.com/ositopolar/fleet-console/internal/config"
	"github.com/ositopolar/fleet-console/internal/database"
	"github.com/ositopolar/fleet-console/internal/repository"
	"github.com/ositopolar/fleet-console/internal/service"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	defer db.Close()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}

	deps := service.Deps{
		Backend: api.New(config.BackendURL(), config.BackendTimeout()),
		Store:   repository.New(db),
	}
	if config.UseCloudServices() {
		alerts, err := cloud.NewSNSClient(ctx, config.AWSRegion(), config.SNSTopicArn())
		if err != nil {
			log.Fatal().Err(err).Msg("sns init failed")
		}
		mirror, err := cloud.NewNotificationLog(ctx, config.AWSRegion(), config.NotificationsTable())
		if err != nil {
			log.Fatal().Err(err).Msg("dynamodb init failed")
		}
		deps.Alerts = alerts
		deps.Mirror = mirror
	}
	svcs := service.New(deps)

	opts := mqtt.NewClientOptions().AddBroker(config.MQTTBroker()).SetClientID("fleet-ingestor")
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	handler := func(_ mqtt.Client, msg mqtt.Message) {
		mctx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		if _, err := svcs.Readings.FromMQTT(mctx, msg.Topic(), msg.Payload()); err != nil {
			log.Error().Err(err).Str("topic", msg.Topic()).Msg("ingest failed")
		}
	}

	// readings arrive on the base topic or on one sub-topic per equipment
	topic := config.MQTTTopic()
	filters := map[string]byte{topic: 0, topic + "/+": 0}
	if token := client.SubscribeMultiple(filters, handler); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("subscribe failed")
	}

	log.Info().Str("topic", topic).Msg("ingestor running; Ctrl+C to stop")
	<-ctx.Done()
	log.Info().Msg("ingestor stopping")
}
