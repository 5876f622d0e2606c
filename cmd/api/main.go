package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ositopolar/fleet-console/internal/api"
	"github.com/ositopolar/fleet-console/internal/cloud"
	"github.com/ositopolar/fleet-console/internal/config"
	"github.com/ositopolar/fleet-console/internal/database"
	"github.com/ositopolar/fleet-console/internal/domain"
	"github.com/ositopolar/fleet-console/internal/events"
	httpHandlers "github.com/ositopolar/fleet-console/internal/http"
	"github.com/ositopolar/fleet-console/internal/repository"
	"github.com/ositopolar/fleet-console/internal/service"
	"github.com/ositopolar/fleet-console/internal/session"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	ctx := context.Background()

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	defer db.Close()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}
	repos := repository.New(db)

	bus := events.NewBus()
	bus.On(session.AuthChanged, func(payload any) {
		if a, ok := payload.(*domain.AuthResponse); ok && a != nil {
			log.Info().Str("username", a.Username).Msg("signed in")
			return
		}
		log.Info().Msg("signed out")
	})

	// sign-in goes out without a bearer token
	authClient := api.New(config.BackendURL(), config.BackendTimeout())
	sess := session.New(authClient, repos.Sessions(), bus)
	if err := sess.Init(ctx); err != nil {
		log.Fatal().Err(err).Msg("session restore failed")
	}
	backend := api.New(config.BackendURL(), config.BackendTimeout(), api.WithTokenSource(sess))

	deps := service.Deps{Backend: backend, Session: sess, Store: repos}
	if config.UseCloudServices() {
		archive, err := cloud.NewS3Client(ctx, config.AWSRegion(), config.S3Bucket())
		if err != nil {
			log.Fatal().Err(err).Msg("s3 init failed")
		}
		alerts, err := cloud.NewSNSClient(ctx, config.AWSRegion(), config.SNSTopicArn())
		if err != nil {
			log.Fatal().Err(err).Msg("sns init failed")
		}
		mirror, err := cloud.NewNotificationLog(ctx, config.AWSRegion(), config.NotificationsTable())
		if err != nil {
			log.Fatal().Err(err).Msg("dynamodb init failed")
		}
		deps.Archive = archive
		deps.Alerts = alerts
		deps.Mirror = mirror
	}
	svcs := service.New(deps)
	app := fiber.New()

	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })

	httpHandlers.Register(app, svcs)

	addr := config.APIAddr()
	log.Info().Str("addr", addr).Str("backend", config.BackendURL()).Msg("api listening")
	log.Fatal().Err(app.Listen(addr)).Msg("server exit")
}
