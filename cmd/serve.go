package cmd

import (
	"pilgrimage-booking/internal/data/repository"
	"pilgrimage-booking/internal/wire"
	"pilgrimage-booking/pkg/cache"
	"pilgrimage-booking/pkg/database"
	"pilgrimage-booking/pkg/queue"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			logger.Info("Starting application",
				zap.String("app", config.App.Name),
				zap.String("port", config.App.Port),
				zap.Bool("debug", config.App.Debug),
			)

			db, err := database.InitDB(config.Database)
			if err != nil {
				logger.Error("Failed to connect to database", zap.Error(err))
				return err
			}
			defer db.Close()
			logger.Info("Database connected successfully")

			store := repository.NewStore(db, logger)

			redisClient := cache.NewRedisClient(config.Redis, logger)
			if redisClient != nil {
				defer redisClient.Close()
			}
			travelCache := repository.NewTravelCache(redisClient, config.Redis.TravelTTL, logger)

			var events queue.Publisher = queue.NopPublisher{}
			if config.AMQP.URL != "" {
				publisher := queue.NewAMQPPublisher(config.AMQP.URL, config.AMQP.Exchange, logger)
				defer publisher.Close()
				events = publisher
			} else {
				logger.Info("AMQP not configured, domain events disabled")
			}

			app, err := wire.Wiring(store, travelCache, events, config, logger)
			if err != nil {
				return err
			}

			logger.Info("Starting HTTP server", zap.String("port", config.App.Port))
			return APIServer(app.Router, config.App.Port, logger)
		},
	}
}
