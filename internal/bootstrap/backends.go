package bootstrap

import (
	"context"

	"github.com/DODOEX/b64huff/internal/database"
	"github.com/DODOEX/b64huff/internal/module/shared"
	"github.com/rs/zerolog"
	clientv3 "go.etcd.io/etcd/client/v3"
	"go.uber.org/fx"
)

type backend struct {
	name    string
	enabled func() bool
	connect func(ctx context.Context) error
	close   func() error
}

// InitBackends connects the optional backends that are enabled and closes
// them on stop. A backend that fails to connect is logged and left
// disconnected; whatever depends on it fails on use.
func InitBackends(
	lifecycle fx.Lifecycle,
	logger zerolog.Logger,
	database *database.Database,
	amqp *shared.Amqp,
	etcd *clientv3.Client,
	redis *shared.RedisClient,
) {
	logger = logger.With().Str("name", "backends").Logger()

	backends := []backend{
		{"Database", database.Enabled, database.Connect, database.Close},
		{"Redis", redis.Enabled, redis.Connect, redis.Close},
		{"Amqp", amqp.Enabled, amqp.Connect, amqp.Close},
	}

	lifecycle.Append(
		fx.Hook{
			OnStart: func(ctx context.Context) error {
				for i, b := range backends {
					if !b.enabled() {
						logger.Debug().Msgf("%d- The %s is disabled.", i+1, b.name)
						continue
					}
					if err := b.connect(ctx); err != nil {
						logger.Error().Err(err).Msgf("%d- An unknown error interrupted when to connect the %s!", i+1, b.name)
					} else {
						logger.Info().Msgf("%d- Connected the %s succesfully!", i+1, b.name)
					}
				}
				return nil
			},
			OnStop: func(ctx context.Context) error {
				var i = 1

				if etcd != nil {
					if err := etcd.Close(); err != nil {
						logger.Error().Err(err).Msgf("%d- An unknown error occurred when to closed the etcd!", i)
					} else {
						logger.Debug().Msgf("%d- Closed the ETCD succesfully!", i)
					}
				}
				i++

				for _, b := range backends {
					if b.enabled() {
						if err := b.close(); err != nil {
							logger.Error().Err(err).Msgf("%d- An unknown error occurred when to closed the %s!", i, b.name)
						} else {
							logger.Debug().Msgf("%d- Closed the %s succesfully!", i, b.name)
						}
					}
					i++
				}

				return nil
			},
		},
	)
}
