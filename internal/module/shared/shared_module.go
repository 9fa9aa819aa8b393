package shared

import (
	"github.com/DODOEX/b64huff/internal/database"
	"go.uber.org/fx"
)

var NewSharedModule = fx.Options(
	fx.Provide(NewEtcdClient),
	fx.Provide(NewConfInstance),
	fx.Provide(NewLogger),

	fx.Provide(NewWatcherClientInstance),

	fx.Provide(database.NewDatabase),
	fx.Provide(NewRedisClient),
	fx.Provide(NewRabbitMQ),
)
