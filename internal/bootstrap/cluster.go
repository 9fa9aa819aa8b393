package bootstrap

import (
	"context"
	"time"

	"github.com/DODOEX/b64huff/internal/app"
	"github.com/DODOEX/b64huff/internal/module/codec"
	"github.com/DODOEX/b64huff/internal/module/codec/controller"
	"github.com/DODOEX/b64huff/internal/module/shared"
	"github.com/DODOEX/b64huff/utils"
	"github.com/DODOEX/b64huff/utils/config"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	fxzerolog "github.com/efectn/fx-zerolog"
	"github.com/prometheus/client_golang/prometheus"
)

func StartCluster(file shared.ConfigFile) {
	// 注册指标
	utils.RegisterMetrics(prometheus.DefaultRegisterer)

	fx.New(
		fx.Supply(file),

		// provide modules
		shared.NewSharedModule,
		codec.NewCodecModule,
		codec.NewCodecControllerModule,

		// application
		fx.Provide(app.NewApplication),

		// define options
		fx.WithLogger(fxzerolog.Init()),
		fx.StartTimeout(5*time.Minute),
		fx.StopTimeout(5*time.Minute),

		// launch
		fx.Invoke(InitBackends),
		fx.Invoke(InitCluster),
	).Run()
}

// function to start webserver
func InitCluster(
	lifecycle fx.Lifecycle,
	conf *config.Conf,
	logger zerolog.Logger,
	watcher *shared.WatcherClient,
	controller *controller.Controller,
	app *app.Application,
) {
	watchCtx, stopWatch := context.WithCancel(context.Background())
	logger = logger.With().Str("name", "cluster").Logger()

	lifecycle.Append(
		fx.Hook{
			OnStart: func(ctx context.Context) error {
				// 监控 etcd 上的配置，只热更新日志级别
				if watcher.Enabled() && conf.Exists(shared.KoanfEtcdStaticConfigToken) {
					watcher.OnChanged(watchCtx, conf.String(shared.KoanfEtcdStaticConfigToken), func(path string, value []byte) {
						next, err := shared.ParseConfig(value)
						if err != nil {
							logger.Error().Err(err).Msgf("Error loading watch config %s", path)
							return
						}
						if l, err := zerolog.ParseLevel(next.String("logger.level", "info")); err != nil {
							logger.Error().Err(err).Msg("Failed to parse log level")
						} else {
							zerolog.SetGlobalLevel(l)
							logger.Info().Msgf("Reload %s config, log level %s.", path, l)
						}
					})
					logger.Info().Msg("Watching etcd config...")
				}

				go func() {
					controller.RegisterRoutes()

					logger.Info().Msg("🚀 " + app.AppName + " is running! listen on http://" + app.Hostname + ":" + app.Port)
					if err := app.Run(); err != nil {
						logger.Error().Err(err).Msg("An unknown error occurred when to run server!")
					}
				}()

				return nil
			},
			OnStop: func(ctx context.Context) error {
				logger.Info().Msg("Running cleanup tasks...")
				stopWatch()

				if err := app.Shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("An unknown error occurred when to shutdown the Server!")
				} else {
					logger.Info().Msg("Shutdown the Server succesfully!")
				}

				logger.Info().Msgf("%s was successful shutdown.", app.AppName)
				logger.Info().Msg("\u001b[96msee you again👋\u001b[0m")

				return nil
			},
		},
	)
}
