package app

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/DODOEX/b64huff/utils/config"
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/prefork"
)

type Application struct {
	logger             zerolog.Logger
	Router             *router.Router
	s                  *fasthttp.Server
	IdleTimeout        time.Duration
	ReadTimeout        time.Duration
	AppName            string
	Hostname           string
	Port               string
	Concurrency        int
	MaxConnsPerIP      int
	MaxRequestBodySize int
	Prefork            bool
	Production         bool
	ReduceMemoryUsage  bool
	TCPKeepalive       bool
}

func NewApplication(logger zerolog.Logger, conf *config.Conf) *Application {
	hostname, port := config.ParseAddress(conf.String("app.host", "0.0.0.0:8080"))
	if hostname == "" {
		if conf.String("app.network", "tcp4") == "tcp6" {
			hostname = "[::1]"
		} else {
			hostname = "0.0.0.0"
		}
	}

	// 请求体上限跟随输入上限，外加一个码表的余量
	maxBody := conf.Int("app.max-request-body-size", fasthttp.DefaultMaxRequestBodySize)
	if limit := conf.Int("codec.max-input-bytes", 0); limit > 0 && limit+1024 > maxBody {
		maxBody = limit + 1024
	}

	application := &Application{
		logger:             logger.With().Str("name", "app").Logger(),
		Router:             router.New(),
		Production:         conf.Bool("app.production", false),
		AppName:            conf.String("app.name", "b64huff"),
		Hostname:           hostname,
		Port:               port,
		Prefork:            conf.Bool("app.prefork", false),
		Concurrency:        conf.Int("app.concurrency", fasthttp.DefaultConcurrency),
		IdleTimeout:        conf.Duration("app.idle-timeout", 30*time.Second),
		ReadTimeout:        conf.Duration("app.read-timeout", 0),
		ReduceMemoryUsage:  conf.Bool("app.reduce-memory-usage"),
		TCPKeepalive:       conf.Bool("app.tcp-keepalive"),
		MaxConnsPerIP:      conf.Int("app.max-conns-per-ip"),
		MaxRequestBodySize: maxBody,
	}

	return application
}

func (a *Application) HandlersCount() int {
	m := a.Router.List()
	c := 0
	for k := range m {
		c += len(m[k])
	}
	return c
}

func (a *Application) Run() error {
	a.s = &fasthttp.Server{
		Name:               a.AppName,
		Handler:            a.Router.Handler,
		Concurrency:        a.Concurrency,
		IdleTimeout:        a.IdleTimeout,
		ReadTimeout:        a.ReadTimeout,
		ReduceMemoryUsage:  a.ReduceMemoryUsage,
		TCPKeepalive:       a.TCPKeepalive,
		MaxConnsPerIP:      a.MaxConnsPerIP,
		MaxRequestBodySize: a.MaxRequestBodySize,
		CloseOnShutdown:    true,
	}

	a.Router.PanicHandler = func(ctx *fasthttp.RequestCtx, rcv any) {
		a.logger.Error().Stack().Interface("panic", rcv).Msgf("Panic occurred")
		ctx.Error(fasthttp.StatusMessage(fasthttp.StatusInternalServerError), fasthttp.StatusInternalServerError)
	}

	// Debug informations
	if !a.Production {
		prefork := "Enabled"
		procs := runtime.GOMAXPROCS(0)
		if !a.Prefork {
			procs = 1
			prefork = "Disabled"
		}

		a.logger.Debug().Msgf("Hostname: %s", a.Hostname)
		a.logger.Debug().Msgf("Port: %s", a.Port)
		a.logger.Debug().Msgf("Prefork: %s", prefork)
		a.logger.Debug().Msgf("Handlers: %d", a.HandlersCount())
		a.logger.Debug().Msgf("Max body: %d", a.MaxRequestBodySize)
		a.logger.Debug().Msgf("Processes: %d", procs)
		a.logger.Debug().Msgf("PID: %d", os.Getpid())
	}

	if a.Prefork {
		preforkServer := prefork.New(a.s)

		return preforkServer.ListenAndServe(a.Hostname + ":" + a.Port)
	}

	return a.s.ListenAndServe(a.Hostname + ":" + a.Port)
}

func (a *Application) Shutdown(ctx context.Context) error {
	if a.s == nil {
		return nil
	}
	return a.s.ShutdownWithContext(ctx)
}
