package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/DODOEX/b64huff/internal/database"
	"github.com/DODOEX/b64huff/internal/module/shared"
	prometheusfasthttp "github.com/gohutool/boot4go-prometheus/fasthttp"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

type otherController struct {
	logger  zerolog.Logger
	amqp    *shared.Amqp
	rclient *shared.RedisClient
	db      *database.Database
}

type OtherController interface {
	HandleK8sHealthz(ctx *fasthttp.RequestCtx)
	HandleMetrics(ctx *fasthttp.RequestCtx)
}

func NewOtherController(
	logger zerolog.Logger,
	amqp *shared.Amqp,
	rclient *shared.RedisClient,
	db *database.Database,
) OtherController {
	controller := &otherController{
		logger:  logger.With().Str("name", "other_controller").Logger(),
		amqp:    amqp,
		rclient: rclient,
		db:      db,
	}

	return controller
}

// HandleK8sHealthz checks every backend that is enabled; disabled ones are
// not part of the health of the service.
func (o *otherController) HandleK8sHealthz(ctx *fasthttp.RequestCtx) {
	var (
		_ctx, cancel = context.WithTimeout(context.Background(), 3*time.Second) // fasthttp 默认超时 3s
		wg           sync.WaitGroup
		mu           sync.Mutex
		err          error
	)
	defer cancel()

	report := func(_err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			return
		}
		err = _err
		o.logger.Error().Stack().Err(_err).Send()
		cancel()
	}

	if o.rclient != nil && o.rclient.Enabled() {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if o.rclient.Client == nil {
				report(errors.New("redis is not connected"))
			} else if _err := o.rclient.Client.Ping(_ctx).Err(); _err != nil {
				report(_err)
			}
		}()
	}

	if o.db != nil && o.db.Enabled() {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if o.db.DB == nil {
				report(errors.New("database is not connected"))
			} else if _err := o.db.DB.WithContext(_ctx).Exec("SELECT 1").Error; _err != nil {
				report(_err)
			}
		}()
	}

	if o.amqp != nil && o.amqp.Enabled() {
		if o.amqp.Conn == nil || o.amqp.Conn.IsClosed() {
			report(errors.New("amqp connection is closed"))
		}
	}

	wg.Wait()
	if err != nil {
		ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
	} else {
		ctx.Success("application/text", []byte("ok"))
	}
}

func (o *otherController) HandleMetrics(ctx *fasthttp.RequestCtx) {
	prometheusfasthttp.PrometheusHandler(prometheusfasthttp.HandlerOpts{})(ctx)
}
