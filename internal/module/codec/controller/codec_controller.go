package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/DODOEX/b64huff/internal/common"
	"github.com/DODOEX/b64huff/internal/core/huffman"
	"github.com/DODOEX/b64huff/internal/module/codec/repository"
	"github.com/DODOEX/b64huff/internal/module/codec/service"
	"github.com/DODOEX/b64huff/utils/config"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

type codecController struct {
	logger  zerolog.Logger
	service service.CodecService
	appName string
}

type CodecController interface {
	HandleEncode(ctx *fasthttp.RequestCtx)
	HandleDecode(ctx *fasthttp.RequestCtx)
	HandleCodebook(ctx *fasthttp.RequestCtx)
	HandleJob(ctx *fasthttp.RequestCtx)
}

func NewCodecController(
	logger zerolog.Logger,
	conf *config.Conf,
	service service.CodecService,
) CodecController {
	controller := &codecController{
		logger:  logger.With().Str("name", "codec_controller").Logger(),
		service: service,
		appName: conf.String("app.name", "b64huff"),
	}

	return controller
}

type codeRecord struct {
	Symbol string `json:"symbol"`
	Length uint8  `json:"length"`
	Bits   string `json:"bits"`
}

type codebookBody struct {
	Padding uint8        `json:"padding"`
	Codes   []codeRecord `json:"codes"`
}

func (c *codecController) reply(ctx *fasthttp.RequestCtx, statusCode int, contentType string, body []byte) {
	ctx.Response.Header.Set("Server", c.appName)
	ctx.Response.Header.SetContentType(contentType)
	ctx.SetStatusCode(statusCode)
	ctx.SetBody(body)
}

func (c *codecController) fail(ctx *fasthttp.RequestCtx, err error) {
	e, ok := common.AsCodecErrors(err)
	if !ok {
		c.logger.Error().Stack().Err(err).Send()
		e = common.NewCodecError(http.StatusInternalServerError, "Error", "internal error", err)
	}
	c.reply(ctx, e.StatusCode(), "application/json; charset=utf-8", e.Body())
}

func (c *codecController) done(ctx *fasthttp.RequestCtx, p *common.JobProfile) {
	if p != nil {
		ctx.Response.Header.Set("X-Job-Id", p.ID)
	}
	c.logger.Info().Int("status", ctx.Response.StatusCode()).Msgf("%s %s", ctx.Method(), ctx.RequestURI())
}

func (c *codecController) HandleEncode(ctx *fasthttp.RequestCtx) {
	artifact, p, err := c.service.Encode(ctx, ctx.PostBody())
	defer c.done(ctx, p)

	if err != nil {
		c.fail(ctx, err)
		return
	}
	c.reply(ctx, http.StatusOK, "application/octet-stream", artifact)
}

func (c *codecController) HandleDecode(ctx *fasthttp.RequestCtx) {
	data, p, err := c.service.Decode(ctx, ctx.PostBody())
	defer c.done(ctx, p)

	if err != nil {
		c.fail(ctx, err)
		return
	}
	c.reply(ctx, http.StatusOK, "application/octet-stream", data)
}

func (c *codecController) HandleCodebook(ctx *fasthttp.RequestCtx) {
	defer c.done(ctx, nil)

	h, err := c.service.Inspect(ctx.PostBody())
	if err != nil {
		c.fail(ctx, err)
		return
	}

	body := codebookBody{Padding: h.Padding, Codes: make([]codeRecord, 0, huffman.AlphabetSize)}
	for s, code := range h.Codebook {
		body.Codes = append(body.Codes, codeRecord{
			Symbol: huffman.Symbol(s).String(),
			Length: code.Len,
			Bits:   code.String(),
		})
	}

	data, err := json.Marshal(body)
	if err != nil {
		c.fail(ctx, err)
		return
	}
	c.reply(ctx, http.StatusOK, "application/json; charset=utf-8", data)
}

func (c *codecController) HandleJob(ctx *fasthttp.RequestCtx) {
	defer c.done(ctx, nil)

	id, _ := ctx.UserValue("id").(string)
	job, err := c.service.Job(ctx, id)
	switch {
	case errors.Is(err, service.ErrJobNotFound):
		c.fail(ctx, common.NewCodecError(http.StatusNotFound, "NotFound", "job "+id+" not found", err))
		return
	case errors.Is(err, repository.ErrNotConnected):
		c.fail(ctx, common.NewCodecError(http.StatusServiceUnavailable, "Unavailable", "jobs are not recorded", err))
		return
	case err != nil:
		c.fail(ctx, err)
		return
	}

	data, err := json.Marshal(job)
	if err != nil {
		c.fail(ctx, err)
		return
	}
	c.reply(ctx, http.StatusOK, "application/json; charset=utf-8", data)
}
