package controller

import (
	"encoding/json"
	"errors"
	"log"
	"testing"

	"github.com/DODOEX/b64huff/internal/common"
	"github.com/DODOEX/b64huff/internal/core/huffman"
	"github.com/DODOEX/b64huff/internal/database"
	"github.com/DODOEX/b64huff/internal/database/schema"
	"github.com/DODOEX/b64huff/internal/module/codec/repository"
	"github.com/DODOEX/b64huff/internal/module/codec/service"
	"github.com/DODOEX/b64huff/internal/module/shared"
	"github.com/DODOEX/b64huff/utils/config"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	gomock "go.uber.org/mock/gomock"
)

func newConfig(value map[string]any) *config.Conf {
	k := koanf.New(".")
	conf := &config.Conf{Koanf: k}
	if err := conf.Load(confmap.Provider(value, "."), nil); err != nil {
		log.Fatal(err)
	}
	return conf
}

func newRequest(body string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(fasthttp.MethodPost)
	ctx.Request.SetBodyString(body)
	return ctx
}

func createCodecController(t *testing.T) (*service.MockCodecService, CodecController) {
	ctrl := gomock.NewController(t)
	s := service.NewMockCodecService(ctrl)
	return s, NewCodecController(zerolog.Nop(), newConfig(map[string]any{}), s)
}

func TestHandleEncode(t *testing.T) {
	s, c := createCodecController(t)
	s.EXPECT().Encode(gomock.Any(), []byte("Man")).Return([]byte("artifact"), &common.JobProfile{ID: "job-1"}, nil)

	ctx := newRequest("Man")
	c.HandleEncode(ctx)

	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Errorf("expected %d, got %d", fasthttp.StatusOK, ctx.Response.StatusCode())
	}
	if string(ctx.Response.Body()) != "artifact" {
		t.Errorf("expected %s, got %s", "artifact", ctx.Response.Body())
	}
	if id := string(ctx.Response.Header.Peek("X-Job-Id")); id != "job-1" {
		t.Errorf("expected %s, got %s", "job-1", id)
	}
}

func TestHandleEncodeTooLarge(t *testing.T) {
	s, c := createCodecController(t)
	s.EXPECT().Encode(gomock.Any(), gomock.Any()).Return(nil, &common.JobProfile{ID: "job-2"}, common.ResourceExhaustedError("too large"))

	ctx := newRequest("Man")
	c.HandleEncode(ctx)

	if ctx.Response.StatusCode() != fasthttp.StatusRequestEntityTooLarge {
		t.Errorf("expected %d, got %d", fasthttp.StatusRequestEntityTooLarge, ctx.Response.StatusCode())
	}
	var body map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatal(err)
	}
	if body["error"] != common.KindResourceExhausted {
		t.Errorf("expected %s, got %v", common.KindResourceExhausted, body["error"])
	}
}

func TestHandleDecodeMalformed(t *testing.T) {
	s, c := createCodecController(t)
	s.EXPECT().Decode(gomock.Any(), gomock.Any()).Return(nil, &common.JobProfile{ID: "job-3"}, common.MalformedArtifactError("truncated"))

	ctx := newRequest("xx")
	c.HandleDecode(ctx)

	if ctx.Response.StatusCode() != fasthttp.StatusUnprocessableEntity {
		t.Errorf("expected %d, got %d", fasthttp.StatusUnprocessableEntity, ctx.Response.StatusCode())
	}
}

func TestHandleDecodeUnknownError(t *testing.T) {
	s, c := createCodecController(t)
	s.EXPECT().Decode(gomock.Any(), gomock.Any()).Return(nil, nil, errors.New("boom"))

	ctx := newRequest("xx")
	c.HandleDecode(ctx)

	if ctx.Response.StatusCode() != fasthttp.StatusInternalServerError {
		t.Errorf("expected %d, got %d", fasthttp.StatusInternalServerError, ctx.Response.StatusCode())
	}
}

func TestHandleCodebook(t *testing.T) {
	s, c := createCodecController(t)

	var weights huffman.WeightTable
	cb, _ := huffman.BuildCodebook(&weights)
	s.EXPECT().Inspect([]byte("artifact")).Return(huffman.Header{Padding: 3, Codebook: cb}, nil)

	ctx := newRequest("artifact")
	c.HandleCodebook(ctx)

	var body codebookBody
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Padding != 3 {
		t.Errorf("expected %d, got %d", 3, body.Padding)
	}
	if len(body.Codes) != huffman.AlphabetSize {
		t.Errorf("expected %d, got %d", huffman.AlphabetSize, len(body.Codes))
	}
	if body.Codes[0].Symbol != "A" || body.Codes[0].Bits != cb[0].String() {
		t.Errorf("expected A %s, got %s %s", cb[0].String(), body.Codes[0].Symbol, body.Codes[0].Bits)
	}
}

func newJobRequest(id string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(fasthttp.MethodGet)
	ctx.SetUserValue("id", id)
	return ctx
}

func TestHandleJob(t *testing.T) {
	s, c := createCodecController(t)
	s.EXPECT().Job(gomock.Any(), "job-1").Return(&schema.Job{UUID: "job-1", Status: string(common.Success)}, nil)

	ctx := newJobRequest("job-1")
	c.HandleJob(ctx)

	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Errorf("expected %d, got %d", fasthttp.StatusOK, ctx.Response.StatusCode())
	}
	var job schema.Job
	if err := json.Unmarshal(ctx.Response.Body(), &job); err != nil {
		t.Fatal(err)
	}
	if job.UUID != "job-1" {
		t.Errorf("expected %s, got %s", "job-1", job.UUID)
	}
}

func TestHandleJobErrors(t *testing.T) {
	s, c := createCodecController(t)
	s.EXPECT().Job(gomock.Any(), "job-2").Return(nil, service.ErrJobNotFound)
	s.EXPECT().Job(gomock.Any(), "job-3").Return(nil, repository.ErrNotConnected)

	ctx := newJobRequest("job-2")
	c.HandleJob(ctx)
	if ctx.Response.StatusCode() != fasthttp.StatusNotFound {
		t.Errorf("expected %d, got %d", fasthttp.StatusNotFound, ctx.Response.StatusCode())
	}

	ctx = newJobRequest("job-3")
	c.HandleJob(ctx)
	if ctx.Response.StatusCode() != fasthttp.StatusServiceUnavailable {
		t.Errorf("expected %d, got %d", fasthttp.StatusServiceUnavailable, ctx.Response.StatusCode())
	}
}

func TestHandleK8sHealthzDisabledBackends(t *testing.T) {
	conf := newConfig(map[string]any{})
	c := NewOtherController(
		zerolog.Nop(),
		shared.NewRabbitMQ(conf, zerolog.Nop()),
		shared.NewRedisClient(conf, zerolog.Nop()),
		database.NewDatabase(conf, zerolog.Nop()),
	)

	ctx := &fasthttp.RequestCtx{}
	c.HandleK8sHealthz(ctx)

	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Errorf("expected %d, got %d", fasthttp.StatusOK, ctx.Response.StatusCode())
	}
}

func TestHandleK8sHealthzNotConnected(t *testing.T) {
	conf := newConfig(map[string]any{"amqp.enable": true})
	c := NewOtherController(
		zerolog.Nop(),
		shared.NewRabbitMQ(conf, zerolog.Nop()),
		shared.NewRedisClient(conf, zerolog.Nop()),
		database.NewDatabase(conf, zerolog.Nop()),
	)

	ctx := &fasthttp.RequestCtx{}
	c.HandleK8sHealthz(ctx)

	if ctx.Response.StatusCode() != fasthttp.StatusInternalServerError {
		t.Errorf("expected %d, got %d", fasthttp.StatusInternalServerError, ctx.Response.StatusCode())
	}
}
