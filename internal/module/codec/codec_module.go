package codec

import (
	"github.com/DODOEX/b64huff/internal/module/codec/controller"
	"github.com/DODOEX/b64huff/internal/module/codec/repository"
	"github.com/DODOEX/b64huff/internal/module/codec/service"
	"github.com/DODOEX/b64huff/internal/module/shared"
	"github.com/DODOEX/b64huff/internal/module/store"
	"go.uber.org/fx"
)

// register bulky of codec module
var NewCodecModule = fx.Options(
	// register repository of codec module
	fx.Provide(repository.NewJobRepository),
	fx.Provide(store.NewStore),

	// register service of codec module
	fx.Provide(func(amqp *shared.Amqp) service.Publisher { return amqp }),
	fx.Provide(service.NewCodecService),
)

// HTTP surface of codec module, only used by serve
var NewCodecControllerModule = fx.Options(
	fx.Provide(controller.NewCodecController),
	fx.Provide(controller.NewOtherController),

	fx.Provide(controller.NewController),
)
