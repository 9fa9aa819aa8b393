package controller

import "github.com/DODOEX/b64huff/internal/app"

type Controller struct {
	app   *app.Application
	Codec CodecController
	Other OtherController
}

func NewController(
	app *app.Application,
	codec CodecController,
	other OtherController,
) *Controller {
	return &Controller{
		app:   app,
		Codec: codec,
		Other: other,
	}
}

// register routes of codec module
func (c *Controller) RegisterRoutes() {
	// define routes
	c.app.Router.GET("/metrics", c.Other.HandleMetrics)
	c.app.Router.GET("/k8s/healthz", c.Other.HandleK8sHealthz)

	c.app.Router.POST("/encode", c.Codec.HandleEncode)
	c.app.Router.POST("/decode", c.Codec.HandleDecode)
	c.app.Router.POST("/codebook", c.Codec.HandleCodebook)
	c.app.Router.GET("/jobs/{id}", c.Codec.HandleJob)
}
