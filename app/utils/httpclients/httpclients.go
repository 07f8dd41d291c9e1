package httpclients

import (
	"time"

	"github.com/RumenDamyanov/go-seo/app/utils/logger"
	"github.com/RumenDamyanov/go-seo/config"
	"github.com/sirupsen/logrus"
	"resty.dev/v3"
)

const defaultClientTimeout = 60 * time.Second

// NewClient builds a resty client with the shared defaults. The name shows up
// in outbound request logs so calls can be attributed to a component.
func NewClient(name string) *resty.Client {
	client := resty.New().
		SetTimeout(defaultClientTimeout).
		SetHeader("User-Agent", "go-seo/"+config.Version)

	client.AddResponseMiddleware(func(c *resty.Client, resp *resty.Response) error {
		logger.GetLogger().WithFields(logrus.Fields{
			"client":   name,
			"method":   resp.Request.Method,
			"url":      resp.Request.URL,
			"status":   resp.StatusCode(),
			"duration": resp.Duration().String(),
		}).Debug("outbound request")
		return nil
	})

	return client
}
