package main

import (
	"context"

	"github.com/mileusna/crontab"

	"github.com/RumenDamyanov/go-seo/app/domain/healthcheck"
	"github.com/RumenDamyanov/go-seo/app/infrastructure/aiprovider"
	"github.com/RumenDamyanov/go-seo/app/interfaces/http"
	"github.com/RumenDamyanov/go-seo/config/environment_variables"
)

type Application struct {
	HttpServer         *http.HttpServer
	HealthcheckService *healthcheck.HealthcheckCrontabService
}

func (application *Application) Start() {
	cron := crontab.New()
	crontabContext := context.Background()
	application.HealthcheckService.Start(crontabContext, cron)
	if err := application.HttpServer.Run(); err != nil {
		panic(err)
	}
}

func init() {
	environment_variables.EnvironmentVariables.LoadFromEnv()
	aiprovider.Init()
}

// @title Go SEO API
// @version 0.1.0
// @description AI assisted SEO metadata generation service.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	application, err := CreateApplication()
	if err != nil {
		panic(err)
	}
	application.Start()
}
