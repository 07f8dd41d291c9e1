//go:build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/RumenDamyanov/go-seo/app/domain"
	"github.com/RumenDamyanov/go-seo/app/infrastructure"
	"github.com/RumenDamyanov/go-seo/app/infrastructure/database"
	"github.com/RumenDamyanov/go-seo/app/infrastructure/database/repository"
	"github.com/RumenDamyanov/go-seo/app/interfaces/http"
	"github.com/RumenDamyanov/go-seo/app/interfaces/http/routes"
	"github.com/RumenDamyanov/go-seo/config"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		config.Provide,
		database.NewDB,
		repository.RepositoryProvider,
		infrastructure.InfrastructureProvider,
		domain.ServiceProvider,
		routes.RouteProvider,
		http.NewHttpServer,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
