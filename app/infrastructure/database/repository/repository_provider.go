package repository

import (
	"github.com/google/wire"

	"github.com/RumenDamyanov/go-seo/app/infrastructure/database/repository/generationrepo"
)

var RepositoryProvider = wire.NewSet(
	generationrepo.ProvideGenerationRepository,
)
