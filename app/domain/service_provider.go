package domain

import (
	"github.com/google/wire"

	"github.com/RumenDamyanov/go-seo/app/domain/ai"
	"github.com/RumenDamyanov/go-seo/app/domain/analysis"
	"github.com/RumenDamyanov/go-seo/app/domain/generationlog"
	"github.com/RumenDamyanov/go-seo/app/domain/healthcheck"
	"github.com/RumenDamyanov/go-seo/app/domain/seo"
)

var ServiceProvider = wire.NewSet(
	analysis.NewHTMLAnalyzer,
	wire.Bind(new(analysis.Analyzer), new(*analysis.HTMLAnalyzer)),
	ai.NewRegistry,
	generationlog.NewService,
	seo.NewGenerator,
	healthcheck.NewService,
)
