package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/RumenDamyanov/go-seo/app/interfaces/http/middleware"
	v1 "github.com/RumenDamyanov/go-seo/app/interfaces/http/routes/v1"
	"github.com/RumenDamyanov/go-seo/app/utils/logger"
	"github.com/RumenDamyanov/go-seo/config"
	_ "github.com/RumenDamyanov/go-seo/docs"
)

type HttpServer struct {
	engine  *gin.Engine
	cfg     *config.Config
	v1Route *v1.V1Route
}

func NewHttpServer(cfg *config.Config, v1Route *v1.V1Route) *HttpServer {
	gin.SetMode(gin.ReleaseMode)
	server := HttpServer{
		engine:  gin.New(),
		cfg:     cfg,
		v1Route: v1Route,
	}
	server.engine.Use(gin.Recovery())
	server.engine.Use(middleware.LoggerMiddleware(logger.GetLogger()))
	server.engine.Use(middleware.CORS())
	server.engine.GET("/health-check", func(c *gin.Context) {
		c.JSON(200, "ok")
	})
	server.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	server.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
	return &server
}

func (httpServer *HttpServer) Run() error {
	port := httpServer.cfg.Server.Port
	httpServer.v1Route.RegisterRouter(httpServer.engine.Group("/"))
	if err := httpServer.engine.Run(fmt.Sprintf(":%d", port)); err != nil {
		return err
	}
	return nil
}
