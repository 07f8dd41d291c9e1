package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/RumenDamyanov/go-seo/app/domain/ai"
	"github.com/RumenDamyanov/go-seo/app/domain/generationlog"
	"github.com/RumenDamyanov/go-seo/app/domain/seo"
	"github.com/RumenDamyanov/go-seo/app/infrastructure/ratelimit"
	"github.com/RumenDamyanov/go-seo/app/interfaces/http/middleware"
	"github.com/RumenDamyanov/go-seo/app/interfaces/http/responses"
	"github.com/RumenDamyanov/go-seo/app/utils/logger"
	"github.com/RumenDamyanov/go-seo/config"
)

// AdminRoute exposes administrative cache, rate limit and history operations.
type AdminRoute struct {
	cfg       *config.Config
	generator *seo.Generator
	registry  *ai.Registry
	limiter   *ratelimit.RateLimiter
	history   *generationlog.Service
}

// NewAdminRoute constructs an AdminRoute instance.
func NewAdminRoute(
	cfg *config.Config,
	generator *seo.Generator,
	registry *ai.Registry,
	limiter *ratelimit.RateLimiter,
	history *generationlog.Service,
) *AdminRoute {
	return &AdminRoute{
		cfg:       cfg,
		generator: generator,
		registry:  registry,
		limiter:   limiter,
		history:   history,
	}
}

// RegisterRouter wires the administrative endpoints.
func (route *AdminRoute) RegisterRouter(router gin.IRouter) {
	adminRouter := router.Group("/admin",
		middleware.AdminAuthMiddleware(route.cfg),
	)

	adminRouter.POST("/cache/invalidate", route.InvalidateCache)
	adminRouter.POST("/cache/clear", route.ClearCache)
	adminRouter.POST("/ratelimit/reset", route.ResetRateLimit)
	adminRouter.GET("/fallback-chain", route.GetFallbackChain)
	adminRouter.PUT("/fallback-chain", route.SetFallbackChain)
	adminRouter.GET("/generations", route.ListGenerations)
}

// AdminActionResponse represents the result of an administrative action.
type AdminActionResponse struct {
	Object  string `json:"object"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type CacheInvalidateRequest struct {
	Content  string            `json:"content" binding:"required"`
	Metadata map[string]string `json:"metadata"`
}

type RateLimitResetRequest struct {
	Provider string `json:"provider"`
}

type FallbackChainResponse struct {
	Object string   `json:"object"`
	Chain  []string `json:"chain"`
}

type FallbackChainRequest struct {
	Chain []string `json:"chain" binding:"required"`
}

type GenerationResponse struct {
	ID        uint   `json:"id"`
	Operation string `json:"operation"`
	Engine    string `json:"engine"`
	URL       string `json:"url,omitempty"`
	Output    string `json:"output"`
	CreatedAt int64  `json:"created_at"`
}

// InvalidateCache godoc
// @Summary Invalidate cached results for one piece of content
// @Description Drops the cached analysis and every derived result for the submitted content and metadata.
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CacheInvalidateRequest true "Content whose cache entries should be dropped"
// @Success 200 {object} AdminActionResponse
// @Failure 400 {object} responses.ErrorResponse "Invalid request payload"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Router /v1/admin/cache/invalidate [post]
func (route *AdminRoute) InvalidateCache(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	var request CacheInvalidateRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "a1c8e5f2-7d94-4b36-8e50-c2f7a9d14b68",
			Error: "Invalid request payload",
		})
		return
	}

	route.generator.InvalidateContent(ctx, request.Content, request.Metadata)

	reqCtx.JSON(http.StatusOK, AdminActionResponse{
		Object:  "cache.invalidation",
		Status:  "ok",
		Message: "cache entries invalidated",
	})
}

// ClearCache godoc
// @Summary Clear the response cache
// @Description Drops every cached analysis and generation result.
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} AdminActionResponse
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Router /v1/admin/cache/clear [post]
func (route *AdminRoute) ClearCache(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	route.generator.InvalidateAll(ctx)

	reqCtx.JSON(http.StatusOK, AdminActionResponse{
		Object:  "cache.invalidation",
		Status:  "ok",
		Message: "cache cleared",
	})
}

// ResetRateLimit godoc
// @Summary Reset rate limit buckets
// @Description Refills the token bucket for one backend, or for all backends when provider is empty or "all".
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body RateLimitResetRequest true "Backend to reset"
// @Success 200 {object} AdminActionResponse
// @Failure 400 {object} responses.ErrorResponse "Invalid request payload"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Router /v1/admin/ratelimit/reset [post]
func (route *AdminRoute) ResetRateLimit(reqCtx *gin.Context) {
	var request RateLimitResetRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "6f3b9d82-e5a1-4c07-9d28-1e8f4a7c3b95",
			Error: "Invalid request payload",
		})
		return
	}

	message := "rate limits reset for all backends"
	if request.Provider != "" && request.Provider != "all" {
		route.limiter.Reset(request.Provider)
		message = "rate limit reset for " + request.Provider
	} else {
		route.limiter.ResetAll()
	}

	reqCtx.JSON(http.StatusOK, AdminActionResponse{
		Object:  "ratelimit.reset",
		Status:  "ok",
		Message: message,
	})
}

// GetFallbackChain godoc
// @Summary Get the fallback chain
// @Description Returns the configured backend order used for fallback generation.
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} FallbackChainResponse
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Router /v1/admin/fallback-chain [get]
func (route *AdminRoute) GetFallbackChain(reqCtx *gin.Context) {
	reqCtx.JSON(http.StatusOK, FallbackChainResponse{
		Object: "providers.chain",
		Chain:  route.registry.FallbackChainNames(),
	})
}

// SetFallbackChain godoc
// @Summary Replace the fallback chain
// @Description Replaces the backend order used for fallback generation. Names are normalized; unknown backends are skipped at call time.
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body FallbackChainRequest true "New backend order"
// @Success 200 {object} FallbackChainResponse
// @Failure 400 {object} responses.ErrorResponse "Invalid request payload"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Router /v1/admin/fallback-chain [put]
func (route *AdminRoute) SetFallbackChain(reqCtx *gin.Context) {
	var request FallbackChainRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "2d8f6a41-9c3e-4b75-a0c6-e7d2f5819a34",
			Error: "Invalid request payload",
		})
		return
	}

	route.registry.SetFallbackChain(request.Chain)

	reqCtx.JSON(http.StatusOK, FallbackChainResponse{
		Object: "providers.chain",
		Chain:  route.registry.FallbackChainNames(),
	})
}

// ListGenerations godoc
// @Summary List recent generations
// @Description Returns the most recent generation history records, newest first. Requires a configured database.
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Maximum records to return" default(50)
// @Success 200 {object} responses.ListResponse[GenerationResponse]
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Failure 503 {object} responses.ErrorResponse "Generation history is disabled"
// @Router /v1/admin/generations [get]
func (route *AdminRoute) ListGenerations(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	if !route.history.Enabled() {
		reqCtx.AbortWithStatusJSON(http.StatusServiceUnavailable, responses.ErrorResponse{
			Code:  "8e1d4b97-3f62-4a08-b5d9-7c4e2f8a1063",
			Error: "generation history is disabled",
		})
		return
	}

	limit, err := strconv.Atoi(reqCtx.DefaultQuery("limit", "50"))
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "90a7c3e5-1b8f-4d26-8a73-f5e9d4c2b817",
			Error: "limit must be an integer",
		})
		return
	}

	records, err := route.history.Recent(ctx, limit)
	if err != nil {
		logger.GetLogger().Errorf("admin: failed to list generations: %v", err)
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "de52f8a9-6c41-4e37-9b08-2a7f3c5d9e16",
			Error: "failed to list generations",
		})
		return
	}

	results := make([]GenerationResponse, 0, len(records))
	for _, record := range records {
		results = append(results, GenerationResponse{
			ID:        record.ID,
			Operation: record.Operation,
			Engine:    record.Engine,
			URL:       record.URL,
			Output:    record.Output,
			CreatedAt: record.CreatedAt.Unix(),
		})
	}

	reqCtx.JSON(http.StatusOK, responses.ListResponse[GenerationResponse]{
		Status:  responses.ResponseCodeOk,
		Total:   int64(len(results)),
		Results: results,
	})
}
