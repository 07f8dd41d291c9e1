package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RumenDamyanov/go-seo/app/domain/ai"
	"github.com/RumenDamyanov/go-seo/app/domain/analysis"
	"github.com/RumenDamyanov/go-seo/app/domain/seo"
	"github.com/RumenDamyanov/go-seo/app/interfaces/http/responses"
	"github.com/RumenDamyanov/go-seo/app/utils/logger"
)

type SeoAPI struct {
	generator *seo.Generator
}

func NewSeoAPI(generator *seo.Generator) *SeoAPI {
	return &SeoAPI{
		generator: generator,
	}
}

func (seoAPI *SeoAPI) RegisterRouter(router *gin.RouterGroup) {
	seoRouter := router.Group("seo")
	seoRouter.POST("analyze", seoAPI.Analyze)
	seoRouter.POST("title", seoAPI.GenerateTitle)
	seoRouter.POST("description", seoAPI.GenerateDescription)
	seoRouter.POST("keywords", seoAPI.GenerateKeywords)
	seoRouter.POST("metatags", seoAPI.GenerateMetaTags)
	seoRouter.POST("imagealt", seoAPI.GenerateImageAlt)
}

type GenerateRequest struct {
	Content  string            `json:"content" binding:"required"`
	Metadata map[string]string `json:"metadata"`
	Options  map[string]any    `json:"options"`
}

type ImageAltRequest struct {
	ImageURL string         `json:"image_url" binding:"required"`
	Context  string         `json:"context"`
	Options  map[string]any `json:"options"`
}

type AnalysisResponse struct {
	Object   string                    `json:"object"`
	Analysis *analysis.ContentAnalysis `json:"analysis"`
}

type TitleResponse struct {
	Object string `json:"object"`
	Title  string `json:"title"`
}

type DescriptionResponse struct {
	Object      string `json:"object"`
	Description string `json:"description"`
}

type KeywordsResponse struct {
	Object   string   `json:"object"`
	Keywords []string `json:"keywords"`
}

type MetaTagsResponse struct {
	Object string        `json:"object"`
	Tags   *seo.MetaTags `json:"tags"`
}

type ImageAltResponse struct {
	Object string `json:"object"`
	Alt    string `json:"alt"`
}

// Analyze godoc
// @Summary Analyze content
// @Description Extracts title, headings, keywords and a summary from submitted HTML or plain text.
// @Tags seo
// @Accept json
// @Produce json
// @Param request body GenerateRequest true "Content to analyze"
// @Success 200 {object} AnalysisResponse
// @Failure 400 {object} responses.ErrorResponse "Invalid request payload"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/seo/analyze [post]
func (seoAPI *SeoAPI) Analyze(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	var request GenerateRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "20e20587-557e-4d7d-87c5-ea392ea66a88",
			Error: "Invalid request payload",
		})
		return
	}

	result, err := seoAPI.generator.Analyze(ctx, request.Content, request.Metadata)
	if err != nil {
		logger.GetLogger().Errorf("failed to analyze content: %v", err)
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "1973f4e5-f34c-4d36-a506-3df4b92513a4",
			Error: "failed to analyze content",
		})
		return
	}

	reqCtx.JSON(http.StatusOK, AnalysisResponse{
		Object:   "seo.analysis",
		Analysis: result,
	})
}

// GenerateTitle godoc
// @Summary Generate a page title
// @Description Produces an SEO title for the submitted content, using the configured AI backend with template fallback.
// @Tags seo
// @Accept json
// @Produce json
// @Param request body GenerateRequest true "Content to analyze"
// @Success 200 {object} TitleResponse
// @Failure 400 {object} responses.ErrorResponse "Invalid request payload"
// @Failure 429 {object} responses.ErrorResponse "Rate limit exceeded"
// @Failure 502 {object} responses.ErrorResponse "All AI backends failed"
// @Failure 503 {object} responses.ErrorResponse "No AI backend available"
// @Router /v1/seo/title [post]
func (seoAPI *SeoAPI) GenerateTitle(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	var request GenerateRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "12d3fc66-b30f-467b-8717-6f3df4b6ef23",
			Error: "Invalid request payload",
		})
		return
	}

	title, err := seoAPI.generator.GenerateTitle(ctx, request.Content, request.Metadata, request.Options)
	if err != nil {
		abortWithGenerationError(reqCtx, "title", err)
		return
	}

	reqCtx.JSON(http.StatusOK, TitleResponse{
		Object: "seo.title",
		Title:  title,
	})
}

// GenerateDescription godoc
// @Summary Generate a meta description
// @Description Produces an SEO description for the submitted content, using the configured AI backend with template fallback.
// @Tags seo
// @Accept json
// @Produce json
// @Param request body GenerateRequest true "Content to analyze"
// @Success 200 {object} DescriptionResponse
// @Failure 400 {object} responses.ErrorResponse "Invalid request payload"
// @Failure 429 {object} responses.ErrorResponse "Rate limit exceeded"
// @Failure 502 {object} responses.ErrorResponse "All AI backends failed"
// @Failure 503 {object} responses.ErrorResponse "No AI backend available"
// @Router /v1/seo/description [post]
func (seoAPI *SeoAPI) GenerateDescription(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	var request GenerateRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "cd482c13-2492-4213-92fa-5370a5cdea0d",
			Error: "Invalid request payload",
		})
		return
	}

	description, err := seoAPI.generator.GenerateDescription(ctx, request.Content, request.Metadata, request.Options)
	if err != nil {
		abortWithGenerationError(reqCtx, "description", err)
		return
	}

	reqCtx.JSON(http.StatusOK, DescriptionResponse{
		Object:      "seo.description",
		Description: description,
	})
}

// GenerateKeywords godoc
// @Summary Generate keywords
// @Description Produces a keyword list for the submitted content, using the configured AI backend with template fallback.
// @Tags seo
// @Accept json
// @Produce json
// @Param request body GenerateRequest true "Content to analyze"
// @Success 200 {object} KeywordsResponse
// @Failure 400 {object} responses.ErrorResponse "Invalid request payload"
// @Failure 429 {object} responses.ErrorResponse "Rate limit exceeded"
// @Failure 502 {object} responses.ErrorResponse "All AI backends failed"
// @Failure 503 {object} responses.ErrorResponse "No AI backend available"
// @Router /v1/seo/keywords [post]
func (seoAPI *SeoAPI) GenerateKeywords(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	var request GenerateRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "d7a88ff3-b3e5-4201-af64-882240b91232",
			Error: "Invalid request payload",
		})
		return
	}

	keywords, err := seoAPI.generator.GenerateKeywords(ctx, request.Content, request.Metadata, request.Options)
	if err != nil {
		abortWithGenerationError(reqCtx, "keywords", err)
		return
	}

	reqCtx.JSON(http.StatusOK, KeywordsResponse{
		Object:   "seo.keywords",
		Keywords: keywords,
	})
}

// GenerateMetaTags godoc
// @Summary Generate a full meta tag set
// @Description Produces title, description, keywords, Open Graph and Twitter Card tags for the submitted content in one pass.
// @Tags seo
// @Accept json
// @Produce json
// @Param request body GenerateRequest true "Content to analyze"
// @Success 200 {object} MetaTagsResponse
// @Failure 400 {object} responses.ErrorResponse "Invalid request payload"
// @Failure 429 {object} responses.ErrorResponse "Rate limit exceeded"
// @Failure 502 {object} responses.ErrorResponse "All AI backends failed"
// @Failure 503 {object} responses.ErrorResponse "No AI backend available"
// @Router /v1/seo/metatags [post]
func (seoAPI *SeoAPI) GenerateMetaTags(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	var request GenerateRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "5a0dcf5b-72a9-4b64-9e05-6a1c51f83cb2",
			Error: "Invalid request payload",
		})
		return
	}

	tags, err := seoAPI.generator.GenerateMetaTags(ctx, request.Content, request.Metadata, request.Options)
	if err != nil {
		abortWithGenerationError(reqCtx, "metatags", err)
		return
	}

	reqCtx.JSON(http.StatusOK, MetaTagsResponse{
		Object: "seo.metatags",
		Tags:   tags,
	})
}

// GenerateImageAlt godoc
// @Summary Generate image alt text
// @Description Produces alt text for an image URL, using the configured AI backend with a filename-derived fallback.
// @Tags seo
// @Accept json
// @Produce json
// @Param request body ImageAltRequest true "Image URL and optional page context"
// @Success 200 {object} ImageAltResponse
// @Failure 400 {object} responses.ErrorResponse "Invalid request payload"
// @Failure 429 {object} responses.ErrorResponse "Rate limit exceeded"
// @Failure 502 {object} responses.ErrorResponse "All AI backends failed"
// @Failure 503 {object} responses.ErrorResponse "No AI backend available"
// @Router /v1/seo/imagealt [post]
func (seoAPI *SeoAPI) GenerateImageAlt(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	var request ImageAltRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "e7f9c1d4-3b52-4f0e-8a96-2c8d45b7e1a3",
			Error: "Invalid request payload",
		})
		return
	}

	alt, err := seoAPI.generator.GenerateImageAlt(ctx, request.ImageURL, request.Context, request.Options)
	if err != nil {
		abortWithGenerationError(reqCtx, "imagealt", err)
		return
	}

	reqCtx.JSON(http.StatusOK, ImageAltResponse{
		Object: "seo.imagealt",
		Alt:    alt,
	})
}

// abortWithGenerationError maps generation failures to HTTP statuses. A
// FallbackError is checked first because it wraps the per-backend attempt
// errors and would otherwise satisfy the narrower checks through Unwrap.
func abortWithGenerationError(reqCtx *gin.Context, operation string, err error) {
	logger.GetLogger().Errorf("failed to generate %s: %v", operation, err)

	var fallbackErr *ai.FallbackError
	var rateErr *ai.RateLimitError
	var cfgErr *ai.ConfigError
	var apiErr *ai.APIError
	var commErr *ai.CommunicationError
	switch {
	case errors.As(err, &fallbackErr):
		if len(fallbackErr.Attempts) == 0 {
			reqCtx.AbortWithStatusJSON(http.StatusServiceUnavailable, responses.ErrorResponse{
				Code:  "9b824c6e-5d17-4a39-b2c8-7e61f0a9d354",
				Error: "no AI backend is available",
			})
			return
		}
		if allRateLimited(fallbackErr) {
			reqCtx.AbortWithStatusJSON(http.StatusTooManyRequests, responses.ErrorResponse{
				Code:  "3c5d9e21-84f6-4b7a-a1d0-5f2e8c9b6473",
				Error: "rate limit exceeded for all AI backends",
			})
			return
		}
		reqCtx.AbortWithStatusJSON(http.StatusBadGateway, responses.ErrorResponse{
			Code:  "f1a6b8d3-29c7-4e85-9b04-8d3a7c2e5f16",
			Error: "all AI backends failed",
		})
	case errors.As(err, &rateErr):
		reqCtx.AbortWithStatusJSON(http.StatusTooManyRequests, responses.ErrorResponse{
			Code:  "7d2e4f90-6a1b-4c58-8e37-b9f0d1c6a284",
			Error: err.Error(),
		})
	case errors.As(err, &cfgErr):
		reqCtx.AbortWithStatusJSON(http.StatusServiceUnavailable, responses.ErrorResponse{
			Code:  "c8b3a5e7-91d2-4f06-ae49-3b7c8d05e612",
			Error: err.Error(),
		})
	case errors.As(err, &apiErr), errors.As(err, &commErr):
		reqCtx.AbortWithStatusJSON(http.StatusBadGateway, responses.ErrorResponse{
			Code:  "4e6a2c18-d97b-4f35-8b02-a5c3f7d1e869",
			Error: err.Error(),
		})
	default:
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "b5d7e3f1-8c29-4a60-9f14-6e2d8b3a7c50",
			Error: "failed to generate " + operation,
		})
	}
}

func allRateLimited(fallbackErr *ai.FallbackError) bool {
	for _, attempt := range fallbackErr.Attempts {
		var rateErr *ai.RateLimitError
		if !errors.As(attempt.Err, &rateErr) {
			return false
		}
	}
	return true
}
