package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RumenDamyanov/go-seo/app/domain/ai"
)

type ProviderAPI struct {
	registry *ai.Registry
}

func NewProviderAPI(registry *ai.Registry) *ProviderAPI {
	return &ProviderAPI{
		registry: registry,
	}
}

func (providerAPI *ProviderAPI) RegisterRouter(router *gin.RouterGroup) {
	router.GET("providers", providerAPI.GetProviders)
}

type ProviderResponse struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	InChain   bool   `json:"in_chain"`
}

type ProvidersResponse struct {
	Object string             `json:"object"`
	Data   []ProviderResponse `json:"data"`
}

// GetProviders godoc
// @Summary List AI backends
// @Description Returns every configured AI backend with its availability and whether it participates in the fallback chain.
// @Tags providers
// @Produce json
// @Success 200 {object} ProvidersResponse
// @Router /v1/providers [get]
func (providerAPI *ProviderAPI) GetProviders(reqCtx *gin.Context) {
	summaries := providerAPI.registry.ProviderSummaries()

	data := make([]ProviderResponse, 0, len(summaries))
	for _, summary := range summaries {
		data = append(data, ProviderResponse{
			Name:      summary.Name,
			Available: summary.Available,
			InChain:   summary.InChain,
		})
	}

	reqCtx.JSON(http.StatusOK, ProvidersResponse{
		Object: "list",
		Data:   data,
	})
}
