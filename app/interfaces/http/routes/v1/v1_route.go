package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RumenDamyanov/go-seo/app/interfaces/http/routes/v1/admin"
	"github.com/RumenDamyanov/go-seo/app/interfaces/http/routes/v1/mcp"
	"github.com/RumenDamyanov/go-seo/config"
)

type V1Route struct {
	seoAPI      *SeoAPI
	providerAPI *ProviderAPI
	adminRoute  *admin.AdminRoute
	mcpAPI      *mcp.MCPAPI
}

func NewV1Route(
	seoAPI *SeoAPI,
	providerAPI *ProviderAPI,
	adminRoute *admin.AdminRoute,
	mcpAPI *mcp.MCPAPI,
) *V1Route {
	return &V1Route{
		seoAPI,
		providerAPI,
		adminRoute,
		mcpAPI,
	}
}

func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")
	v1Router.GET("/version", GetVersion)
	v1Route.seoAPI.RegisterRouter(v1Router)
	v1Route.providerAPI.RegisterRouter(v1Router)
	v1Route.adminRoute.RegisterRouter(v1Router)
	v1Route.mcpAPI.RegisterRouter(v1Router)
}

// GetVersion godoc
// @Summary     Get API build version
// @Description Returns the current build version of the API server.
// @Tags        system
// @Produce     json
// @Success     200 {object} map[string]string "version info"
// @Router      /v1/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": config.Version,
	})
}
