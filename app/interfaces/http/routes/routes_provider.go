package routes

import (
	"github.com/google/wire"

	v1 "github.com/RumenDamyanov/go-seo/app/interfaces/http/routes/v1"
	"github.com/RumenDamyanov/go-seo/app/interfaces/http/routes/v1/admin"
	"github.com/RumenDamyanov/go-seo/app/interfaces/http/routes/v1/mcp"
	mcp_impl "github.com/RumenDamyanov/go-seo/app/interfaces/http/routes/v1/mcp/mcp_impl"
)

var RouteProvider = wire.NewSet(
	v1.NewSeoAPI,
	v1.NewProviderAPI,
	admin.NewAdminRoute,
	mcp_impl.NewSeoMCP,
	mcp.NewMCPAPI,
	v1.NewV1Route,
)
