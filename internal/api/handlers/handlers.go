package handlers

import (
	"github.com/SafeMPC/pox-signer/internal/api"
	"github.com/SafeMPC/pox-signer/internal/api/handlers/common"
	"github.com/SafeMPC/pox-signer/internal/api/handlers/signatures"
	"github.com/labstack/echo/v4"
)

func AttachAllRoutes(s *api.Server) {
	// attach our routes
	s.Router.Routes = []*echo.Route{
		common.GetRootRoute(s),
		common.GetHealthyRoute(s),
		common.GetReadyRoute(s),
		common.GetMetricsRoute(s),
		signatures.PostGetSignatureRoute(s),
		signatures.PostSignatureV1Route(s),
	}
}
