package common

import (
	"net/http"

	"github.com/SafeMPC/pox-signer/internal/api"
	"github.com/SafeMPC/pox-signer/internal/types"
	"github.com/SafeMPC/pox-signer/internal/util"
	"github.com/labstack/echo/v4"
)

// GetReadyRoute 就绪检查：签名密钥和网络均已配置时返回 200
func GetReadyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/ready", getReadyHandler(s))
}

func getReadyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		configured := s.SignerReady()

		response := &types.ReadinessResponse{
			Ready:            s.Ready() && configured,
			SignerConfigured: configured,
			Network:          s.Network.Name,
			ChainID:          s.Network.ChainID,
			SignerPublicKey:  s.Signing.PublicKeyHex(),
		}

		status := http.StatusOK
		if !response.Ready {
			util.LogFromContext(c.Request().Context()).Debug().Bool("signer_configured", configured).Msg("Readiness probe failed")
			status = http.StatusServiceUnavailable
		}

		return util.ValidateAndReturn(c, status, response)
	}
}
