package signatures

import (
	"net/http"

	"github.com/SafeMPC/pox-signer/internal/api"
	"github.com/SafeMPC/pox-signer/internal/api/httperrors"
	"github.com/SafeMPC/pox-signer/internal/pox"
	"github.com/SafeMPC/pox-signer/internal/types"
	"github.com/SafeMPC/pox-signer/internal/util"
	"github.com/go-openapi/strfmt"
	"github.com/labstack/echo/v4"
)

func PostGetSignatureRoute(s *api.Server) *echo.Route {
	return s.Router.Root.POST("/get-signature", postGetSignatureHandler(s), s.Router.SignatureMiddleware...)
}

// PostSignatureV1Route serves the same handler under the versioned API.
func PostSignatureV1Route(s *api.Server) *echo.Route {
	return s.Router.APIV1.POST("/signatures", postGetSignatureHandler(s), s.Router.SignatureMiddleware...)
}

func postGetSignatureHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.GetSignaturePayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		log.Debug().
			Str("topic", body.Topic).
			Str("pox_address", body.PoxAddress).
			Str("max_amount", string(body.MaxAmount)).
			Msg("Received signature request")

		res, err := s.Signing.Handle(ctx, &pox.SignatureRequest{
			Topic:       body.Topic,
			PoxAddress:  body.PoxAddress,
			RewardCycle: body.RewardCycle,
			Period:      body.Period,
			MaxAmount:   string(body.MaxAmount),
		})
		if err != nil {
			return httperrors.FromSigningError(err)
		}

		response := &types.GetSignatureResponse{
			Signature:       res.Signature,
			SignerPublicKey: res.PublicKey,
			PublicKey:       res.PublicKey,
			MessageHash:     res.MessageHash,
			AuthID:          res.AuthID,
			MaxAmount:       res.MaxAmount,
			Topic:           res.Topic.Name(),
			Period:          res.Period,
			RewardCycle:     res.RewardCycle,
			PoxAddress:      res.PoxAddress,
			SignedAt:        strfmt.DateTime(res.SignedAt),
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
