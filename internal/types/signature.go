package types

import (
	"bytes"
	"encoding/json"

	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// AmountValue accepts a JSON string or number and keeps its literal text, so that
// "1.5" and 1.5 reach amount validation unchanged.
type AmountValue string

func (a *AmountValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AmountValue(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = AmountValue(n.String())
	return nil
}

// GetSignaturePayload POST /get-signature 请求体
type GetSignaturePayload struct {
	RewardCycle *uint64     `json:"rewardCycle"`
	PoxAddress  string      `json:"poxAddress"`
	MaxAmount   AmountValue `json:"maxAmount"`
	Period      *int64      `json:"period"`
	Topic       string      `json:"topic"`
}

// Validate only bounds the input sizes; the signing rules themselves are applied by the
// signing service so that their order and messages stay in one place.
func (m *GetSignaturePayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.MaxLength("poxAddress", "body", m.PoxAddress, 128); err != nil {
		res = append(res, err)
	}
	if err := validate.MaxLength("topic", "body", m.Topic, 64); err != nil {
		res = append(res, err)
	}
	if err := validate.MaxLength("maxAmount", "body", string(m.MaxAmount), 64); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// GetSignatureResponse POST /get-signature 响应体
type GetSignatureResponse struct {
	Signature       string          `json:"signature"`
	SignerPublicKey string          `json:"signerPublicKey"`
	PublicKey       string          `json:"publicKey"`
	MessageHash     string          `json:"messageHash"`
	AuthID          uint64          `json:"authId"`
	MaxAmount       uint64          `json:"maxAmount"`
	Topic           string          `json:"topic"`
	Period          uint64          `json:"period"`
	RewardCycle     uint64          `json:"rewardCycle"`
	PoxAddress      string          `json:"poxAddress"`
	SignedAt        strfmt.DateTime `json:"signedAt"`
}

func (m *GetSignatureResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Pattern("signature", "body", m.Signature, `^[0-9a-f]{130}$`); err != nil {
		res = append(res, err)
	}
	if err := validate.Pattern("publicKey", "body", m.PublicKey, `^[0-9a-f]{66}([0-9a-f]{64})?$`); err != nil {
		res = append(res, err)
	}
	if err := validate.Pattern("messageHash", "body", m.MessageHash, `^[0-9a-f]{64}$`); err != nil {
		res = append(res, err)
	}
	if err := validate.RequiredString("topic", "body", m.Topic); err != nil {
		res = append(res, err)
	}
	if err := validate.RequiredString("poxAddress", "body", m.PoxAddress); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// ReadinessResponse GET /-/ready
type ReadinessResponse struct {
	Ready            bool   `json:"ready"`
	SignerConfigured bool   `json:"signerConfigured"`
	Network          string `json:"network,omitempty"`
	ChainID          uint32 `json:"chainId,omitempty"`
	SignerPublicKey  string `json:"signerPublicKey,omitempty"`
}

func (m *ReadinessResponse) Validate(formats strfmt.Registry) error {
	return nil
}
