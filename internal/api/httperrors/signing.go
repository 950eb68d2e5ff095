package httperrors

import (
	"net/http"

	"github.com/SafeMPC/pox-signer/internal/pox"
	"github.com/pkg/errors"
)

// FromSigningError 将签名流水线的错误映射为 HTTP 错误
func FromSigningError(err error) *HTTPError {
	if ruleErr, ok := pox.IsRuleError(err); ok {
		e := NewHTTPErrorWithInternal(http.StatusBadRequest, TypeSignatureRule, ruleErr.Message, err)
		e.Reason = string(ruleErr.Reason)
		return e
	}

	switch {
	case pox.IsUpstreamError(err):
		return withInternal(ErrRewardCycleUnavailable, err)
	case errors.Is(err, pox.ErrConfiguration):
		return withInternal(ErrInvalidSignerData, err)
	default:
		return withInternal(ErrInternalServer, err)
	}
}

func withInternal(tmpl *HTTPError, err error) *HTTPError {
	e := *tmpl
	e.Internal = err
	return &e
}
