package pox

import (
	"context"
	"encoding/hex"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Service 校验 -> 构建消息 -> 签名，签名请求的唯一入口
type Service struct {
	validator *Validator
	signer    Signer
	chainID   uint32
	authIDs   *AuthIDGenerator
	recorder  Recorder
}

// NewService creates the signing pipeline. A nil signer is allowed: the service then answers
// every request with ErrConfiguration instead of failing at startup.
func NewService(oracle RewardCycleOracle, signer Signer, chainID uint32, authIDs *AuthIDGenerator, recorder Recorder) (*Service, error) {
	if err := vala.BeginValidation().Validate(
		vala.IsNotNil(oracle, "oracle"),
		vala.IsNotNil(authIDs, "authIDs"),
	).Check(); err != nil {
		return nil, errors.Wrap(err, "invalid signing service arguments")
	}

	if recorder == nil {
		recorder = noopRecorder{}
	}

	return &Service{
		validator: NewValidator(oracle),
		signer:    signer,
		chainID:   chainID,
		authIDs:   authIDs,
		recorder:  recorder,
	}, nil
}

// Configured reports whether a signer key is loaded.
func (s *Service) Configured() bool {
	return s.signer != nil
}

// ChainID returns the chain id embedded in the domain separator.
func (s *Service) ChainID() uint32 {
	return s.chainID
}

// PublicKeyHex returns the signer public key or an empty string when unconfigured.
func (s *Service) PublicKeyHex() string {
	if s.signer == nil {
		return ""
	}
	return hex.EncodeToString(s.signer.PublicKey())
}

// Handle 处理一次签名请求。校验失败返回 *RuleError，奖励周期查询失败返回 *UpstreamError
func (s *Service) Handle(ctx context.Context, req *SignatureRequest) (*SignatureResult, error) {
	if s.signer == nil {
		return nil, ErrConfiguration
	}
	if req == nil {
		return nil, errors.New("signature request is nil")
	}

	authID := s.authIDs.Next()
	logger := log.With().
		Str("topic", req.Topic).
		Uint64("auth_id", authID).
		Logger()

	logger.Debug().Str("state", "validating").Msg("Validating signature request")

	checked, err := s.validator.Validate(ctx, Params{
		PoxAddress:  req.PoxAddress,
		Topic:       req.Topic,
		RewardCycle: req.RewardCycle,
		Period:      req.Period,
		MaxAmount:   req.MaxAmount,
	})
	if err != nil {
		if ruleErr, ok := IsRuleError(err); ok {
			s.recorder.RequestRejected(ruleErr.Reason)
			logger.Debug().Str("state", "rejected").Str("reason", string(ruleErr.Reason)).Msg("Signature request rejected")
		} else if IsUpstreamError(err) {
			s.recorder.UpstreamFailed()
			logger.Warn().Err(err).Msg("Reward cycle oracle failed")
		}
		return nil, err
	}

	logger.Debug().Str("state", "building").Uint64("reward_cycle", checked.RewardCycle).Msg("Building signer key message")

	poxAddress, err := DecodeAddress(checked.PoxAddress)
	if err != nil {
		// the address passed validation, so this is not a client error
		return nil, errors.Wrapf(ErrInternal, "cannot encode pox address %s: %v", checked.PoxAddress, err)
	}

	digest, err := BuildMessageHash(Message{
		PoxAddress:  poxAddress,
		RewardCycle: checked.RewardCycle,
		Topic:       checked.Topic,
		Period:      checked.Period,
		AuthID:      authID,
		MaxAmount:   checked.MaxAmount,
	}, s.chainID)
	if err != nil {
		return nil, errors.Wrapf(ErrInternal, "failed to build message hash: %v", err)
	}

	logger.Debug().Str("state", "signing").Msg("Signing message hash")

	sig, err := s.signer.Sign(digest)
	if err != nil {
		return nil, errors.Wrapf(ErrInternal, "failed to sign message hash: %v", err)
	}

	s.recorder.SignatureIssued(checked.Topic)
	logger.Info().
		Uint64("reward_cycle", checked.RewardCycle).
		Uint64("period", checked.Period).
		Uint64("max_amount", checked.MaxAmount).
		Msg("Signature issued")

	return &SignatureResult{
		Signature:   hex.EncodeToString(sig),
		PublicKey:   hex.EncodeToString(s.signer.PublicKey()),
		MessageHash: hex.EncodeToString(digest[:]),
		AuthID:      authID,
		MaxAmount:   checked.MaxAmount,
		Topic:       checked.Topic,
		Period:      checked.Period,
		RewardCycle: checked.RewardCycle,
		PoxAddress:  checked.PoxAddress,
		SignedAt:    s.authIDs.Clock().Now().UTC(),
	}, nil
}
