package pox

import (
	"fmt"

	"github.com/pkg/errors"
)

// Reason 校验失败原因（封闭集合）
type Reason string

const (
	ReasonInvalidPoxAddress          Reason = "InvalidPoxAddress"
	ReasonInvalidTopic               Reason = "InvalidTopic"
	ReasonInvalidMaxAmount           Reason = "InvalidMaxAmount"
	ReasonMaxAmountTooBig            Reason = "MaxAmountTooBig"
	ReasonEmptyRewardCycle           Reason = "EmptyRewardCycle"
	ReasonPastRewCycle               Reason = "PastRewCycle"
	ReasonRewCycleGreaterThanCurrent Reason = "RewCycleGreaterThanCurrent"
	ReasonAggFutureCycle             Reason = "AggFutureCycle"
	ReasonEmptyPeriod                Reason = "EmptyPeriod"
	ReasonNegativeOrZeroPeriod       Reason = "NegativeOrZeroPeriod"
	ReasonPeriodExceedsMaximum       Reason = "PeriodExceedsMaximum"
	ReasonAggCommitWrongPeriod       Reason = "AggCommitWrongPeriod"
)

var (
	// ErrConfiguration is returned for every request while the signer key or network is missing.
	ErrConfiguration = errors.New("invalid signer data")
	// ErrInternal marks invariant violations, e.g. a pox address that passed validation but cannot be decoded.
	ErrInternal = errors.New("internal error")
)

// RuleError 请求参数违反校验规则
type RuleError struct {
	Reason  Reason
	Message string
}

func (e *RuleError) Error() string {
	return e.Message
}

// UpstreamError wraps failures of the reward-cycle oracle; callers may retry these.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("reward cycle unavailable: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func ruleError(reason Reason, format string, args ...interface{}) *RuleError {
	return &RuleError{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

func errInvalidPoxAddress(address string) *RuleError {
	return ruleError(ReasonInvalidPoxAddress, "Invalid PoX Address: %s.", address)
}

func errInvalidTopic(topic string) *RuleError {
	return ruleError(ReasonInvalidTopic, "Invalid Topic: %s.", topic)
}

func errInvalidMaxAmount(amount string) *RuleError {
	return ruleError(ReasonInvalidMaxAmount, "Invalid max amount: %s.", amount)
}

func errMaxAmountTooBig(amount string) *RuleError {
	return ruleError(ReasonMaxAmountTooBig, "Max amount too big (%s > %d).", amount, MaxSafeInteger)
}

func errEmptyRewardCycle() *RuleError {
	return ruleError(ReasonEmptyRewardCycle, "Please add the reward cycle.")
}

func errPastRewCycle() *RuleError {
	return ruleError(ReasonPastRewCycle, "Past reward cycles are not permitted.")
}

func errRewCycleGreaterThanCurrent(current uint64) *RuleError {
	return ruleError(ReasonRewCycleGreaterThanCurrent, "The reward cycle is greater than the current one (%d).", current)
}

func errAggFutureCycle() *RuleError {
	return ruleError(ReasonAggFutureCycle, "For the selected topic you must insert a future cycle.")
}

func errEmptyPeriod() *RuleError {
	return ruleError(ReasonEmptyPeriod, "Please add the period.")
}

func errNegativeOrZeroPeriod() *RuleError {
	return ruleError(ReasonNegativeOrZeroPeriod, "Period should be greater than 0 for the selected topic.")
}

func errPeriodExceedsMaximum() *RuleError {
	return ruleError(ReasonPeriodExceedsMaximum, "The maximum period for stacking operations is %d.", MaxLockPeriod)
}

func errAggCommitWrongPeriod(topic string) *RuleError {
	return ruleError(ReasonAggCommitWrongPeriod, "The period for %s signature should be 1.", topic)
}

// IsRuleError reports whether err is (or wraps) a validation rule violation and returns it.
func IsRuleError(err error) (*RuleError, bool) {
	var ruleErr *RuleError
	if errors.As(err, &ruleErr) {
		return ruleErr, true
	}
	return nil, false
}

// IsUpstreamError reports whether err is (or wraps) an oracle failure.
func IsUpstreamError(err error) bool {
	var upstreamErr *UpstreamError
	return errors.As(err, &upstreamErr)
}
