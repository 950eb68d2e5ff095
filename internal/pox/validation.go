package pox

import (
	"context"

	"github.com/pkg/errors"
)

const (
	// MaxLockPeriod is the longest lock, in reward cycles, a lock-family signature may authorize.
	MaxLockPeriod = 12
	// AggregatePeriod is the only period an aggregate-family signature may carry.
	AggregatePeriod = 1
)

// RewardCycleOracle 提供链上当前的奖励周期
type RewardCycleOracle interface {
	CurrentRewardCycle(ctx context.Context) (uint64, error)
}

// Params 待校验的签名参数；MaxAmount 为 STX 显示单位
type Params struct {
	PoxAddress  string
	Topic       string
	RewardCycle *uint64
	Period      *int64
	MaxAmount   string
}

// Checked 校验通过后的规范化参数；MaxAmount 为 micro-STX
type Checked struct {
	PoxAddress  string
	Topic       Topic
	RewardCycle uint64
	Period      uint64
	MaxAmount   uint64
}

// Validator runs the structural checks, reads the current reward cycle once and applies
// the topic rules.
type Validator struct {
	oracle RewardCycleOracle
}

func NewValidator(oracle RewardCycleOracle) *Validator {
	return &Validator{oracle: oracle}
}

// Validate 按顺序校验：地址、topic、金额，然后读取一次当前奖励周期并校验周期与 period
func (v *Validator) Validate(ctx context.Context, p Params) (*Checked, error) {
	topic, maxAmount, err := CheckStructure(p)
	if err != nil {
		return nil, err
	}

	currentRewardCycle, err := v.oracle.CurrentRewardCycle(ctx)
	if err != nil {
		return nil, &UpstreamError{Err: errors.Wrap(err, "failed to get current reward cycle")}
	}

	if err := CheckRules(topic, p.Topic, p.RewardCycle, p.Period, currentRewardCycle); err != nil {
		return nil, err
	}

	return &Checked{
		PoxAddress:  p.PoxAddress,
		Topic:       topic,
		RewardCycle: *p.RewardCycle,
		Period:      uint64(*p.Period),
		MaxAmount:   maxAmount,
	}, nil
}

// Validate is the pure form of Validator.Validate for a known current reward cycle.
func Validate(p Params, currentRewardCycle uint64) (*Checked, error) {
	return NewValidator(FixedRewardCycle(currentRewardCycle)).Validate(context.Background(), p)
}

// CheckStructure validates the chain-independent fields and returns the parsed topic and
// the max amount in micro-STX.
func CheckStructure(p Params) (Topic, uint64, error) {
	if !IsPoxAddress(p.PoxAddress) {
		return "", 0, errInvalidPoxAddress(p.PoxAddress)
	}

	topic, ok := ParseTopic(p.Topic)
	if !ok {
		return "", 0, errInvalidTopic(p.Topic)
	}

	maxAmount, err := ToMicroSTX(p.MaxAmount)
	if err != nil {
		return "", 0, err
	}

	return topic, maxAmount, nil
}

// CheckRules 根据 topic 所属族校验奖励周期和 period；rawTopic 用于错误信息
func CheckRules(topic Topic, rawTopic string, rewardCycle *uint64, period *int64, currentRewardCycle uint64) error {
	switch topic.Family() {
	case FamilyLock:
		if err := checkLockRewardCycle(rewardCycle, currentRewardCycle); err != nil {
			return err
		}
		return checkLockPeriod(period)
	case FamilyAggregate:
		if err := checkAggregateRewardCycle(rewardCycle, currentRewardCycle); err != nil {
			return err
		}
		return checkAggregatePeriod(period, rawTopic)
	default:
		return errInvalidTopic(rawTopic)
	}
}

// lock-family operations must target exactly the current cycle
func checkLockRewardCycle(rewardCycle *uint64, current uint64) error {
	switch {
	case rewardCycle == nil:
		return errEmptyRewardCycle()
	case *rewardCycle < current:
		return errPastRewCycle()
	case *rewardCycle > current:
		return errRewCycleGreaterThanCurrent(current)
	}
	return nil
}

func checkAggregateRewardCycle(rewardCycle *uint64, current uint64) error {
	switch {
	case rewardCycle == nil:
		return errEmptyRewardCycle()
	case *rewardCycle <= current:
		return errAggFutureCycle()
	}
	return nil
}

func checkLockPeriod(period *int64) error {
	switch {
	case period == nil:
		return errEmptyPeriod()
	case *period < 1:
		return errNegativeOrZeroPeriod()
	case *period > MaxLockPeriod:
		return errPeriodExceedsMaximum()
	}
	return nil
}

func checkAggregatePeriod(period *int64, rawTopic string) error {
	switch {
	case period == nil:
		return errEmptyPeriod()
	case *period != AggregatePeriod:
		return errAggCommitWrongPeriod(rawTopic)
	}
	return nil
}

// FixedRewardCycle is an oracle that always reports the same cycle (offline signing, tests).
type FixedRewardCycle uint64

func (s FixedRewardCycle) CurrentRewardCycle(context.Context) (uint64, error) {
	return uint64(s), nil
}
