package pox_test

import (
	"context"
	"testing"

	"github.com/SafeMPC/pox-signer/internal/pox"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	mainnetP2PKH   = "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"
	testnetP2PKH   = "mqVnk6NPRdhntvfm4hh9vvjiRkFDUuSYsH"
	malformedP2PKH = "mqVnk6NPRdhntvfm4hh9vvjiRkFDUuSYsHf"

	currentCycle uint64 = 90
)

type countingOracle struct {
	cycle uint64
	err   error
	calls int
}

func (o *countingOracle) CurrentRewardCycle(context.Context) (uint64, error) {
	o.calls++
	return o.cycle, o.err
}

func u64(v uint64) *uint64 { return &v }
func i64(v int64) *int64    { return &v }

func params(topic string, rewardCycle *uint64, period *int64) pox.Params {
	return pox.Params{
		PoxAddress:  mainnetP2PKH,
		Topic:       topic,
		RewardCycle: rewardCycle,
		Period:      period,
		MaxAmount:   "1000",
	}
}

func requireReason(t *testing.T, err error, reason pox.Reason) *pox.RuleError {
	t.Helper()
	ruleErr, ok := pox.IsRuleError(err)
	require.True(t, ok, "expected rule error %s, got %v", reason, err)
	assert.Equal(t, reason, ruleErr.Reason)
	return ruleErr
}

func TestValidateLockFamily(t *testing.T) {
	for _, topic := range []string{"stack-stx", "stack-extend", "stack-increase"} {
		t.Run(topic, func(t *testing.T) {
			checked, err := pox.Validate(params(topic, u64(currentCycle), i64(6)), currentCycle)
			require.NoError(t, err)
			assert.Equal(t, uint64(1_000_000_000), checked.MaxAmount)
			assert.Equal(t, currentCycle, checked.RewardCycle)
			assert.Equal(t, uint64(6), checked.Period)

			_, err = pox.Validate(params(topic, nil, i64(6)), currentCycle)
			requireReason(t, err, pox.ReasonEmptyRewardCycle)

			_, err = pox.Validate(params(topic, u64(currentCycle-1), i64(6)), currentCycle)
			requireReason(t, err, pox.ReasonPastRewCycle)

			_, err = pox.Validate(params(topic, u64(currentCycle+1), i64(6)), currentCycle)
			ruleErr := requireReason(t, err, pox.ReasonRewCycleGreaterThanCurrent)
			assert.Equal(t, "The reward cycle is greater than the current one (90).", ruleErr.Message)

			_, err = pox.Validate(params(topic, u64(currentCycle), nil), currentCycle)
			requireReason(t, err, pox.ReasonEmptyPeriod)

			_, err = pox.Validate(params(topic, u64(currentCycle), i64(0)), currentCycle)
			requireReason(t, err, pox.ReasonNegativeOrZeroPeriod)

			_, err = pox.Validate(params(topic, u64(currentCycle), i64(-3)), currentCycle)
			requireReason(t, err, pox.ReasonNegativeOrZeroPeriod)

			_, err = pox.Validate(params(topic, u64(currentCycle), i64(1)), currentCycle)
			require.NoError(t, err)

			_, err = pox.Validate(params(topic, u64(currentCycle), i64(12)), currentCycle)
			require.NoError(t, err)

			_, err = pox.Validate(params(topic, u64(currentCycle), i64(13)), currentCycle)
			requireReason(t, err, pox.ReasonPeriodExceedsMaximum)
		})
	}
}

func TestValidateAggregateFamily(t *testing.T) {
	for _, topic := range []string{"agg-commit", "agg-increase", "stack-aggregation-commit", "stack-aggregation-increase"} {
		t.Run(topic, func(t *testing.T) {
			_, err := pox.Validate(params(topic, u64(currentCycle+1), i64(1)), currentCycle)
			require.NoError(t, err)

			_, err = pox.Validate(params(topic, u64(currentCycle+5), i64(1)), currentCycle)
			require.NoError(t, err)

			_, err = pox.Validate(params(topic, nil, i64(1)), currentCycle)
			requireReason(t, err, pox.ReasonEmptyRewardCycle)

			_, err = pox.Validate(params(topic, u64(currentCycle), i64(1)), currentCycle)
			requireReason(t, err, pox.ReasonAggFutureCycle)

			_, err = pox.Validate(params(topic, u64(currentCycle-1), i64(1)), currentCycle)
			requireReason(t, err, pox.ReasonAggFutureCycle)

			_, err = pox.Validate(params(topic, u64(currentCycle+1), nil), currentCycle)
			requireReason(t, err, pox.ReasonEmptyPeriod)

			for _, period := range []int64{-1, 0, 2, 12} {
				_, err = pox.Validate(params(topic, u64(currentCycle+1), i64(period)), currentCycle)
				ruleErr := requireReason(t, err, pox.ReasonAggCommitWrongPeriod)
				assert.Equal(t, "The period for "+topic+" signature should be 1.", ruleErr.Message)
			}
		})
	}
}

func TestEveryTopicHasAFamily(t *testing.T) {
	for _, topic := range pox.Topics {
		assert.NotEqual(t, pox.FamilyUnknown, topic.Family(), topic)

		parsed, ok := pox.ParseTopic(topic.Name())
		require.True(t, ok)
		assert.Equal(t, topic, parsed)
	}
	assert.Equal(t, pox.FamilyUnknown, pox.Topic("unknown-topic").Family())
}

func TestValidateScenarios(t *testing.T) {
	// lock family accepts only the current cycle
	_, err := pox.Validate(params("stack-stx", u64(currentCycle), i64(6)), currentCycle)
	require.NoError(t, err)

	// aggregate commit needs a future cycle
	_, err = pox.Validate(params("stack-aggregation-commit", u64(currentCycle), i64(1)), currentCycle)
	requireReason(t, err, pox.ReasonAggFutureCycle)

	_, err = pox.Validate(params("stack-aggregation-commit", u64(currentCycle+1), i64(2)), currentCycle)
	ruleErr := requireReason(t, err, pox.ReasonAggCommitWrongPeriod)
	assert.Equal(t, "The period for stack-aggregation-commit signature should be 1.", ruleErr.Message)

	// unknown topic is reported before reward cycle and period problems
	_, err = pox.Validate(params("unknown-topic", nil, i64(0)), currentCycle)
	ruleErr = requireReason(t, err, pox.ReasonInvalidTopic)
	assert.Equal(t, "Invalid Topic: unknown-topic.", ruleErr.Message)

	// a malformed address wins over everything else
	p := params("unknown-topic", nil, nil)
	p.PoxAddress = malformedP2PKH
	p.MaxAmount = "not-a-number"
	_, err = pox.Validate(p, currentCycle)
	ruleErr = requireReason(t, err, pox.ReasonInvalidPoxAddress)
	assert.Equal(t, "Invalid PoX Address: "+malformedP2PKH+".", ruleErr.Message)
}

func TestValidateStructuralErrorsComeFirst(t *testing.T) {
	p := params("stack-stx", u64(currentCycle+10), i64(99))
	p.MaxAmount = "9007199255"
	_, err := pox.Validate(p, currentCycle)
	requireReason(t, err, pox.ReasonMaxAmountTooBig)

	p.MaxAmount = "-5"
	_, err = pox.Validate(p, currentCycle)
	requireReason(t, err, pox.ReasonInvalidMaxAmount)
}

func TestValidatorReadsOracleOnce(t *testing.T) {
	oracle := &countingOracle{cycle: currentCycle}
	v := pox.NewValidator(oracle)

	_, err := v.Validate(context.Background(), params("stack-stx", u64(currentCycle), i64(1)))
	require.NoError(t, err)
	assert.Equal(t, 1, oracle.calls)

	// structural failures never reach the oracle
	p := params("stack-stx", u64(currentCycle), i64(1))
	p.PoxAddress = malformedP2PKH
	_, err = v.Validate(context.Background(), p)
	requireReason(t, err, pox.ReasonInvalidPoxAddress)
	assert.Equal(t, 1, oracle.calls)
}

func TestValidatorUpstreamFailure(t *testing.T) {
	oracle := &countingOracle{err: errors.New("connection refused")}
	v := pox.NewValidator(oracle)

	_, err := v.Validate(context.Background(), params("stack-stx", u64(currentCycle), i64(1)))
	require.Error(t, err)
	assert.True(t, pox.IsUpstreamError(err))

	_, isRule := pox.IsRuleError(err)
	assert.False(t, isRule)
}

func TestCheckRulesUnknownTopic(t *testing.T) {
	err := pox.CheckRules(pox.Topic("nope"), "nope", u64(1), i64(1), 1)
	requireReason(t, err, pox.ReasonInvalidTopic)
}
