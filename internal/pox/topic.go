package pox

import "strings"

// Topic 签名授权的操作类型
type Topic string

const (
	TopicStackStx          Topic = "stack-stx"
	TopicStackExtend       Topic = "stack-extend"
	TopicStackIncrease     Topic = "stack-increase"
	TopicAggregateCommit   Topic = "agg-commit"
	TopicAggregateIncrease Topic = "agg-increase"
)

// Family groups topics that share reward-cycle and period policy.
type Family int

const (
	FamilyUnknown Family = iota
	// FamilyLock: stack-stx, stack-extend, stack-increase
	FamilyLock
	// FamilyAggregate: agg-commit, agg-increase
	FamilyAggregate
)

// Topics lists every supported topic.
var Topics = []Topic{
	TopicStackStx,
	TopicStackExtend,
	TopicStackIncrease,
	TopicAggregateCommit,
	TopicAggregateIncrease,
}

// ParseTopic 解析客户端传入的 topic，同时接受 stack-aggregation-* 的长名称
func ParseTopic(s string) (Topic, bool) {
	switch strings.TrimSpace(s) {
	case "stack-stx":
		return TopicStackStx, true
	case "stack-extend":
		return TopicStackExtend, true
	case "stack-increase":
		return TopicStackIncrease, true
	case "agg-commit", "stack-aggregation-commit":
		return TopicAggregateCommit, true
	case "agg-increase", "stack-aggregation-increase":
		return TopicAggregateIncrease, true
	default:
		return "", false
	}
}

// Name returns the topic name the pox-4 contract expects inside the signed message.
func (t Topic) Name() string {
	return string(t)
}

func (t Topic) String() string {
	return string(t)
}

// Family 返回 topic 所属的校验族
func (t Topic) Family() Family {
	switch t {
	case TopicStackStx, TopicStackExtend, TopicStackIncrease:
		return FamilyLock
	case TopicAggregateCommit, TopicAggregateIncrease:
		return FamilyAggregate
	default:
		return FamilyUnknown
	}
}

func (f Family) String() string {
	switch f {
	case FamilyLock:
		return "lock"
	case FamilyAggregate:
		return "aggregate"
	default:
		return "unknown"
	}
}
