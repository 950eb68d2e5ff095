package pox

import "time"

// SignatureRequest 签名请求；MaxAmount 为 STX 显示单位的十进制字符串
type SignatureRequest struct {
	Topic       string
	PoxAddress  string
	RewardCycle *uint64
	Period      *int64
	MaxAmount   string
}

// SignatureResult 签名结果；MaxAmount 为 micro-STX
type SignatureResult struct {
	Signature   string
	PublicKey   string
	MessageHash string
	AuthID      uint64
	MaxAmount   uint64
	Topic       Topic
	Period      uint64
	RewardCycle uint64
	PoxAddress  string
	SignedAt    time.Time
}

// Recorder receives pipeline outcomes; implemented by the metrics service.
type Recorder interface {
	SignatureIssued(topic Topic)
	RequestRejected(reason Reason)
	UpstreamFailed()
}

type noopRecorder struct{}

func (noopRecorder) SignatureIssued(Topic)  {}
func (noopRecorder) RequestRejected(Reason) {}
func (noopRecorder) UpstreamFailed()        {}
