package stacks

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	poxInfoPath           = "/v2/pox"
	defaultRequestTimeout = 10 * time.Second
	maxErrorBodyBytes     = 512
)

// PoxInfo 是 /v2/pox 响应中签名服务关心的字段
type PoxInfo struct {
	ContractID    string        `json:"contract_id"`
	RewardCycleID *uint64       `json:"reward_cycle_id"`
	CurrentCycle  *CurrentCycle `json:"current_cycle"`
}

type CurrentCycle struct {
	ID uint64 `json:"id"`
}

// Client Stacks 节点 HTTP 客户端
type Client struct {
	endpoint string
	client   *http.Client
	timeout  time.Duration
}

// NewClient creates a client for nodeURL. A zero timeout uses the default.
func NewClient(nodeURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		endpoint: strings.TrimRight(nodeURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Endpoint returns the node base URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// GetPoxInfo 查询节点当前的 PoX 信息
func (c *Client) GetPoxInfo(ctx context.Context) (*PoxInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+poxInfoPath, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create HTTP request")
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute HTTP request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, errors.Errorf("stacks node returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var info PoxInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, errors.Wrap(err, "failed to decode pox info")
	}

	return &info, nil
}

// CurrentRewardCycle 返回当前奖励周期，实现 pox.RewardCycleOracle
func (c *Client) CurrentRewardCycle(ctx context.Context) (uint64, error) {
	info, err := c.GetPoxInfo(ctx)
	if err != nil {
		return 0, err
	}

	switch {
	case info.RewardCycleID != nil:
		return *info.RewardCycleID, nil
	case info.CurrentCycle != nil:
		return info.CurrentCycle.ID, nil
	default:
		return 0, errors.New("pox info does not contain a reward cycle")
	}
}
