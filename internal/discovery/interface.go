package discovery

import (
	"context"
	"fmt"
	"time"

	"github.com/SafeMPC/pox-signer/internal/config"
)

// Registrar 服务注册接口
type Registrar interface {
	Register(ctx context.Context, service *ServiceInfo) error
	Deregister(ctx context.Context, serviceID string) error
}

// ServiceInfo 服务信息
type ServiceInfo struct {
	ID      string
	Name    string
	Address string
	Port    int
	Tags    []string
	Meta    map[string]string
	Check   *HealthCheck
}

// HealthCheck HTTP 健康检查配置
type HealthCheck struct {
	Path                           string
	Interval                       time.Duration
	Timeout                        time.Duration
	DeregisterCriticalServiceAfter time.Duration
}

// ServiceInfoFromConfig describes the signer instance for registration.
func ServiceInfoFromConfig(cfg config.Server) *ServiceInfo {
	id := cfg.Discovery.ServiceID
	if id == "" {
		id = fmt.Sprintf("%s-%s-%d", cfg.Discovery.ServiceName, cfg.Discovery.AdvertiseAddress, cfg.Discovery.AdvertisePort)
	}

	tags := []string{"pox-4"}
	if cfg.Signer.Network != "" {
		tags = append(tags, "network:"+cfg.Signer.Network)
	}

	return &ServiceInfo{
		ID:      id,
		Name:    cfg.Discovery.ServiceName,
		Address: cfg.Discovery.AdvertiseAddress,
		Port:    cfg.Discovery.AdvertisePort,
		Tags:    tags,
		Meta: map[string]string{
			"signer_public_key": cfg.Signer.PublicKey,
		},
		Check: &HealthCheck{
			Path:                           "/-/ready",
			Interval:                       15 * time.Second,
			Timeout:                        3 * time.Second,
			DeregisterCriticalServiceAfter: 5 * time.Minute,
		},
	}
}
