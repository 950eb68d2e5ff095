package discovery

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/consul/api"
	"github.com/rs/zerolog/log"
)

// ConsulRegistrar Consul 服务注册
type ConsulRegistrar struct {
	client *api.Client
}

// NewConsulRegistrar 创建 Consul 客户端；address 可带 http:// 或 https:// 前缀
func NewConsulRegistrar(address string) (*ConsulRegistrar, error) {
	cfg := api.DefaultConfig()
	switch {
	case strings.HasPrefix(address, "https://"):
		cfg.Scheme = "https"
		cfg.Address = strings.TrimPrefix(address, "https://")
	case strings.HasPrefix(address, "http://"):
		cfg.Scheme = "http"
		cfg.Address = strings.TrimPrefix(address, "http://")
	default:
		cfg.Address = address
	}

	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create consul client: %w", err)
	}

	return &ConsulRegistrar{client: client}, nil
}

// Register 注册服务到 Consul
func (c *ConsulRegistrar) Register(ctx context.Context, service *ServiceInfo) error {
	if service.ID == "" {
		return fmt.Errorf("service ID cannot be empty")
	}

	registration := &api.AgentServiceRegistration{
		ID:      service.ID,
		Name:    service.Name,
		Address: service.Address,
		Port:    service.Port,
		Tags:    service.Tags,
		Meta:    service.Meta,
	}

	if service.Check != nil {
		registration.Check = &api.AgentServiceCheck{
			HTTP:     fmt.Sprintf("http://%s:%d%s", service.Address, service.Port, service.Check.Path),
			Method:   "GET",
			Interval: service.Check.Interval.String(),
			Timeout:  service.Check.Timeout.String(),
		}
		if service.Check.DeregisterCriticalServiceAfter > 0 {
			registration.Check.DeregisterCriticalServiceAfter = service.Check.DeregisterCriticalServiceAfter.String()
		}
	}

	if err := c.client.Agent().ServiceRegister(registration); err != nil {
		return fmt.Errorf("failed to register service %s: %w", service.ID, err)
	}

	log.Ctx(ctx).Info().
		Str("service_id", service.ID).
		Str("service_name", service.Name).
		Str("address", service.Address).
		Int("port", service.Port).
		Msg("Service registered to Consul")

	return nil
}

// Deregister 从 Consul 注销服务
func (c *ConsulRegistrar) Deregister(ctx context.Context, serviceID string) error {
	if err := c.client.Agent().ServiceDeregister(serviceID); err != nil {
		return fmt.Errorf("failed to deregister service %s: %w", serviceID, err)
	}

	log.Ctx(ctx).Info().Str("service_id", serviceID).Msg("Service deregistered from Consul")
	return nil
}
