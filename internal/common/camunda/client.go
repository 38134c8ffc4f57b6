// internal/common/camunda/client.go
package camunda

import (
	"context"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"studyabroad-workers/internal/common/config"
)

const defaultRequestTimeout = 10 * time.Second

// Client owns the gateway connection all job workers poll through.
type Client struct {
	zbc.Client
	requestTimeout time.Duration
}

// Dial connects to the gateway named in cfg and confirms it answers a
// topology request before returning.
func Dial(ctx context.Context, cfg config.CamundaConfig) (*Client, error) {
	timeout := config.GetDuration(cfg.RequestTimeout)
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	zc, err := zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         cfg.BrokerAddress,
		UsePlaintextConnection: !cfg.TLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Zeebe client: %w", err)
	}

	c := &Client{Client: zc, requestTimeout: timeout}
	if err := c.HealthCheck(ctx); err != nil {
		zc.Close()
		return nil, fmt.Errorf("gateway %s unreachable: %w", cfg.BrokerAddress, err)
	}
	return c, nil
}

// HealthCheck sends a topology request to the gateway.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	if _, err := c.NewTopologyCommand().Send(ctx); err != nil {
		return fmt.Errorf("zeebe health check failed: %w", err)
	}
	return nil
}
