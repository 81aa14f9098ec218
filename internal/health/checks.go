package health

import (
	"strings"
	"time"

	"github.com/hellofresh/health-go/v5"
	healthHttp "github.com/hellofresh/health-go/v5/checks/http"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"

	"github.com/trendmart/storefront-client/internal/config"
)

// NewHealthHandler wires readiness checks for the two collaborators the
// gateway cannot serve without: the shop backend and Redis.
func NewHealthHandler(cfg *config.Config) (*health.Health, error) {

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "storefront-client",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "shop-backend",
				Timeout:   3 * time.Second,
				SkipOnErr: false,
				Check: healthHttp.New(healthHttp.Config{
					URL: strings.TrimRight(cfg.Backend.BaseURL, "/") + "/health",
				}),
			},
			health.Config{
				Name:      "redis",
				Timeout:   2 * time.Second,
				SkipOnErr: false,
				Check: healthRedis.New(healthRedis.Config{
					DSN: cfg.RedisConnect.GetDSN(),
				}),
			},
		),
	)
	if err != nil {
		return nil, err
	}

	return h, nil
}
