// services/rate_limit.go
package services

import (
	"context"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/levelup-labs/levelup_api/shared"
)

// RateLimitConfig represents rate limiting configuration
type RateLimitConfig struct {
	EndpointType string
	MaxRequests  int64
	WindowSize   time.Duration
}

type RateLimitService struct {
	appContext.DefaultService

	redisSvc *RedisService
	configs  map[string]RateLimitConfig
}

const RATE_LIMIT_SVC = "rate_limit_svc"

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *appContext.Context) error {
	svc.configs = map[string]RateLimitConfig{
		"login":      {EndpointType: "login", MaxRequests: 10, WindowSize: 15 * time.Minute},
		"register":   {EndpointType: "register", MaxRequests: 5, WindowSize: 15 * time.Minute},
		"completion": {EndpointType: "completion", MaxRequests: 120, WindowSize: time.Minute},
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

// Limit returns a fiber middleware enforcing the named endpoint budget per
// client IP. Redis failures fail open: limiting is protection, not a
// correctness dependency.
func (svc *RateLimitService) Limit(endpointType string) fiber.Handler {
	cfg, ok := svc.configs[endpointType]
	if !ok {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	return func(c *fiber.Ctx) error {
		key := "ratelimit:" + cfg.EndpointType + ":" + c.IP()
		count, err := svc.redisSvc.IncrWindow(context.Background(), key, cfg.WindowSize)
		if err != nil {
			log.WithError(err).Warn("Rate limit check failed, allowing request")
			return c.Next()
		}
		if count > cfg.MaxRequests {
			return shared.ResponseJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", nil)
		}
		return c.Next()
	}
}
