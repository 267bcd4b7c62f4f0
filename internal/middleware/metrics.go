package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by operation name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yatube_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// FeedCacheHits counts index feed page-cache hits and misses.
	FeedCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yatube_feed_cache_requests_total",
		Help: "Index feed page cache requests by result (hit/miss)",
	}, []string{"result"})

	// FollowMutations counts follow and unfollow actions.
	FollowMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yatube_follow_mutations_total",
		Help: "Follow/unfollow mutations by action",
	}, []string{"action"})
)

// InitMetrics builds the fiberprometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus handler as a Fiber middleware.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
