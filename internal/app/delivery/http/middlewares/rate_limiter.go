package middlewares

import (
	"net"
	"net/http"
	"sync"
	"time"

	"nhscribe-service/internal/pkg/constvars"
	"nhscribe-service/internal/pkg/exceptions"
	"nhscribe-service/internal/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter is a per client token bucket. A client that exhausts its bucket
// is blocked for blockTime. It guards letter generation, which is the one
// expensive backend call.
type RateLimiter struct {
	limiters  map[string]*rate.Limiter
	blocked   map[string]time.Time
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	blockTime time.Duration
	log       *zap.Logger
}

func NewRateLimiter(requestsPerMinute, burst int, blockTime time.Duration, logger *zap.Logger) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiters:  make(map[string]*rate.Limiter),
		blocked:   make(map[string]time.Time),
		limit:     rate.Every(time.Minute / time.Duration(max(requestsPerMinute, 1))),
		burst:     burst,
		blockTime: blockTime,
		log:       logger,
	}
}

func (r *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ip, _, err := net.SplitHostPort(req.RemoteAddr)
		if err != nil {
			ip = req.RemoteAddr
		}

		if !r.allow(ip, time.Now()) {
			r.log.Warn("RateLimiter.Limit rejected request",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(req.Context())),
				zap.String(constvars.LoggingRemoteAddrKey, ip),
			)
			utils.BuildErrorResponse(r.log, w, exceptions.ErrTooManyRequests())
			return
		}

		next.ServeHTTP(w, req)
	})
}

func (r *RateLimiter) allow(ip string, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if blockedUntil, found := r.blocked[ip]; found {
		if now.Before(blockedUntil) {
			return false
		}
		delete(r.blocked, ip)
	}

	limiter, exists := r.limiters[ip]
	if !exists {
		limiter = rate.NewLimiter(r.limit, r.burst)
		r.limiters[ip] = limiter
	}

	if !limiter.AllowN(now, 1) {
		if r.blockTime > 0 {
			r.blocked[ip] = now.Add(r.blockTime)
		}
		return false
	}
	return true
}
