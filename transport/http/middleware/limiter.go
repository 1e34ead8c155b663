package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"studio/shared/cache"
	"studio/shared/constant"
	"studio/transport/http/response"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit = "limiter"
)

// RateLimit is a fixed window counter per client IP kept in Redis.
// When Redis is unavailable requests pass through.
func (a *appMiddleware) RateLimit(next http.Handler) http.Handler {
	if !a.config.App.RateLimiter.Enable {
		return next
	}

	maxReqs := a.config.App.RateLimiter.MaxRequests
	window := time.Duration(a.config.App.RateLimiter.WindowSeconds) * time.Second

	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		key := cache.BuildKey(a.config.App.Name, cacheKeyRateLimit, clientIP(request))

		count, ttl, err := a.cache.Increment(request.Context(), key, window)
		if err != nil {
			log.Warn().Err(err).Msg("rate limiter unavailable, letting request through")
			next.ServeHTTP(writer, request)

			return
		}

		writer.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(maxReqs))
		writer.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.FormatInt(max(0, int64(maxReqs)-count), 10))
		writer.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(int(ttl.Seconds())))

		if count > int64(maxReqs) {
			response.WithRequestLimitExceeded(writer)

			return
		}

		next.ServeHTTP(writer, request)
	})
}

func clientIP(request *http.Request) string {
	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}

	return host
}
