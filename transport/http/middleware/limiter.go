package middleware

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"

	"coating/shared"
	"coating/shared/cache"
	"coating/shared/constant"
	"coating/transport/http/response"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit = "limiter"
	unknownUserAgent  = "unknown"
)

// RateLimit counts requests per client and route in Redis.
// The request is let through when Redis is unavailable.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !a.config.App.RateLimiter.Enable {
				next.ServeHTTP(writer, request)

				return
			}

			maxReqs := a.config.App.RateLimiter.MaxRequests
			windowSecs := a.config.App.RateLimiter.WindowSeconds
			ctx := request.Context()

			cacheKey := shared.BuildCacheKey(cacheKeyRateLimit, routePattern(request), clientIP(request), userAgent(request))

			var count int

			err := a.cache.Get(ctx, cacheKey, &count)

			switch {
			case errors.Is(err, cache.Nil):
				count = 1

				if _, err = a.cache.SaveIfAbsent(ctx, cacheKey, count, windowSecs); err != nil {
					log.Warn().Err(err).Msg("rate limiter unavailable, letting request through")
					next.ServeHTTP(writer, request)

					return
				}
			case err != nil:
				log.Warn().Err(err).Msg("rate limiter unavailable, letting request through")
				next.ServeHTTP(writer, request)

				return
			default:
				count++

				if count > maxReqs {
					writer.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(maxReqs))
					writer.Header().Set(constant.RequestHeaderRateLimitRemaining, "0")
					writer.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(windowSecs))
					response.WithRequestLimitExceeded(writer)

					return
				}

				if err = a.cache.Save(ctx, cacheKey, count, windowSecs); err != nil {
					log.Warn().Err(err).Msg("rate limiter unavailable, letting request through")
				}
			}

			writer.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(maxReqs))
			writer.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, maxReqs-count)))
			writer.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(windowSecs))

			next.ServeHTTP(writer, request)
		})
	}
}

func userAgent(request *http.Request) string {
	ua := request.Header.Get(constant.RequestHeaderUserAgent)
	if ua == constant.Empty {
		return unknownUserAgent
	}

	return ua
}

func clientIP(request *http.Request) string {
	// X-Forwarded-For can carry a chain of proxies, the first entry is the client.
	if xff := request.Header.Get(constant.RequestHeaderForwardedFor); xff != constant.Empty {
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if xri := request.Header.Get(constant.RequestHeaderRealIP); xri != constant.Empty {
		return strings.TrimSpace(xri)
	}

	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}

	return host
}
