package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/user/movietracker/internal/logging"
	"github.com/user/movietracker/internal/utils"
	"golang.org/x/time/rate"
)

// RateLimiter 按客户端 IP 限流，闲置的限流器自动过期
type RateLimiter struct {
	limiters *cache.Cache
	limit    rate.Limit
	burst    int
}

// NewRateLimiter perMinute 为每分钟允许的请求数
func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	return &RateLimiter{
		limiters: cache.New(10*time.Minute, 5*time.Minute),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
	}
}

func (l *RateLimiter) get(key string) *rate.Limiter {
	if v, found := l.limiters.Get(key); found {
		return v.(*rate.Limiter)
	}
	lim := rate.NewLimiter(l.limit, l.burst)
	// 并发时以先写入者为准
	if err := l.limiters.Add(key, lim, cache.DefaultExpiration); err != nil {
		if v, found := l.limiters.Get(key); found {
			return v.(*rate.Limiter)
		}
	}
	return lim
}

// Allow 判断该 key 是否还有配额
func (l *RateLimiter) Allow(key string) bool {
	lim := l.get(key)
	// 访问即续期
	l.limiters.SetDefault(key, lim)
	return lim.Allow()
}

// Middleware 超出配额返回 429
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	log := logging.With("ratelimit")
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !l.Allow(ip) {
			log.Warn().Str("ip", ip).Str("path", c.Request.URL.Path).Msg("请求过于频繁")
			utils.TooManyRequests(c)
			return
		}
		c.Next()
	}
}
