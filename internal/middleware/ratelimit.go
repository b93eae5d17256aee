package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"photoshare/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RouteClass names the rate-limit category an endpoint belongs to.
type RouteClass string

const (
	ClassUpload RouteClass = "upload"
	ClassDelete RouteClass = "delete"
	ClassUpdate RouteClass = "update"
	ClassRead   RouteClass = "read"
	ClassCrop   RouteClass = "crop"
	ClassEffect RouteClass = "effect"
	ClassQRCode RouteClass = "qrcode"
	ClassSearch RouteClass = "search"
)

type limitRule struct {
	Requests int
	Window   time.Duration
}

// Budgets per route class: N requests per window, per actor.
var defaultRules = map[RouteClass]limitRule{
	ClassUpload: {Requests: 1, Window: 10 * time.Second},
	ClassDelete: {Requests: 1, Window: 10 * time.Second},
	ClassUpdate: {Requests: 1, Window: 10 * time.Second},
	ClassRead:   {Requests: 2, Window: 10 * time.Second},
	ClassCrop:   {Requests: 2, Window: 15 * time.Second},
	ClassEffect: {Requests: 2, Window: 15 * time.Second},
	ClassQRCode: {Requests: 1, Window: 10 * time.Second},
	ClassSearch: {Requests: 2, Window: 15 * time.Second},
}

// RateLimiter keeps one token bucket per actor+route-class key. State is
// in-process and best-effort: a restart forgets all counters.
type RateLimiter struct {
	mu      sync.Mutex
	rules   map[RouteClass]limitRule
	buckets map[string]*rate.Limiter
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		rules:   defaultRules,
		buckets: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether the actor may proceed on the given route class,
// and if not, how long to wait. Bucket operations are atomic, so two
// concurrent requests cannot both pass a 1-per-window check.
func (l *RateLimiter) Allow(actorKey string, class RouteClass) (bool, time.Duration) {
	rule, ok := l.rules[class]
	if !ok {
		return true, 0
	}

	key := string(class) + ":" + actorKey
	l.mu.Lock()
	bucket, ok := l.buckets[key]
	if !ok {
		bucket = rate.NewLimiter(rate.Every(rule.Window/time.Duration(rule.Requests)), rule.Requests)
		l.buckets[key] = bucket
	}
	l.mu.Unlock()

	res := bucket.Reserve()
	if !res.OK() {
		return false, rule.Window
	}
	if delay := res.Delay(); delay > 0 {
		res.Cancel()
		return false, delay
	}
	return true, 0
}

// Limit is the gin middleware for one route class. Rejections carry a
// Retry-After header in whole seconds.
func (l *RateLimiter) Limit(class RouteClass) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strconv.FormatInt(c.GetInt64("user_id"), 10)
		if key == "0" {
			key = c.ClientIP()
		}

		allowed, retryAfter := l.Allow(key, class)
		if !allowed {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			response.Error(c, http.StatusTooManyRequests, "RATE_LIMITED",
				fmt.Sprintf("Too many requests, retry in %d seconds", seconds))
			c.Abort()
			return
		}

		c.Next()
	}
}
