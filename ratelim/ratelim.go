package ratelim

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"maskon/rdx"
	"maskon/utils"

	"github.com/julienschmidt/httprouter"
	"golang.org/x/time/rate"
)

const (
	generalMessage = "Too many requests from this IP, please try again after 15 minutes"
	authMessage    = "Too many authentication attempts, please try again after an hour"
)

// RateLimiter enforces two independent fixed windows per source address:
// a general window over every route and a stricter window layered on the
// authentication routes. Counters live in redis when configured; without
// redis each window degrades to an in-process per-IP token bucket.
type RateLimiter struct {
	window time.Duration
	max    int

	authWindow time.Duration
	authMax    int

	mu      sync.Mutex
	general map[string]*rate.Limiter
	authMem map[string]*rate.Limiter
}

func NewRateLimiter() *RateLimiter {
	rl := &RateLimiter{
		window:     15 * time.Minute,
		max:        100,
		authWindow: time.Hour,
		authMax:    5,
		general:    make(map[string]*rate.Limiter),
		authMem:    make(map[string]*rate.Limiter),
	}
	if v, err := strconv.Atoi(os.Getenv("RATE_LIMIT_MAX")); err == nil && v > 0 {
		rl.max = v
	}
	if v, err := strconv.Atoi(os.Getenv("RATE_LIMIT_WINDOW_MINUTES")); err == nil && v > 0 {
		rl.window = time.Duration(v) * time.Minute
	}
	return rl
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// allowRedis runs one fixed-window INCR. The second return value is the
// retry hint; the third reports whether redis could be consulted at all.
func allowRedis(ctx context.Context, key string, max int, window time.Duration) (bool, time.Duration, bool) {
	if rdx.Conn == nil {
		return false, 0, false
	}

	count, err := rdx.Conn.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, false
	}
	if count == 1 {
		rdx.Conn.Expire(ctx, key, window)
	}
	if count > int64(max) {
		ttl, err := rdx.Conn.TTL(ctx, key).Result()
		if err != nil || ttl <= 0 {
			ttl = window
		}
		return false, ttl, true
	}
	return true, 0, true
}

func memLimiter(limiters map[string]*rate.Limiter, ip string, max int, window time.Duration) *rate.Limiter {
	lim, ok := limiters[ip]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(float64(max)/window.Seconds()), max)
		limiters[ip] = lim
	}
	return lim
}

func (rl *RateLimiter) allowGeneral(r *http.Request) (bool, time.Duration) {
	ip := clientIP(r)
	if ok, retry, usedRedis := allowRedis(r.Context(), "ratelimit:general:"+ip, rl.max, rl.window); usedRedis {
		return ok, retry
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if memLimiter(rl.general, ip, rl.max, rl.window).Allow() {
		return true, 0
	}
	return false, rl.window
}

func (rl *RateLimiter) allowAuth(r *http.Request) (bool, time.Duration) {
	ip := clientIP(r)
	if ok, retry, usedRedis := allowRedis(r.Context(), "ratelimit:auth:"+ip, rl.authMax, rl.authWindow); usedRedis {
		return ok, retry
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if memLimiter(rl.authMem, ip, rl.authMax, rl.authWindow).Allow() {
		return true, 0
	}
	return false, rl.authWindow
}

func reject(w http.ResponseWriter, retry time.Duration, msg string) {
	w.Header().Set("Retry-After", fmt.Sprintf("%d", int(retry.Seconds())))
	utils.RespondWithError(w, http.StatusTooManyRequests, msg)
}

// Middleware applies the general window to every request.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ok, retry := rl.allowGeneral(r); !ok {
			reject(w, retry, generalMessage)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LimitAuth layers the stricter authentication window on one route. The
// general window has already been charged by Middleware.
func (rl *RateLimiter) LimitAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if ok, retry := rl.allowAuth(r); !ok {
			reject(w, retry, authMessage)
			return
		}
		next(w, r, ps)
	}
}
