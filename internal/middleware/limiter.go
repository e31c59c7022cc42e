package middleware

import (
	"net"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"storefront-be/internal/logger"
	"storefront-be/internal/response"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DeviceIDHeader identifies a client across IP changes.
const DeviceIDHeader = "X-Device-ID"

// Tier is a token bucket policy.
type Tier struct {
	Name  string
	Limit rate.Limit
	Burst int
}

var (
	// TierWrite covers create, update and delete endpoints.
	TierWrite = Tier{Name: "write", Limit: rate.Limit(2), Burst: 5}
	// TierRead covers listing and lookups.
	TierRead = Tier{Name: "read", Limit: rate.Limit(10), Burst: 20}
)

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one bucket per client and tier.
type Limiter struct {
	write Tier
	read  Tier
	ttl   time.Duration

	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time
}

func NewLimiter(write, read Tier) *Limiter {
	return &Limiter{
		write:    write,
		read:     read,
		ttl:      3 * time.Minute,
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

// Run evicts idle visitors every interval until stop is closed.
func (l *Limiter) Run(interval time.Duration, stop <-chan struct{}) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-stop:
			return
		case <-t.C:
			l.cleanup()
		}
	}
}

func (l *Limiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.ttl {
			delete(l.visitors, key)
		}
	}
}

func (l *Limiter) get(key string, tier Tier) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(tier.Limit, tier.Burst)}
		l.visitors[key] = v
	}
	v.lastSeen = l.now()
	return v.limiter
}

func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tier := l.tierOf(r)
		key := identity(r) + ":" + tier.Name

		if !l.get(key, tier).Allow() {
			logger.FromCtx(r.Context()).Warn("rate limited",
				zap.String("key", key),
				zap.String("path", r.URL.Path),
			)
			response.Fail(w, http.StatusTooManyRequests, "Too many requests, please try again later", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// tierOf picks the write tier for mutating actions. Listing endpoints are
// POSTs too, so the action name decides, not the method.
func (l *Limiter) tierOf(r *http.Request) Tier {
	if r.Method == http.MethodDelete || r.Method == http.MethodPut {
		return l.write
	}

	action := strings.ToLower(path.Base(r.URL.Path))
	for _, prefix := range []string{"create", "delete", "update"} {
		if strings.HasPrefix(action, prefix) {
			return l.write
		}
	}
	return l.read
}

// identity prefers a client supplied device id and falls back to the IP.
func identity(r *http.Request) string {
	if id := r.Header.Get(DeviceIDHeader); id != "" {
		return "device:" + id
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}
