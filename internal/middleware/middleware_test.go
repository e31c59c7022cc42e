package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront-be/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/time/rate"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCors(t *testing.T) {
	handler := CORS("http://localhost:3000")(okHandler())

	t.Run("Preflight from allowed origin", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/api/order/getOrders", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", "POST")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "POST", w.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("Request from allowed origin", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/health", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Contains(t, w.Header().Values("Vary"), "Origin")
	})

	t.Run("Other origin gets no grant", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/health", nil)
		req.Header.Set("Origin", "http://evil.example")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("Preflight from other origin gets no grant", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/api/order/deleteOrders", nil)
		req.Header.Set("Origin", "http://evil.example")
		req.Header.Set("Access-Control-Request-Method", "POST")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("No origin passes through", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Wildcard", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Origin", "http://anywhere.example")
		w := httptest.NewRecorder()

		CORS("")(okHandler()).ServeHTTP(w, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})
}

func TestTimeout(t *testing.T) {
	t.Run("SetsDeadline", func(t *testing.T) {
		var deadline time.Time
		var ok bool
		h := Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			deadline, ok = r.Context().Deadline()
		}))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(time.Second), deadline, time.Second)
	})

	t.Run("Disabled", func(t *testing.T) {
		h := Timeout(0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := r.Context().Deadline()
			assert.False(t, ok)
		}))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	})
}

func TestRecover(t *testing.T) {
	core, observed := observer.New(zapcore.ErrorLevel)
	defer logger.Replace(zap.New(core))()

	h := Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/api/order/getOrders", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])

	logs := observed.FilterMessage("panic recovered").All()
	require.Len(t, logs, 1)
	assert.Equal(t, "/api/order/getOrders", logs[0].ContextMap()["path"])
}

func TestBodyLimit(t *testing.T) {
	h := BodyLimit(3)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var v any
		if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("POST", "/", jsonBody(`{"filter":{}}`)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func jsonBody(s string) *strings.Reader {
	return strings.NewReader(s)
}

func TestChain(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	Chain(okHandler(), mark("a"), mark("b"), mark("c")).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestLimiter(t *testing.T) {
	write := Tier{Name: "write", Limit: rate.Limit(0), Burst: 1}
	read := Tier{Name: "read", Limit: rate.Limit(0), Burst: 2}

	t.Run("WriteTierExhausted", func(t *testing.T) {
		l := NewLimiter(write, read)
		h := l.Middleware(okHandler())

		codes := []int{}
		for range 2 {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest("POST", "/api/order/createOrder", nil))
			codes = append(codes, w.Code)
		}
		assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)

		// Reads have their own bucket.
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest("POST", "/api/order/getOrders", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("SeparateClients", func(t *testing.T) {
		l := NewLimiter(write, read)
		h := l.Middleware(okHandler())

		for _, device := range []string{"a", "b"} {
			req := httptest.NewRequest("PUT", "/api/order/updateOrderStatus/1", nil)
			req.Header.Set("X-Device-ID", device)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code, device)
		}
	})

	t.Run("RejectionEnvelope", func(t *testing.T) {
		l := NewLimiter(write, read)
		h := l.Middleware(okHandler())

		req := httptest.NewRequest("POST", "/api/user/deleteUsers", nil)
		h.ServeHTTP(httptest.NewRecorder(), req)

		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Too many requests, please try again later", body["message"])
	})

	t.Run("CleanupEvictsIdle", func(t *testing.T) {
		l := NewLimiter(write, read)
		now := time.Now()
		l.now = func() time.Time { return now }

		l.get("ip:1:read", read)
		now = now.Add(5 * time.Minute)
		l.get("ip:2:read", read)
		l.cleanup()

		assert.Len(t, l.visitors, 1)
		assert.Contains(t, l.visitors, "ip:2:read")
	})

	t.Run("RunStops", func(t *testing.T) {
		l := NewLimiter(write, read)
		stop := make(chan struct{})
		done := make(chan struct{})
		go func() {
			l.Run(time.Millisecond, stop)
			close(done)
		}()
		close(stop)

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		select {
		case <-done:
		case <-ctx.Done():
			t.Fatal("Run did not return")
		}
	})
}
