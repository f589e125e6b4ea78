package web

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/avstrong/homestay/internal/booking"
)

var ErrPanic = errors.New("panic in handler")

const requestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) loggerMiddleware() func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now().UTC()

			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, requestID)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(booking.NewContextWithRequestID(r.Context(), requestID)))

			var traceID string

			if sc := trace.SpanContextFromContext(r.Context()); sc.IsValid() {
				traceID = sc.TraceID().String()
			}

			s.l.Info().
				Str("type", "access").
				Str("requestID", requestID).
				Str("method", r.Method).
				Str("url", r.URL.Path).
				Str("proto", r.Proto).
				Str("userAgent", r.Header.Get("User-Agent")).
				Str("traceID", traceID).
				Int("status", rec.status).
				Dur("latency", time.Since(start)).
				Send()
		})
	}
}

func (s *Server) recoverMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if re := recover(); re != nil {
					err, ok := re.(error)
					if !ok {
						err = fmt.Errorf("%v: %w", re, ErrPanic)
					}
					s.l.LogErrorf("type: panic, error: %v", err)
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// limiterStore holds one token bucket per client address. Buckets idle for longer than idleAfter
// are dropped; they would be full again by then anyway.
type limiterStore struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	idleAfter time.Duration
	lastSweep time.Time
	now       func() time.Time
	limiters  map[string]*clientLimiter
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// newLimiterStore returns nil when requestsPerMinute is not positive, which disables limiting.
func newLimiterStore(requestsPerMinute, burst int, now func() time.Time) *limiterStore {
	if requestsPerMinute <= 0 {
		return nil
	}

	if burst <= 0 {
		burst = 1
	}

	if now == nil {
		now = time.Now
	}

	interval := time.Minute / time.Duration(requestsPerMinute)

	return &limiterStore{
		limit:     rate.Every(interval),
		burst:     burst,
		idleAfter: max(time.Minute, interval*time.Duration(burst)),
		lastSweep: now(),
		now:       now,
		limiters:  make(map[string]*clientLimiter),
	}
}

func (ls *limiterStore) allow(client string) bool {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	now := ls.now()

	if now.Sub(ls.lastSweep) >= ls.idleAfter {
		for key, cl := range ls.limiters {
			if now.Sub(cl.lastSeen) >= ls.idleAfter {
				delete(ls.limiters, key)
			}
		}

		ls.lastSweep = now
	}

	cl, ok := ls.limiters[client]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(ls.limit, ls.burst)}
		ls.limiters[client] = cl
	}

	cl.lastSeen = now

	return cl.limiter.AllowN(now, 1)
}

func (ls *limiterStore) size() int {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	return len(ls.limiters)
}

// clientIP keys rate limiting. X-Forwarded-For is honoured only when trustForwarded is set.
func clientIP(r *http.Request, trustForwarded bool) string {
	if fwd := r.Header.Get("X-Forwarded-For"); trustForwarded && fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")

		return strings.TrimSpace(first)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}

func (s *Server) rateLimitMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if s.limiters == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r, s.conf.TrustForwarded)

			if !s.limiters.allow(ip) {
				s.l.LogWarnf("Rate limit exceeded for %s", ip)
				s.writeJSON(w, http.StatusTooManyRequests, map[string]string{
					"error": "Rate limit exceeded. Try again later.",
				})

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) applyMiddlewares(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for _, middleware := range middlewares {
		h = middleware(h)
	}

	return h
}
