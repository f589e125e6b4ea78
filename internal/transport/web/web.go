package web

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/avstrong/homestay/internal/booking"
	"github.com/avstrong/homestay/internal/logger"
)

type bookingManager interface {
	Quote(ctx context.Context, input *booking.QuoteInput) (*booking.Estimate, error)
	Nightly(ctx context.Context, roomID string, date time.Time) (*booking.NightlyPrice, error)
	Peak(date time.Time) booking.PeakInfo
	Rooms() []booking.RoomListing
	Inquiry(ctx context.Context, input *booking.InquiryInput) (*booking.InquiryResult, error)
}

type extrasCatalog interface {
	For(extraBed bool) []booking.Extra
}

type Server struct {
	srv      *http.Server
	router   *http.ServeMux
	l        *logger.Logger
	conf     Conf
	bManager bookingManager
	extras   extrasCatalog
	limiters *limiterStore
}

type Conf struct {
	L                 *logger.Logger
	ServerLogger      *log.Logger
	Host              string
	Port              string
	ReadHeaderTimeout time.Duration
	LivenessEndpoint  string
	// MetricsEndpoint is not served when empty.
	MetricsEndpoint string
	// Location is where request dates are civil dates. Defaults to UTC.
	Location          *time.Location
	RequestsPerMinute int
	Burst             int
	// TrustForwarded keys rate limits by X-Forwarded-For. Enable only behind a proxy that sets it.
	TrustForwarded bool
	// Now is the rate limiter clock. Defaults to time.Now.
	Now func() time.Time
}

func New(ctx context.Context, conf Conf, bookingManager bookingManager, extras extrasCatalog) (*Server, error) {
	if conf.Location == nil {
		conf.Location = time.UTC
	}

	mux := http.NewServeMux()

	//nolint:exhaustruct
	srv := &http.Server{
		Addr:              net.JoinHostPort(conf.Host, conf.Port),
		ReadHeaderTimeout: conf.ReadHeaderTimeout,
		ErrorLog:          conf.ServerLogger,
		Handler:           mux,
		BaseContext: func(listener net.Listener) context.Context {
			return ctx
		},
	}

	server := &Server{
		srv:      srv,
		router:   mux,
		l:        conf.L,
		conf:     conf,
		bManager: bookingManager,
		extras:   extras,
		limiters: newLimiterStore(conf.RequestsPerMinute, conf.Burst, conf.Now),
	}

	server.addRoutes(mux)

	return server, nil
}

func (s *Server) Srv() *http.Server {
	return s.srv
}
