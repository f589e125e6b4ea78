package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/avstrong/homestay/internal/booking"
)

type quoteRequest struct {
	Room     string `json:"room"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	ExtraBed bool   `json:"extra_bed"`
}

type inquiryRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Room            string `json:"room"`
	CheckIn         string `json:"check_in"`
	CheckOut        string `json:"check_out"`
	Guests          int    `json:"guests"`
	Rooms           int    `json:"rooms"`
	Message         string `json:"message"`
	NeedYogaMat     bool   `json:"need_yoga_mat"`
	ExtraBed        bool   `json:"extra_bed"`
	SpecialOccasion bool   `json:"special_occasion"`
}

// dateFields parses YYYY-MM-DD values as midnight in the configured location. Empty values stay
// zero so the manager can report them as missing.
type dateFields struct {
	loc    *time.Location
	errors map[string][]string
}

func (s *Server) newDateFields() *dateFields {
	return &dateFields{loc: s.conf.Location, errors: make(map[string][]string)}
}

func (d *dateFields) parse(field, value string) time.Time {
	if value == "" {
		return time.Time{}
	}

	t, err := time.ParseInLocation(time.DateOnly, value, d.loc)
	if err != nil {
		d.errors[field] = append(d.errors[field], fmt.Sprintf("invalid date '%s', expected YYYY-MM-DD", value))
	}

	return t
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.l.LogErrorf("Could not encode response: %v", err.Error())
	}
}

// writeError maps input errors to 400 with the field map, anything else to 500.
func (s *Server) writeError(w http.ResponseWriter, err error, action string) {
	if inputErr := booking.IsInputError(err); inputErr != nil {
		s.writeJSON(w, http.StatusBadRequest, inputErr.Fields())

		return
	}

	s.l.LogErrorf("Could not %s: %v", action, err.Error())
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (s *Server) roomsHandler(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.bManager.Rooms())
}

func (s *Server) nightlyHandler(w http.ResponseWriter, r *http.Request) {
	dates := s.newDateFields()

	date := dates.parse("date", r.URL.Query().Get("date"))
	if len(dates.errors) > 0 {
		s.writeJSON(w, http.StatusBadRequest, dates.errors)

		return
	}

	out, err := s.bManager.Nightly(r.Context(), r.PathValue("room"), date)
	if err != nil {
		s.writeError(w, err, "price a night")

		return
	}

	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) peakHandler(w http.ResponseWriter, r *http.Request) {
	dates := s.newDateFields()

	date := dates.parse("date", r.URL.Query().Get("date"))
	if len(dates.errors) > 0 {
		s.writeJSON(w, http.StatusBadRequest, dates.errors)

		return
	}

	s.writeJSON(w, http.StatusOK, s.bManager.Peak(date))
}

func (s *Server) extrasFor(extraBed bool) []booking.Extra {
	if s.extras == nil {
		return nil
	}

	return s.extras.For(extraBed)
}

func (s *Server) quoteHandler(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return
	}

	dates := s.newDateFields()
	input := &booking.QuoteInput{
		Room:     req.Room,
		CheckIn:  dates.parse("check_in", req.CheckIn),
		CheckOut: dates.parse("check_out", req.CheckOut),
		Extras:   s.extrasFor(req.ExtraBed),
	}

	if len(dates.errors) > 0 {
		s.writeJSON(w, http.StatusBadRequest, dates.errors)

		return
	}

	out, err := s.bManager.Quote(r.Context(), input)
	if err != nil {
		s.writeError(w, err, "quote a stay")

		return
	}

	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) inquiryHandler(w http.ResponseWriter, r *http.Request) {
	var req inquiryRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return
	}

	dates := s.newDateFields()
	input := &booking.InquiryInput{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Room:            req.Room,
		CheckIn:         dates.parse("check_in", req.CheckIn),
		CheckOut:        dates.parse("check_out", req.CheckOut),
		Guests:          req.Guests,
		Rooms:           req.Rooms,
		Message:         req.Message,
		NeedYogaMat:     req.NeedYogaMat,
		ExtraBed:        req.ExtraBed,
		SpecialOccasion: req.SpecialOccasion,
		Extras:          s.extrasFor(req.ExtraBed),
	}

	if len(dates.errors) > 0 {
		s.writeJSON(w, http.StatusBadRequest, dates.errors)

		return
	}

	out, err := s.bManager.Inquiry(r.Context(), input)
	if err != nil {
		s.writeError(w, err, "build an inquiry")

		return
	}

	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) livenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) api(h http.HandlerFunc) http.Handler {
	return s.applyMiddlewares(h, s.recoverMiddleware(), s.rateLimitMiddleware(), s.loggerMiddleware())
}

func (s *Server) addRoutes(r *http.ServeMux) {
	r.Handle("GET /api/pricing/v1/rooms", s.api(s.roomsHandler))
	r.Handle("GET /api/pricing/v1/rooms/{room}/nightly", s.api(s.nightlyHandler))
	r.Handle("GET /api/pricing/v1/peak", s.api(s.peakHandler))
	r.Handle("POST /api/pricing/v1/quotes", s.api(s.quoteHandler))
	r.Handle("POST /api/inquiries/v1", s.api(s.inquiryHandler))
	r.Handle(
		fmt.Sprintf("GET %s", s.conf.LivenessEndpoint),
		s.applyMiddlewares(http.HandlerFunc(s.livenessHandler), s.recoverMiddleware(), s.loggerMiddleware()),
	)

	if s.conf.MetricsEndpoint != "" {
		r.Handle(fmt.Sprintf("GET %s", s.conf.MetricsEndpoint), promhttp.Handler())
	}
}
