package booking

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/avstrong/homestay/internal/inquiry"
	"github.com/avstrong/homestay/internal/logger"
	"github.com/avstrong/homestay/internal/metrics"
	"github.com/avstrong/homestay/internal/pricing"
)

type pricer interface {
	Schedule() *pricing.Schedule
	Now() time.Time
	Markup(date time.Time) float64
	NightlyPrice(room pricing.RoomCategory, date time.Time) int
	IsPeak(date time.Time) bool
	RoomPricing(room pricing.RoomCategory) pricing.RoomPricing
	Quote(room pricing.RoomCategory, checkIn, checkOut time.Time) pricing.Quote
}

type estimateCache interface {
	GetEstimate(ctx context.Context, key string) (*Estimate, error)
	SaveEstimate(ctx context.Context, key string, estimate *Estimate) error
}

// Extra is a paid add-on applied on top of the nightly total.
type Extra interface {
	Key() string
	Apply(e *Estimate) error
}

type Conf struct {
	SiteName     string
	DeepLinkBase string
}

type Manager struct {
	l           *logger.Logger
	engine      pricer
	cache       estimateCache
	conf        Conf
	fingerprint string
}

// New builds a Manager. cache may be nil.
func New(l *logger.Logger, engine pricer, cache estimateCache, conf Conf) *Manager {
	return &Manager{
		l:           l,
		engine:      engine,
		cache:       cache,
		conf:        conf,
		fingerprint: engine.Schedule().Fingerprint(),
	}
}

// resolveRoom accepts booking form identifiers as well as canonical category keys.
func resolveRoom(id string) (pricing.RoomCategory, bool) {
	id = strings.TrimSpace(id)

	if room, ok := pricing.MapRoomIdentifier(id); ok {
		return room, true
	}

	return pricing.ParseRoomCategory(id)
}

func validateRoom(inputErr *InputError, id string) pricing.RoomCategory {
	if strings.TrimSpace(id) == "" {
		inputErr.addError("room", "provide room")

		return 0
	}

	room, ok := resolveRoom(id)
	if !ok {
		inputErr.addError("room", fmt.Sprintf("unknown room '%s'", id))
	}

	return room
}

func validateStay(inputErr *InputError, checkIn, checkOut time.Time) {
	if checkIn.IsZero() {
		inputErr.addError("check_in", "Check-in date required")
	}

	if checkOut.IsZero() {
		inputErr.addError("check_out", "Check-out date required")

		return
	}

	if !checkIn.IsZero() && pricing.Nights(checkIn, checkOut) > MaxStayNights {
		inputErr.addError("check_out", fmt.Sprintf("Stay must not exceed %d nights", MaxStayNights))
	}
}

func (q *QuoteInput) validate() (pricing.RoomCategory, error) {
	inputErr := newInputError()

	room := validateRoom(inputErr, q.Room)
	validateStay(inputErr, q.CheckIn, q.CheckOut)

	if inputErr.fieldsCount() > 0 {
		return 0, inputErr
	}

	return room, nil
}

func (m *Manager) cacheKey(room pricing.RoomCategory, input *QuoteInput) string {
	parts := []string{
		m.fingerprint,
		room.String(),
		input.CheckIn.Format(time.RFC3339),
		input.CheckOut.Format(time.RFC3339),
	}

	for _, extra := range input.Extras {
		parts = append(parts, extra.Key())
	}

	return strings.Join(parts, "|")
}

func (m *Manager) cachedEstimate(ctx context.Context, key string) *Estimate {
	if m.cache == nil {
		return nil
	}

	estimate, err := m.cache.GetEstimate(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			m.l.LogWarnf("%s: read quote cache: %v", requestTag(ctx), err)
		}

		metrics.IncCacheMiss()

		return nil
	}

	metrics.IncCacheHit()

	return estimate
}

func (m *Manager) storeEstimate(ctx context.Context, key string, estimate *Estimate) {
	if m.cache == nil {
		return
	}

	if err := m.cache.SaveEstimate(ctx, key, estimate); err != nil {
		m.l.LogWarnf("%s: write quote cache: %v", requestTag(ctx), err)
	}
}

func (m *Manager) buildEstimate(room pricing.RoomCategory, input *QuoteInput) (*Estimate, error) {
	estimate := newEstimate(m.engine.Quote(room, input.CheckIn, input.CheckOut))

	for _, extra := range input.Extras {
		if err := extra.Apply(estimate); err != nil {
			return nil, fmt.Errorf("apply extra %s: %w", extra.Key(), err)
		}
	}

	return estimate, nil
}

// Quote prices a stay. A check-out that is not after check-in is not an error and yields a
// zero-night estimate.
func (m *Manager) Quote(ctx context.Context, input *QuoteInput) (*Estimate, error) {
	room, err := input.validate()
	if err != nil {
		metrics.IncRejectedInput("quote")

		return nil, err
	}

	key := m.cacheKey(room, input)

	if estimate := m.cachedEstimate(ctx, key); estimate != nil {
		return estimate, nil
	}

	estimate, err := m.buildEstimate(room, input)
	if err != nil {
		return nil, fmt.Errorf("build estimate for %s: %w", room, err)
	}

	m.storeEstimate(ctx, key, estimate)
	metrics.IncQuote(room.String(), estimate.Quote.IsPeakSeason)

	m.l.LogDebugf("%s: quoted %s for %d nights, total %d", requestTag(ctx), room, estimate.Quote.Nights,
		estimate.GrandTotal)

	return estimate, nil
}

// Nightly prices a single night. A zero date means today on the engine clock.
func (m *Manager) Nightly(ctx context.Context, roomID string, date time.Time) (*NightlyPrice, error) {
	inputErr := newInputError()

	room := validateRoom(inputErr, roomID)
	if inputErr.fieldsCount() > 0 {
		metrics.IncRejectedInput("nightly")

		return nil, inputErr
	}

	if date.IsZero() {
		date = m.engine.Now()
	}

	price := m.engine.NightlyPrice(room, date)

	metrics.IncNightlyLookup(room.String())
	m.l.LogDebugf("%s: nightly %s on %s is %d", requestTag(ctx), room, date.Format(time.DateOnly), price)

	return &NightlyPrice{
		Room:      room,
		Date:      date,
		Markup:    m.engine.Markup(date),
		Price:     price,
		Peak:      m.engine.IsPeak(date),
		Formatted: pricing.FormatPriceExact(price),
	}, nil
}

// Peak describes the markup in effect on a date. A zero date means today on the engine clock.
func (m *Manager) Peak(date time.Time) PeakInfo {
	if date.IsZero() {
		date = m.engine.Now()
	}

	return PeakInfo{
		Date:   date,
		Markup: m.engine.Markup(date),
		Peak:   m.engine.IsPeak(date),
	}
}

// Rooms returns the pricing snapshot of every category for room cards.
func (m *Manager) Rooms() []RoomListing {
	categories := pricing.Categories()
	res := make([]RoomListing, 0, len(categories))

	for _, room := range categories {
		rp := m.engine.RoomPricing(room)

		res = append(res, RoomListing{
			RoomPricing:   rp,
			Identifier:    room.Identifier(),
			Name:          room.DisplayName(),
			DisplayFrom:   pricing.FormatPrice(rp.CurrentPrice),
			DisplayPeakUp: pricing.FormatPrice(rp.PeakSeasonPrice),
		})
	}

	return res
}

func (in *InquiryInput) validate() (pricing.RoomCategory, error) {
	inputErr := newInputError()

	room := validateRoom(inputErr, in.Room)

	name := strings.TrimSpace(in.Name)
	if n := utf8.RuneCountInString(name); n < minNameLen {
		inputErr.addError("name", "Name must be at least 2 characters")
	} else if n > maxNameLen {
		inputErr.addError("name", "Name too long")
	}

	email := strings.TrimSpace(in.Email)
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		inputErr.addError("email", "Invalid email address")
	}

	if len(email) > maxEmailLen {
		inputErr.addError("email", "Email too long")
	}

	phone := strings.TrimSpace(in.Phone)
	if len(phone) < minPhoneLen {
		inputErr.addError("phone", "Phone must be at least 10 digits")
	} else if len(phone) > maxPhoneLen {
		inputErr.addError("phone", "Phone too long")
	}

	validateStay(inputErr, in.CheckIn, in.CheckOut)

	if in.Guests < 1 {
		inputErr.addError("guests", "Number of guests required")
	}

	if in.Rooms < 1 {
		inputErr.addError("rooms", "Number of rooms required")
	}

	if utf8.RuneCountInString(in.Message) > maxMessageLen {
		inputErr.addError("message", "Message too long")
	}

	if inputErr.fieldsCount() > 0 {
		return 0, inputErr
	}

	return room, nil
}

// Inquiry prices the requested stay and renders it as a message for the host with a deep link
// that opens the chat prefilled. Nothing is sent.
func (m *Manager) Inquiry(ctx context.Context, input *InquiryInput) (*InquiryResult, error) {
	room, err := input.validate()
	if err != nil {
		metrics.IncRejectedInput("inquiry")

		return nil, err
	}

	estimate, err := m.Quote(ctx, &QuoteInput{
		Room:     room.String(),
		CheckIn:  input.CheckIn,
		CheckOut: input.CheckOut,
		Extras:   input.Extras,
	})
	if err != nil {
		return nil, fmt.Errorf("quote inquiry stay: %w", err)
	}

	summary := inquiry.Summary(m.conf.SiteName, &inquiry.Request{
		Name:            input.Name,
		Email:           input.Email,
		Phone:           input.Phone,
		Room:            room,
		CheckIn:         input.CheckIn,
		CheckOut:        input.CheckOut,
		Guests:          input.Guests,
		Rooms:           input.Rooms,
		Message:         input.Message,
		NeedYogaMat:     input.NeedYogaMat,
		ExtraBed:        input.ExtraBed,
		SpecialOccasion: input.SpecialOccasion,
	}, estimate.inquiryPricing())

	metrics.IncInquiry()
	m.l.LogInfo("%s: inquiry built for %s, %d nights", requestTag(ctx), room, estimate.Quote.Nights)

	return &InquiryResult{
		Estimate: estimate,
		Summary:  summary,
		DeepLink: inquiry.DeepLink(m.conf.DeepLinkBase, summary),
	}, nil
}

func requestTag(ctx context.Context) string {
	if id, ok := RequestIDFromContext(ctx); ok {
		return "request " + id
	}

	return "request -"
}
