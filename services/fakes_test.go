package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/HSouheill/lostfound_backend/config"
	"github.com/HSouheill/lostfound_backend/logger"
	"github.com/HSouheill/lostfound_backend/metrics"
	"github.com/HSouheill/lostfound_backend/models"
	"github.com/HSouheill/lostfound_backend/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repositories. Lists return newest first like the Mongo ones.

type memFlights struct {
	mu   sync.Mutex
	data []*models.Flight
}

func (m *memFlights) Create(_ context.Context, f *models.Flight) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f.ID.IsZero() {
		f.ID = primitive.NewObjectID()
	}
	f.CreatedAt, f.UpdatedAt = time.Now().UTC(), time.Now().UTC()
	cp := *f
	m.data = append(m.data, &cp)
	return nil
}

func (m *memFlights) FindByID(_ context.Context, id primitive.ObjectID) (*models.Flight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.data {
		if f.ID == id {
			cp := *f
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memFlights) FindByNumber(_ context.Context, number string) (*models.Flight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.data {
		if f.FlightNumber == number {
			cp := *f
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memFlights) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Flight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Flight{}
	for _, f := range m.data {
		for _, id := range ids {
			if f.ID == id {
				out = append(out, *f)
			}
		}
	}
	return out, nil
}

func (m *memFlights) List(_ context.Context, number string) ([]models.Flight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Flight{}
	for i := len(m.data) - 1; i >= 0; i-- {
		if number == "" || m.data[i].FlightNumber == number {
			out = append(out, *m.data[i])
		}
	}
	return out, nil
}

func (m *memFlights) Update(_ context.Context, f *models.Flight) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.data {
		if existing.ID == f.ID {
			cp := *f
			m.data[i] = &cp
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (m *memFlights) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, f := range m.data {
		if f.ID == id {
			m.data = append(m.data[:i], m.data[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (m *memFlights) DeleteAll(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

type memSeats struct {
	mu   sync.Mutex
	data []*models.Seat
}

func (m *memSeats) duplicate(s *models.Seat) bool {
	for _, existing := range m.data {
		if existing.ID != s.ID && existing.FlightID == s.FlightID && existing.SeatNumber == s.SeatNumber {
			return true
		}
	}
	return false
}

func (m *memSeats) Create(_ context.Context, s *models.Seat) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	if m.duplicate(s) {
		return repositories.ErrDuplicate
	}
	s.CreatedAt, s.UpdatedAt = time.Now().UTC(), time.Now().UTC()
	cp := *s
	m.data = append(m.data, &cp)
	return nil
}

func (m *memSeats) FindByID(_ context.Context, id primitive.ObjectID) (*models.Seat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.data {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memSeats) FindByFlightAndNumber(_ context.Context, flightID primitive.ObjectID, number string) (*models.Seat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.data {
		if s.FlightID == flightID && s.SeatNumber == number {
			cp := *s
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memSeats) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Seat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Seat{}
	for _, s := range m.data {
		for _, id := range ids {
			if s.ID == id {
				out = append(out, *s)
			}
		}
	}
	return out, nil
}

func (m *memSeats) ListByFlight(_ context.Context, flightID *primitive.ObjectID) ([]models.Seat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Seat{}
	for _, s := range m.data {
		if flightID == nil || s.FlightID == *flightID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *memSeats) Update(_ context.Context, s *models.Seat) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.duplicate(s) {
		return repositories.ErrDuplicate
	}
	for i, existing := range m.data {
		if existing.ID == s.ID {
			cp := *s
			m.data[i] = &cp
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (m *memSeats) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.data {
		if s.ID == id {
			m.data = append(m.data[:i], m.data[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (m *memSeats) DeleteByFlight(_ context.Context, flightID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.data[:0]
	for _, s := range m.data {
		if s.FlightID != flightID {
			kept = append(kept, s)
		}
	}
	m.data = kept
	return nil
}

func (m *memSeats) DeleteAll(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

type memItems struct {
	mu   sync.Mutex
	data []*models.LostItem
}

func (m *memItems) find(id primitive.ObjectID) *models.LostItem {
	for _, item := range m.data {
		if item.ID == id {
			return item
		}
	}
	return nil
}

func (m *memItems) Create(_ context.Context, item *models.LostItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	for _, existing := range m.data {
		if existing.ClaimToken == item.ClaimToken {
			return repositories.ErrDuplicate
		}
	}
	item.CreatedAt, item.UpdatedAt = time.Now().UTC(), time.Now().UTC()
	cp := *item
	m.data = append(m.data, &cp)
	return nil
}

func (m *memItems) FindByID(_ context.Context, id primitive.ObjectID) (*models.LostItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if item := m.find(id); item != nil {
		cp := *item
		return &cp, nil
	}
	return nil, repositories.ErrNotFound
}

func (m *memItems) FindByToken(_ context.Context, token string) (*models.LostItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.data {
		if item.ClaimToken == token {
			cp := *item
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memItems) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.LostItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.LostItem{}
	for _, id := range ids {
		if item := m.find(id); item != nil {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (m *memItems) List(_ context.Context, f repositories.LostItemFilter) ([]models.LostItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.LostItem{}
	for i := len(m.data) - 1; i >= 0; i-- {
		item := m.data[i]
		if f.Status != "" && item.Status != f.Status {
			continue
		}
		if f.FlightID != nil && item.FlightID != *f.FlightID {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}

func (m *memItems) UpdateDetails(_ context.Context, id primitive.ObjectID, c repositories.LostItemChanges) (*models.LostItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item := m.find(id)
	if item == nil {
		return nil, repositories.ErrNotFound
	}
	if c.ItemName != nil {
		item.ItemName = *c.ItemName
	}
	if c.ItemDescription != nil {
		item.ItemDescription = *c.ItemDescription
	}
	if c.ItemImageURL != nil {
		item.ItemImageURL = *c.ItemImageURL
	}
	item.UpdatedAt = time.Now().UTC()
	cp := *item
	return &cp, nil
}

func (m *memItems) TransitionFromUnclaimed(_ context.Context, id primitive.ObjectID, u models.StatusUpdate) (*models.LostItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item := m.find(id)
	if item == nil {
		return nil, repositories.ErrNotFound
	}
	if item.Status != models.StatusUnclaimed {
		return nil, repositories.ErrConflict
	}
	at := u.At
	item.Status = u.Status
	switch u.Status {
	case models.StatusClaimed:
		item.ClaimedAt = &at
	case models.StatusShipped:
		item.ShippedAt = &at
		item.ShippingDetails = u.ShippingDetails
	}
	cp := *item
	return &cp, nil
}

func (m *memItems) Reset(_ context.Context, id primitive.ObjectID) (*models.LostItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item := m.find(id)
	if item == nil {
		return nil, repositories.ErrNotFound
	}
	item.Status = models.StatusUnclaimed
	item.ClaimedAt, item.ShippedAt, item.ShippingDetails = nil, nil, nil
	cp := *item
	return &cp, nil
}

func (m *memItems) ExistsByFlight(_ context.Context, flightID primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.data {
		if item.FlightID == flightID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memItems) ExistsBySeat(_ context.Context, seatID primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.data {
		if item.SeatID == seatID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memItems) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, item := range m.data {
		if item.ID == id {
			m.data = append(m.data[:i], m.data[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (m *memItems) DeleteAll(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

// racedItems lets another writer claim the item between the caller's
// read and its conditional transition.
type racedItems struct {
	*memItems
}

func (r racedItems) TransitionFromUnclaimed(ctx context.Context, id primitive.ObjectID, u models.StatusUpdate) (*models.LostItem, error) {
	r.mu.Lock()
	if item := r.find(id); item != nil {
		item.Status = models.StatusClaimed
	}
	r.mu.Unlock()
	return r.memItems.TransitionFromUnclaimed(ctx, id, u)
}

type memClaims struct {
	mu   sync.Mutex
	data []*models.Claim
}

func (m *memClaims) Create(_ context.Context, c *models.Claim) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	cp := *c
	m.data = append(m.data, &cp)
	return nil
}

func (m *memClaims) FindByID(_ context.Context, id primitive.ObjectID) (*models.Claim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.data {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memClaims) List(_ context.Context, f repositories.ClaimFilter) ([]models.Claim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Claim{}
	for i := len(m.data) - 1; i >= 0; i-- {
		c := m.data[i]
		if f.CustomerEmail != "" && c.CustomerEmail != f.CustomerEmail {
			continue
		}
		if f.ItemID != nil && c.ItemID != *f.ItemID {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (m *memClaims) Update(_ context.Context, c *models.Claim) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.data {
		if existing.ID == c.ID {
			cp := *c
			m.data[i] = &cp
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (m *memClaims) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.data {
		if c.ID == id {
			m.data = append(m.data[:i], m.data[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

type failingClaimUpdates struct {
	*memClaims
}

func (failingClaimUpdates) Update(context.Context, *models.Claim) error {
	return errors.New("write concern timeout")
}

type memNotifications struct {
	mu   sync.Mutex
	data []models.Notification
}

func (m *memNotifications) Create(_ context.Context, n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n.ID = primitive.NewObjectID()
	m.data = append(m.data, *n)
	return nil
}

func (m *memNotifications) List(_ context.Context, f repositories.NotificationFilter) ([]models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Notification{}
	for _, n := range m.data {
		if f.CustomerEmail != "" && n.CustomerEmail != f.CustomerEmail {
			continue
		}
		if f.ItemID != nil && n.ItemID != *f.ItemID {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

type memAuditLogs struct {
	mu   sync.Mutex
	data []models.AuditLog
	err  error
}

func (m *memAuditLogs) Create(_ context.Context, e *models.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	e.ID = primitive.NewObjectID()
	m.data = append(m.data, *e)
	return nil
}

func (m *memAuditLogs) List(_ context.Context, f repositories.AuditLogFilter) ([]models.AuditLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.AuditLog{}
	for i := len(m.data) - 1; i >= 0; i-- {
		e := m.data[i]
		if f.ItemID != nil && e.ItemID != *f.ItemID {
			continue
		}
		if f.Action != "" && e.Action != f.Action {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *memAuditLogs) actions() []models.AuditAction {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.AuditAction
	for _, e := range m.data {
		out = append(out, e.Action)
	}
	return out
}

type memReports struct {
	mu   sync.Mutex
	data []*models.LostItemReport
}

func (m *memReports) Create(_ context.Context, r *models.LostItemReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	cp := *r
	m.data = append(m.data, &cp)
	return nil
}

func (m *memReports) FindByID(_ context.Context, id primitive.ObjectID) (*models.LostItemReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.data {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memReports) List(_ context.Context, f repositories.ReportFilter) ([]models.LostItemReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.LostItemReport{}
	for i := len(m.data) - 1; i >= 0; i-- {
		r := m.data[i]
		if f.CustomerEmail != "" && r.CustomerEmail != f.CustomerEmail {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (m *memReports) Update(_ context.Context, r *models.LostItemReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.data {
		if existing.ID == r.ID {
			cp := *r
			m.data[i] = &cp
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (m *memReports) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.data {
		if r.ID == id {
			m.data = append(m.data[:i], m.data[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

// Collaborator fakes

type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
	deleted []string
}

func (s *memStore) Upload(_ context.Context, data []byte, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	if s.objects == nil {
		s.objects = make(map[string][]byte)
	}
	url := fmt.Sprintf("/uploads/%d.jpg", len(s.objects)+len(s.deleted)+1)
	s.objects[url] = data
	return url, nil
}

func (s *memStore) Delete(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, url)
	s.deleted = append(s.deleted, url)
	return nil
}

type memMailer struct {
	mu   sync.Mutex
	sent []Email
	fail map[string]bool
}

func (m *memMailer) Send(_ context.Context, email Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail[email.To] {
		return errors.New("smtp: mailbox unavailable")
	}
	m.sent = append(m.sent, email)
	return nil
}

func (m *memMailer) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, e := range m.sent {
		out = append(out, e.To)
	}
	return out
}

func (m *memMailer) subjects() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, e := range m.sent {
		out = append(out, e.Subject)
	}
	return out
}

type fakePayments struct {
	mu        sync.Mutex
	failWith  error
	refunded  []string
	confirmed []string
}

func (p *fakePayments) CreateIntent(_ context.Context, amount int64) (*PaymentIntent, error) {
	if p.failWith != nil {
		return nil, p.failWith
	}
	return &PaymentIntent{ID: "pi_test", Status: "requires_confirmation", Amount: amount}, nil
}

func (p *fakePayments) Confirm(_ context.Context, id string) (*PaymentIntent, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.confirmed = append(p.confirmed, id)
	return &PaymentIntent{ID: id, Status: PaymentSucceeded}, nil
}

func (p *fakePayments) Refund(_ context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refunded = append(p.refunded, id)
	return nil
}

type fakeAnalyzer struct {
	analysis *models.ImageAnalysis
	err      error
}

func (a *fakeAnalyzer) AnalyzeImage(context.Context, []byte, string) (*models.ImageAnalysis, error) {
	return a.analysis, a.err
}

func (a *fakeAnalyzer) Transcribe(context.Context, []byte) (*models.Transcription, error) {
	if a.err != nil {
		return nil, a.err
	}
	return &models.Transcription{Text: "I left a red scarf on seat 4C"}, nil
}

func (a *fakeAnalyzer) ExtractItemDetails(context.Context, string) (*models.ImageAnalysis, error) {
	return a.analysis, a.err
}

type recordedEvent struct {
	Type    string
	Message string
	Data    interface{}
}

type fakePublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *fakePublisher) Publish(eventType, message string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{eventType, message, data})
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type memAttempts struct {
	mu     sync.Mutex
	counts map[string]int
	max    int
}

func (a *memAttempts) Exceeded(_ context.Context, token string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.max > 0 && a.counts[token] >= a.max, nil
}

func (a *memAttempts) RecordFailure(_ context.Context, token string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.counts == nil {
		a.counts = make(map[string]int)
	}
	a.counts[token]++
	return nil
}

func (a *memAttempts) Reset(_ context.Context, token string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.counts, token)
	return nil
}

// env wires every service against the in-memory fakes
type env struct {
	cfg           *config.Config
	flights       *memFlights
	seats         *memSeats
	items         *memItems
	claims        *memClaims
	notifications *memNotifications
	auditLogs     *memAuditLogs
	reports       *memReports
	store         *memStore
	mailer        *memMailer
	payments      *fakePayments
	attempts      *memAttempts
	events        *fakePublisher
	deps          Deps
}

func newEnv(analyzer Analyzer) *env {
	cfg := &config.Config{
		BaseURL:           "https://lostfound.example.com",
		ExternalTimeout:   5 * time.Second,
		PickupLocation:    "Terminal 5 desk",
		ShippingFeeCents:  999,
		AllowSeed:         true,
		SeedCustomerEmail: "passenger@example.com",
	}
	e := &env{
		cfg:           cfg,
		flights:       &memFlights{},
		seats:         &memSeats{},
		items:         &memItems{},
		claims:        &memClaims{},
		notifications: &memNotifications{},
		auditLogs:     &memAuditLogs{},
		reports:       &memReports{},
		store:         &memStore{},
		mailer:        &memMailer{fail: map[string]bool{}},
		payments:      &fakePayments{},
		attempts:      &memAttempts{max: 3},
		events:        &fakePublisher{},
	}

	log := logger.NewNop()
	m := metrics.NewNop()
	qr := NewQRGenerator(cfg.BaseURL)
	emails := NewEmailSender(e.mailer, qr, cfg)

	e.deps = Deps{
		Config:        cfg,
		Log:           log,
		Flights:       e.flights,
		Seats:         e.seats,
		Items:         e.items,
		Claims:        e.claims,
		Notifications: e.notifications,
		AuditLogs:     e.auditLogs,
		Reports:       e.reports,
		Store:         e.store,
		Analyzer:      analyzer,
		QR:            qr,
		Emails:        emails,
		Notifier:      NewRowNotifier(e.seats, e.notifications, emails, m, log),
		Payments:      e.payments,
		Attempts:      e.attempts,
		Events:        e.events,
		Metrics:       m,
	}
	return e
}

// addFlight stores a flight with row seats and optional passenger emails
func (e *env) addFlight(number string, seats map[string]string) *models.Flight {
	now := time.Now().UTC()
	flight := &models.Flight{
		FlightNumber:    number,
		OriginCode:      "LHR",
		DestinationCode: "CDG",
		DepartureTime:   now,
		ArrivalTime:     now.Add(time.Hour),
	}
	_ = e.flights.Create(context.Background(), flight)
	for number, email := range seats {
		_ = e.seats.Create(context.Background(), &models.Seat{FlightID: flight.ID, SeatNumber: strings.ToUpper(number), CustomerEmail: email})
	}
	return flight
}

// submit records an item through the item service
func (e *env) submit(flightNumber, seatNumber, name string) *models.LostItemView {
	view, err := NewItemService(e.deps).Create(context.Background(), models.CreateLostItemRequest{
		ItemName:     name,
		FlightNumber: flightNumber,
		SeatNumber:   seatNumber,
	})
	if err != nil {
		panic(err)
	}
	return view
}
