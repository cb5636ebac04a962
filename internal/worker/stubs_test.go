package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"auromart/internal/model"
	"auromart/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── In-memory repositories ────────────────────────────────────────────────────

type stubNotificationRepo struct {
	mu    sync.Mutex
	rows  map[uuid.UUID]*model.Notification
	stale []model.Notification
}

func newStubNotificationRepo() *stubNotificationRepo {
	return &stubNotificationRepo{rows: make(map[uuid.UUID]*model.Notification)}
}

func (r *stubNotificationRepo) Create(_ context.Context, _ *gorm.DB, n *model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.CreatedAt = time.Now()
	cp := *n
	r.rows[n.ID] = &cp
	return nil
}

func (r *stubNotificationRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *n
	return &cp, nil
}

func (r *stubNotificationRepo) ListUndelivered(context.Context, uuid.UUID) ([]model.Notification, error) {
	return nil, nil
}

func (r *stubNotificationRepo) ListRecent(context.Context, uuid.UUID, int) ([]model.Notification, error) {
	return nil, nil
}

func (r *stubNotificationRepo) ListStale(_ context.Context, _ time.Time, limit int) ([]model.Notification, error) {
	if len(r.stale) > limit {
		return r.stale[:limit], nil
	}
	return r.stale, nil
}

func (r *stubNotificationRepo) MarkDelivered(_ context.Context, id uuid.UUID, sentAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n, ok := r.rows[id]; ok {
		n.IsDelivered = true
		n.SentAt = &sentAt
	}
	return nil
}

func (r *stubNotificationRepo) byType(t model.NotificationType) []model.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Notification
	for _, n := range r.rows {
		if n.Type == t {
			out = append(out, *n)
		}
	}
	return out
}

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByEmail(context.Context, string) (*model.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) Update(context.Context, *model.User) error { return nil }

func (r *stubUserRepo) ListActiveByRoles(context.Context, []model.Role, []uuid.UUID, string) ([]model.User, error) {
	return nil, nil
}

func (r *stubUserRepo) CountActiveByRole(context.Context, model.Role) (int64, error) { return 0, nil }

type stubInvoiceRepo struct {
	rows    map[uuid.UUID]*model.Invoice
	updates int
	// failUpdate makes the Nth Update call (1-based) fail once.
	failUpdate int
}

func (r *stubInvoiceRepo) Create(_ context.Context, _ *gorm.DB, inv *model.Invoice) error {
	r.rows[inv.ID] = inv
	return nil
}

func (r *stubInvoiceRepo) NextInvoiceNumber(context.Context, *gorm.DB) (int64, error) { return 1, nil }

func (r *stubInvoiceRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Invoice, error) {
	inv, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *inv
	return &cp, nil
}

func (r *stubInvoiceRepo) FindByOrderID(_ context.Context, orderID uuid.UUID) (*model.Invoice, error) {
	for _, inv := range r.rows {
		if inv.OrderID == orderID {
			return inv, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubInvoiceRepo) Update(_ context.Context, inv *model.Invoice) error {
	if r.failUpdate > 0 && r.updates+1 == r.failUpdate {
		r.failUpdate = 0
		return errors.New("connection reset")
	}
	cp := *inv
	r.rows[inv.ID] = &cp
	r.updates++
	return nil
}

func (r *stubInvoiceRepo) DB() *gorm.DB { return nil }

type stubOrderRepo struct {
	orders map[uuid.UUID]*model.Order
}

func (r *stubOrderRepo) Create(context.Context, *gorm.DB, *model.Order) error { return nil }
func (r *stubOrderRepo) NextOrderNumber(context.Context, *gorm.DB) (int64, error) {
	return 1, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (r *stubOrderRepo) UpdateStatus(context.Context, *gorm.DB, uuid.UUID, model.OrderStatus, model.OrderStatus) error {
	return nil
}

func (r *stubOrderRepo) UpdateDeliveryMode(context.Context, *gorm.DB, uuid.UUID, model.DeliveryMode) error {
	return nil
}

func (r *stubOrderRepo) ListByRetailer(context.Context, uuid.UUID) ([]model.Order, error) {
	return nil, nil
}

func (r *stubOrderRepo) ListByDistributor(context.Context, uuid.UUID) ([]model.Order, error) {
	return nil, nil
}

func (r *stubOrderRepo) ListBetween(context.Context, uuid.UUID, uuid.UUID) ([]model.Order, error) {
	return nil, nil
}

func (r *stubOrderRepo) Stats(context.Context, uuid.UUID, bool, time.Time) (*repository.OrderStats, error) {
	return &repository.OrderStats{}, nil
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

// ── Fakes for outbound collaborators ──────────────────────────────────────────

type fakeSender struct {
	enabled bool
	err     error
	sent    []string
}

func (s *fakeSender) Enabled() bool { return s.enabled }

func (s *fakeSender) Send(_ context.Context, to, body string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.sent = append(s.sent, to+"|"+body)
	return "SM" + uuid.NewString()[:8], nil
}

type fakeQueue struct {
	emails        []EmailJobPayload
	notifications []uuid.UUID
	err           error
}

func (q *fakeQueue) EnqueueEmail(_ context.Context, p EmailJobPayload) error {
	if q.err != nil {
		return q.err
	}
	q.emails = append(q.emails, p)
	return nil
}

func (q *fakeQueue) EnqueueNotification(_ context.Context, id uuid.UUID) error {
	if q.err != nil {
		return q.err
	}
	q.notifications = append(q.notifications, id)
	return nil
}

type fakeMailer struct {
	to, filename string
	pdf          []byte
	err          error
}

func (m *fakeMailer) SendInvoice(to, _, _, filename string, pdf []byte) error {
	m.to, m.filename, m.pdf = to, filename, pdf
	return m.err
}
