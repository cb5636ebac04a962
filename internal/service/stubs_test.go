package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"auromart/internal/infra"
	"auromart/internal/model"
	"auromart/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── In-memory repository stubs ────────────────────────────────────────────────
// DB() returns nil on every stub so runTx calls straight through.

type stubUserRepo struct{ users map[uuid.UUID]*model.User }

func newStubUserRepo(users ...*model.User) *stubUserRepo {
	r := &stubUserRepo{users: map[uuid.UUID]*model.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return gorm.ErrDuplicatedKey
		}
	}
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

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) ListActiveByRoles(_ context.Context, roles []model.Role, exclude []uuid.UUID, search string) ([]model.User, error) {
	skip := map[uuid.UUID]bool{}
	for _, id := range exclude {
		skip[id] = true
	}
	var out []model.User
	for _, u := range r.users {
		if !u.IsActive || skip[u.ID] || !matchesSearch(u, search) {
			continue
		}
		for _, role := range roles {
			if u.Role == role {
				out = append(out, *u)
			}
		}
	}
	return out, nil
}

func matchesSearch(u *model.User, search string) bool {
	if search == "" {
		return true
	}
	term := strings.ToLower(search)
	fields := []string{u.Email, u.FirstName, u.LastName}
	if u.BusinessName != nil {
		fields = append(fields, *u.BusinessName)
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func (r *stubUserRepo) CountActiveByRole(_ context.Context, role model.Role) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.IsActive && u.Role == role {
			n++
		}
	}
	return n, nil
}

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo(products ...*model.Product) *stubProductRepo {
	r := &stubProductRepo{products: map[uuid.UUID]*model.Product{}}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	for _, existing := range r.products {
		if existing.SKU == p.SKU {
			return gorm.ErrDuplicatedKey
		}
	}
	p.ID = uuid.New()
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) Search(_ context.Context, _ string, _ *uuid.UUID) ([]model.Product, error) {
	return nil, nil
}

func (r *stubProductRepo) CountByManufacturer(_ context.Context, manufacturerID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.products {
		if p.ManufacturerID == manufacturerID {
			n++
		}
	}
	return n, nil
}

type stubInventoryRepo struct {
	rows map[[2]uuid.UUID]*model.Inventory
}

func newStubInventoryRepo(rows ...*model.Inventory) *stubInventoryRepo {
	r := &stubInventoryRepo{rows: map[[2]uuid.UUID]*model.Inventory{}}
	for _, inv := range rows {
		r.rows[[2]uuid.UUID{inv.DistributorID, inv.ProductID}] = inv
	}
	return r
}

func (r *stubInventoryRepo) Upsert(_ context.Context, inv *model.Inventory) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	r.rows[[2]uuid.UUID{inv.DistributorID, inv.ProductID}] = inv
	return nil
}

func (r *stubInventoryRepo) ListByDistributor(_ context.Context, distributorID uuid.UUID) ([]model.Inventory, error) {
	var out []model.Inventory
	for _, inv := range r.rows {
		if inv.DistributorID == distributorID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *stubInventoryRepo) ListAvailable(_ context.Context, _ *uuid.UUID) ([]model.Inventory, error) {
	var out []model.Inventory
	for _, inv := range r.rows {
		if inv.IsAvailable && inv.Quantity > 0 {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *stubInventoryRepo) Find(_ context.Context, distributorID, productID uuid.UUID) (*model.Inventory, error) {
	inv, ok := r.rows[[2]uuid.UUID{distributorID, productID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return inv, nil
}

type stubOrderRepo struct {
	orders map[uuid.UUID]*model.Order
	seq    int64
	stats  *repository.OrderStats
	since  time.Time
	// beforeUpdate runs at the start of UpdateStatus to simulate a
	// concurrent writer.
	beforeUpdate func()
}

func newStubOrderRepo(orders ...*model.Order) *stubOrderRepo {
	r := &stubOrderRepo{orders: map[uuid.UUID]*model.Order{}}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *stubOrderRepo) Create(_ context.Context, _ *gorm.DB, o *model.Order) error {
	o.ID = uuid.New()
	for i := range o.Items {
		o.Items[i].ID = uuid.New()
		o.Items[i].OrderID = o.ID
	}
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) NextOrderNumber(_ context.Context, _ *gorm.DB) (int64, error) {
	r.seq++
	return r.seq, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, _ *gorm.DB, id uuid.UUID, from, to model.OrderStatus) error {
	if r.beforeUpdate != nil {
		r.beforeUpdate()
	}
	if r.orders[id].Status != from {
		return repository.ErrStaleStatus
	}
	r.orders[id].Status = to
	return nil
}

func (r *stubOrderRepo) UpdateDeliveryMode(_ context.Context, _ *gorm.DB, id uuid.UUID, mode model.DeliveryMode) error {
	r.orders[id].DeliveryMode = mode
	return nil
}

func (r *stubOrderRepo) list(match func(*model.Order) bool) []model.Order {
	var out []model.Order
	for _, o := range r.orders {
		if match(o) {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *stubOrderRepo) ListByRetailer(_ context.Context, id uuid.UUID) ([]model.Order, error) {
	return r.list(func(o *model.Order) bool { return o.RetailerID == id }), nil
}

func (r *stubOrderRepo) ListByDistributor(_ context.Context, id uuid.UUID) ([]model.Order, error) {
	return r.list(func(o *model.Order) bool { return o.DistributorID == id }), nil
}

func (r *stubOrderRepo) ListBetween(_ context.Context, retailerID, distributorID uuid.UUID) ([]model.Order, error) {
	return r.list(func(o *model.Order) bool { return o.RetailerID == retailerID && o.DistributorID == distributorID }), nil
}

func (r *stubOrderRepo) Stats(_ context.Context, _ uuid.UUID, _ bool, since time.Time) (*repository.OrderStats, error) {
	r.since = since
	if r.stats == nil {
		return &repository.OrderStats{}, nil
	}
	return r.stats, nil
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

type stubInvoiceRepo struct {
	invoices map[uuid.UUID]*model.Invoice
	seq      int64
}

func newStubInvoiceRepo(invoices ...*model.Invoice) *stubInvoiceRepo {
	r := &stubInvoiceRepo{invoices: map[uuid.UUID]*model.Invoice{}}
	for _, inv := range invoices {
		r.invoices[inv.ID] = inv
	}
	return r
}

func (r *stubInvoiceRepo) Create(_ context.Context, _ *gorm.DB, inv *model.Invoice) error {
	inv.ID = uuid.New()
	r.invoices[inv.ID] = inv
	return nil
}

func (r *stubInvoiceRepo) NextInvoiceNumber(_ context.Context, _ *gorm.DB) (int64, error) {
	r.seq++
	return r.seq, nil
}

func (r *stubInvoiceRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return inv, nil
}

func (r *stubInvoiceRepo) FindByOrderID(_ context.Context, orderID uuid.UUID) (*model.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.OrderID == orderID {
			return inv, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubInvoiceRepo) Update(_ context.Context, inv *model.Invoice) error {
	r.invoices[inv.ID] = inv
	return nil
}

func (r *stubInvoiceRepo) DB() *gorm.DB { return nil }

type stubPartnershipRepo struct {
	rows         map[uuid.UUID]*model.Partnership
	beforeUpdate func()
	// partnerIDs, when set, is returned as is by PartnerIDsOf.
	partnerIDs []uuid.UUID
}

func newStubPartnershipRepo(rows ...*model.Partnership) *stubPartnershipRepo {
	r := &stubPartnershipRepo{rows: map[uuid.UUID]*model.Partnership{}}
	for _, p := range rows {
		r.rows[p.ID] = p
	}
	return r
}

func (r *stubPartnershipRepo) Create(_ context.Context, _ *gorm.DB, p *model.Partnership) error {
	p.ID = uuid.New()
	r.rows[p.ID] = p
	return nil
}

func (r *stubPartnershipRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Partnership, error) {
	p, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubPartnershipRepo) UpdateStatus(_ context.Context, _ *gorm.DB, id uuid.UUID, from, to model.PartnershipStatus) error {
	if r.beforeUpdate != nil {
		r.beforeUpdate()
	}
	if r.rows[id].Status != from {
		return repository.ErrStaleStatus
	}
	r.rows[id].Status = to
	return nil
}

func (r *stubPartnershipRepo) ListApprovedByRequester(_ context.Context, requesterID uuid.UUID) ([]model.Partnership, error) {
	var out []model.Partnership
	for _, p := range r.rows {
		if p.RequesterID == requesterID && p.Status == model.PartnershipApproved {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPartnershipRepo) ListByPartner(_ context.Context, partnerID uuid.UUID) ([]model.Partnership, error) {
	var out []model.Partnership
	for _, p := range r.rows {
		if p.PartnerID == partnerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPartnershipRepo) PartnerIDsOf(_ context.Context, requesterID uuid.UUID) ([]uuid.UUID, error) {
	if r.partnerIDs != nil {
		return r.partnerIDs, nil
	}
	var out []uuid.UUID
	for _, p := range r.rows {
		if p.RequesterID == requesterID {
			out = append(out, p.PartnerID)
		}
	}
	return out, nil
}

func (r *stubPartnershipRepo) DB() *gorm.DB { return nil }

type stubNotificationRepo struct {
	rows []*model.Notification
}

func (r *stubNotificationRepo) Create(_ context.Context, _ *gorm.DB, n *model.Notification) error {
	n.ID = uuid.New()
	r.rows = append(r.rows, n)
	return nil
}

func (r *stubNotificationRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Notification, error) {
	for _, n := range r.rows {
		if n.ID == id {
			cp := *n
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubNotificationRepo) ListUndelivered(_ context.Context, userID uuid.UUID) ([]model.Notification, error) {
	var out []model.Notification
	for _, n := range r.rows {
		if n.UserID == userID && !n.IsDelivered {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *stubNotificationRepo) ListRecent(_ context.Context, userID uuid.UUID, limit int) ([]model.Notification, error) {
	var out []model.Notification
	for i := len(r.rows) - 1; i >= 0 && len(out) < limit; i-- {
		if r.rows[i].UserID == userID {
			out = append(out, *r.rows[i])
		}
	}
	return out, nil
}

func (r *stubNotificationRepo) ListStale(_ context.Context, _ time.Time, _ int) ([]model.Notification, error) {
	return nil, nil
}

func (r *stubNotificationRepo) MarkDelivered(_ context.Context, id uuid.UUID, sentAt time.Time) error {
	for _, n := range r.rows {
		if n.ID == id {
			n.IsDelivered = true
			n.SentAt = &sentAt
		}
	}
	return nil
}

// last returns the most recently appended notification.
func (r *stubNotificationRepo) last() *model.Notification {
	if len(r.rows) == 0 {
		return nil
	}
	return r.rows[len(r.rows)-1]
}

type stubFavoriteRepo struct {
	rows []*model.Favorite
}

func (r *stubFavoriteRepo) Create(_ context.Context, f *model.Favorite) error {
	f.ID = uuid.New()
	r.rows = append(r.rows, f)
	return nil
}

func (r *stubFavoriteRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Favorite, error) {
	var out []model.Favorite
	for _, f := range r.rows {
		if f.UserID == userID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *stubFavoriteRepo) Delete(_ context.Context, userID, favoriteUserID uuid.UUID) (int64, error) {
	for i, f := range r.rows {
		if f.UserID == userID && f.FavoriteUserID == favoriteUserID {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *stubFavoriteRepo) Exists(_ context.Context, userID, favoriteUserID uuid.UUID) (bool, error) {
	for _, f := range r.rows {
		if f.UserID == userID && f.FavoriteUserID == favoriteUserID {
			return true, nil
		}
	}
	return false, nil
}

type stubSearchRepo struct {
	rows     []*model.SearchHistory
	gotLimit int
}

func (r *stubSearchRepo) Create(_ context.Context, h *model.SearchHistory) error {
	h.ID = uuid.New()
	r.rows = append(r.rows, h)
	return nil
}

func (r *stubSearchRepo) ListRecent(_ context.Context, _ uuid.UUID, limit int) ([]model.SearchHistory, error) {
	r.gotLimit = limit
	return nil, nil
}

// ── Collaborators ─────────────────────────────────────────────────────────────

type fakeDispatcher struct {
	mu            sync.Mutex
	notifications []uuid.UUID
	invoices      []uuid.UUID
}

func (d *fakeDispatcher) EnqueueNotification(_ context.Context, id uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notifications = append(d.notifications, id)
	return nil
}

func (d *fakeDispatcher) EnqueueInvoice(_ context.Context, id uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.invoices = append(d.invoices, id)
	return nil
}

type fakeStore struct {
	resolved map[string]*infra.StoredPDF
}

func (s *fakeStore) Save(_ context.Context, name string, _ []byte) (string, error) {
	return "/invoices/" + name, nil
}

func (s *fakeStore) Resolve(_ context.Context, location string) (*infra.StoredPDF, error) {
	pdf, ok := s.resolved[location]
	if !ok {
		return nil, infra.ErrInvoiceNotStored
	}
	return pdf, nil
}

// ── Fixtures ──────────────────────────────────────────────────────────────────

func newUser(role model.Role, business string) *model.User {
	u := &model.User{ID: uuid.New(), Email: uuid.NewString() + "@example.com", FirstName: "Test", Role: role, IsActive: true}
	if business != "" {
		u.BusinessName = &business
	}
	return u
}

var fixedNow = time.Date(2026, time.March, 14, 10, 30, 0, 0, time.UTC)
