package test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/printshop/internal/domain/errors"
	"github.com/polkiloo/printshop/internal/domain/model"
	"github.com/polkiloo/printshop/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users   map[string]*model.User
	ByID    map[uuid.UUID]*model.User
	Created []model.User
	Err     error
}

// NewUserRepositoryStub constructs stub repository seeded with users.
func NewUserRepositoryStub(users ...model.User) *UserRepositoryStub {
	s := &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[uuid.UUID]*model.User),
	}
	for i := range users {
		u := users[i]
		s.Users[u.Email] = &u
		s.ByID[u.ID] = &u
	}
	return s
}

// Create registers user unless the email is taken or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.Users[user.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	s.Users[user.Email] = &user
	s.ByID[user.ID] = &user
	s.Created = append(s.Created, user)
	return &user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// CompanyRepositoryStub serves a fixed set of tenants.
type CompanyRepositoryStub struct {
	Companies []model.Company
	Err       error
}

// GetByID returns the matching company.
func (s CompanyRepositoryStub) GetByID(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.Companies {
		if s.Companies[i].ID == id {
			c := s.Companies[i]
			return &c, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List returns all companies.
func (s CompanyRepositoryStub) List(ctx context.Context) ([]model.Company, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Companies, nil
}

// OrderUpdateCall records one Update invocation.
type OrderUpdateCall struct {
	CompanyID uuid.UUID
	OrderID   uuid.UUID
	Changes   repository.OrderChanges
}

// OrderRepositoryStub keeps orders in insertion order and applies updates like the SQL store.
type OrderRepositoryStub struct {
	mu      sync.Mutex
	orders  map[uuid.UUID]model.Order
	ids     []uuid.UUID
	Updates []OrderUpdateCall
	Gets    int

	CreateErr error
	GetErr    error
	ListErr   error
	UpdateErr error
}

// NewOrderRepositoryStub seeds the stub with orders.
func NewOrderRepositoryStub(orders ...model.Order) *OrderRepositoryStub {
	s := &OrderRepositoryStub{orders: make(map[uuid.UUID]model.Order)}
	for _, o := range orders {
		s.put(o)
	}
	return s
}

func (s *OrderRepositoryStub) put(o model.Order) {
	if _, ok := s.orders[o.ID]; !ok {
		s.ids = append(s.ids, o.ID)
	}
	s.orders[o.ID] = o
}

// Stored returns the current state of an order.
func (s *OrderRepositoryStub) Stored(id uuid.UUID) (model.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	return o, ok
}

// Create stores order and assigns identifiers.
func (s *OrderRepositoryStub) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	order.ID = uuid.New()
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	s.put(order)
	return &order, nil
}

// Get returns the order when it belongs to companyID.
func (s *OrderRepositoryStub) Get(ctx context.Context, companyID, orderID uuid.UUID) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Gets++
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	o, ok := s.orders[orderID]
	if !ok || o.CompanyID != companyID {
		return nil, domainErrors.ErrNotFound
	}
	return &o, nil
}

// List returns tenant orders, newest first, honoring the filter.
func (s *OrderRepositoryStub) List(ctx context.Context, companyID uuid.UUID, filter model.OrderFilter) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	var result []model.Order
	for i := len(s.ids) - 1; i >= 0; i-- {
		o := s.orders[s.ids[i]]
		if o.CompanyID != companyID || (filter.Status != "" && o.Status != filter.Status) {
			continue
		}
		result = append(result, o)
		if filter.Limit > 0 && uint64(len(result)) == filter.Limit {
			break
		}
	}
	return result, nil
}

// Update records the call and applies changes in one step.
func (s *OrderRepositoryStub) Update(ctx context.Context, companyID, orderID uuid.UUID, changes repository.OrderChanges) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Updates = append(s.Updates, OrderUpdateCall{CompanyID: companyID, OrderID: orderID, Changes: changes})
	if s.UpdateErr != nil {
		return nil, s.UpdateErr
	}
	if changes.Empty() {
		return nil, domainErrors.ErrInvalidInput
	}
	o, ok := s.orders[orderID]
	if !ok || o.CompanyID != companyID {
		return nil, domainErrors.ErrNotFound
	}
	if changes.Status != nil {
		o.Status = *changes.Status
	}
	if changes.PaymentMethod != nil {
		o.PaymentMethod = *changes.PaymentMethod
	}
	if changes.PaymentStatus != nil {
		o.PaymentStatus = *changes.PaymentStatus
	}
	switch {
	case changes.PaidInFull:
		o.PaidAmount = o.TotalPrice
	case changes.PaidAmount != nil:
		o.PaidAmount = *changes.PaidAmount
	}
	o.UpdatedAt = time.Now()
	s.orders[orderID] = o
	return &o, nil
}

// StatusRepositoryStub delegates to function fields.
type StatusRepositoryStub struct {
	ListFn   func(context.Context, uuid.UUID) ([]model.OrderStatus, error)
	CreateFn func(context.Context, model.OrderStatus) (*model.OrderStatus, error)
	UpdateFn func(context.Context, model.OrderStatus) (*model.OrderStatus, error)
}

// List returns the configured registry or an empty one.
func (s StatusRepositoryStub) List(ctx context.Context, companyID uuid.UUID) ([]model.OrderStatus, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, companyID)
	}
	return nil, nil
}

// Create echoes the status with a fresh identifier.
func (s StatusRepositoryStub) Create(ctx context.Context, status model.OrderStatus) (*model.OrderStatus, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, status)
	}
	status.ID = uuid.New()
	return &status, nil
}

// Update echoes the status.
func (s StatusRepositoryStub) Update(ctx context.Context, status model.OrderStatus) (*model.OrderStatus, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, status)
	}
	return &status, nil
}

// StaticStatuses returns a ListFn serving statuses for every tenant. Entry
// identifiers are stable per tenant and name.
func StaticStatuses(names ...string) func(context.Context, uuid.UUID) ([]model.OrderStatus, error) {
	return func(_ context.Context, companyID uuid.UUID) ([]model.OrderStatus, error) {
		statuses := make([]model.OrderStatus, len(names))
		for i, name := range names {
			statuses[i] = model.OrderStatus{ID: uuid.NewSHA1(companyID, []byte(name)), CompanyID: companyID, Name: name, SortOrder: (i + 1) * 10, Color: "#3366ff"}
		}
		return statuses, nil
	}
}

// PricingRepositoryStub keeps tiers in memory.
type PricingRepositoryStub struct {
	Tiers   []model.PricingTier
	Created []model.PricingTier
	Err     error
}

// ListTiers returns tenant tiers.
func (s *PricingRepositoryStub) ListTiers(ctx context.Context, companyID uuid.UUID) ([]model.PricingTier, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.PricingTier
	for _, t := range s.Tiers {
		if t.CompanyID == companyID {
			result = append(result, t)
		}
	}
	return result, nil
}

// GetTier returns a tenant tier.
func (s *PricingRepositoryStub) GetTier(ctx context.Context, companyID, tierID uuid.UUID) (*model.PricingTier, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, t := range s.Tiers {
		if t.CompanyID == companyID && t.ID == tierID {
			tier := t
			return &tier, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// DefaultTier returns the tenant default tier.
func (s *PricingRepositoryStub) DefaultTier(ctx context.Context, companyID uuid.UUID) (*model.PricingTier, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, t := range s.Tiers {
		if t.CompanyID == companyID && t.IsDefault {
			tier := t
			return &tier, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// CreateTier stores tier, clearing a previous default.
func (s *PricingRepositoryStub) CreateTier(ctx context.Context, tier model.PricingTier) (*model.PricingTier, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if tier.IsDefault {
		for i := range s.Tiers {
			if s.Tiers[i].CompanyID == tier.CompanyID {
				s.Tiers[i].IsDefault = false
			}
		}
	}
	tier.ID = uuid.New()
	s.Tiers = append(s.Tiers, tier)
	s.Created = append(s.Created, tier)
	return &tier, nil
}

// CurrencyRepositoryStub serves currencies and rates from memory.
type CurrencyRepositoryStub struct {
	Currencies []model.Currency
	Rates      []model.ExchangeRate
	Err        error
}

// ListCurrencies returns all currencies.
func (s *CurrencyRepositoryStub) ListCurrencies(ctx context.Context) ([]model.Currency, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Currencies, nil
}

// GetCurrency returns a currency by code.
func (s *CurrencyRepositoryStub) GetCurrency(ctx context.Context, code string) (*model.Currency, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, c := range s.Currencies {
		if c.Code == code {
			currency := c
			return &currency, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListRates returns tenant rates, optionally for one currency.
func (s *CurrencyRepositoryStub) ListRates(ctx context.Context, companyID uuid.UUID, currency string) ([]model.ExchangeRate, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.ExchangeRate
	for _, r := range s.Rates {
		if r.CompanyID == companyID && (currency == "" || r.CurrencyCode == currency) {
			result = append(result, r)
		}
	}
	return result, nil
}

// CreateRate stores rate.
func (s *CurrencyRepositoryStub) CreateRate(ctx context.Context, rate model.ExchangeRate) (*model.ExchangeRate, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	rate.ID = uuid.New()
	s.Rates = append(s.Rates, rate)
	return &rate, nil
}

// AttachmentRepositoryStub keeps attachment rows in memory.
type AttachmentRepositoryStub struct {
	Attachments []model.Attachment
	Err         error
}

// Create stores attachment metadata.
func (s *AttachmentRepositoryStub) Create(ctx context.Context, a model.Attachment) (*model.Attachment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	s.Attachments = append(s.Attachments, a)
	return &a, nil
}

// ListByOrder returns the attachments of an order.
func (s *AttachmentRepositoryStub) ListByOrder(ctx context.Context, companyID, orderID uuid.UUID) ([]model.Attachment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Attachment
	for _, a := range s.Attachments {
		if a.CompanyID == companyID && a.OrderID == orderID {
			result = append(result, a)
		}
	}
	return result, nil
}

var (
	_ repository.UserRepository       = (*UserRepositoryStub)(nil)
	_ repository.CompanyRepository    = CompanyRepositoryStub{}
	_ repository.OrderRepository      = (*OrderRepositoryStub)(nil)
	_ repository.StatusRepository     = StatusRepositoryStub{}
	_ repository.PricingRepository    = (*PricingRepositoryStub)(nil)
	_ repository.CurrencyRepository   = (*CurrencyRepositoryStub)(nil)
	_ repository.AttachmentRepository = (*AttachmentRepositoryStub)(nil)
)
