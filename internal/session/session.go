// Package session keeps the state of one storefront page visit on the server.
package session

import (
	"sync"
	"time"

	"storefront/internal/basket"
	"storefront/internal/domain"
)

var _ domain.LoadTarget = (*Session)(nil)

// Session is one visitor's page: fetched catalog and orders, the basket and
// any notices waiting to be shown.
type Session struct {
	ID     string
	Basket *basket.Store

	mu        sync.Mutex
	mounted   bool
	loading   bool
	products  []domain.Product
	orders    []domain.Order
	pageError string
	notices   []domain.Notice
	customer  string
	lastSeen  time.Time
}

// View is a consistent copy of everything the page renders.
type View struct {
	Loading      bool
	Error        string
	Products     []domain.Product
	Orders       []domain.Order
	Basket       []domain.BasketLine
	Notices      []domain.Notice
	CustomerName string
}

func newSession(id, customer string, now time.Time) *Session {
	return &Session{
		ID:       id,
		Basket:   basket.NewStore(),
		loading:  true,
		customer: customer,
		lastSeen: now,
	}
}

// Mount reports true exactly once, for the caller that must start the page load.
func (s *Session) Mount() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mounted {
		return false
	}
	s.mounted = true
	return true
}

func (s *Session) SetLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Session) SetProducts(products []domain.Product) {
	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
}

func (s *Session) SetOrders(orders []domain.Order) {
	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()
}

func (s *Session) SetPageError(message string) {
	s.mu.Lock()
	s.pageError = message
	s.mu.Unlock()
}

func (s *Session) Notify(notice domain.Notice) {
	s.mu.Lock()
	s.notices = append(s.notices, notice)
	s.mu.Unlock()
}

// SetCustomerName remembers the name last typed into the order form.
func (s *Session) SetCustomerName(name string) {
	s.mu.Lock()
	s.customer = name
	s.mu.Unlock()
}

// Product looks id up in the loaded catalog.
func (s *Session) Product(id int) (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Render returns the current view and drains pending notices, unless the page
// is still loading.
func (s *Session) Render() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Loading:      s.loading,
		Error:        s.pageError,
		Products:     append([]domain.Product(nil), s.products...),
		Orders:       append([]domain.Order(nil), s.orders...),
		Basket:       s.Basket.Snapshot(),
		CustomerName: s.customer,
	}
	if !s.loading {
		v.Notices = s.notices
		s.notices = nil
	}
	return v
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
