package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/b-himadri/bakery-backend-api/model"
	"github.com/b-himadri/bakery-backend-api/service"
)

// memStores is an in-memory service.Stores used by the service tests.
// Atomic serializes callers and restores a snapshot when fn fails, matching
// the rollback semantics of the SQL implementation.
type memStores struct {
	mu     sync.Mutex
	nextID uint
	clock  time.Time

	products  map[uint]*model.Product
	carts     map[uint]*model.Cart
	addresses map[uint]*model.Address
	orders    map[uint]*model.Order
	users     map[uint]*model.User
}

func newMemStores() *memStores {
	return &memStores{
		clock:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		products:  map[uint]*model.Product{},
		carts:     map[uint]*model.Cart{},
		addresses: map[uint]*model.Address{},
		orders:    map[uint]*model.Order{},
		users:     map[uint]*model.User{},
	}
}

func (m *memStores) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memStores) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStores) Products() service.ProductStore  { return memProducts{m} }
func (m *memStores) Carts() service.CartStore        { return memCarts{m} }
func (m *memStores) Addresses() service.AddressStore { return memAddresses{m} }
func (m *memStores) Orders() service.OrderStore      { return memOrders{m} }
func (m *memStores) Users() service.UserStore        { return memUsers{m} }

func (m *memStores) Atomic(ctx context.Context, fn func(service.Stores) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.snapshot()
	if err := fn(m); err != nil {
		m.restore(snapshot)
		return err
	}
	return nil
}

type memSnapshot struct {
	products  map[uint]*model.Product
	carts     map[uint]*model.Cart
	addresses map[uint]*model.Address
	orders    map[uint]*model.Order
	users     map[uint]*model.User
}

func (m *memStores) snapshot() memSnapshot {
	s := memSnapshot{
		products:  map[uint]*model.Product{},
		carts:     map[uint]*model.Cart{},
		addresses: map[uint]*model.Address{},
		orders:    map[uint]*model.Order{},
		users:     map[uint]*model.User{},
	}
	for id, p := range m.products {
		s.products[id] = copyProduct(p)
	}
	for id, c := range m.carts {
		s.carts[id] = copyCart(c)
	}
	for id, a := range m.addresses {
		s.addresses[id] = copyAddress(a)
	}
	for id, o := range m.orders {
		s.orders[id] = copyOrder(o)
	}
	for id, u := range m.users {
		cp := *u
		s.users[id] = &cp
	}
	return s
}

func (m *memStores) restore(s memSnapshot) {
	m.products = s.products
	m.carts = s.carts
	m.addresses = s.addresses
	m.orders = s.orders
	m.users = s.users
}

func copyProduct(p *model.Product) *model.Product {
	cp := *p
	return &cp
}

func copyCart(c *model.Cart) *model.Cart {
	cp := *c
	cp.Items = append(model.CartItems{}, c.Items...)
	if c.UserID != nil {
		uid := *c.UserID
		cp.UserID = &uid
	}
	if c.SessionID != nil {
		sid := *c.SessionID
		cp.SessionID = &sid
	}
	return &cp
}

func copyAddress(a *model.Address) *model.Address {
	cp := *a
	return &cp
}

func copyOrder(o *model.Order) *model.Order {
	cp := *o
	cp.Items = append(model.OrderItems{}, o.Items...)
	return &cp
}

// seed helpers

func (m *memStores) seedProduct(p model.Product) *model.Product {
	if p.ID == 0 {
		p.ID = m.id()
	} else if p.ID > m.nextID {
		m.nextID = p.ID
	}
	p.CreatedAt = m.tick()
	m.products[p.ID] = &p
	return copyProduct(&p)
}

func (m *memStores) seedUserCart(userID uint, items ...model.CartItem) *model.Cart {
	cart := &model.Cart{ID: m.id(), UserID: &userID, Items: items}
	m.carts[cart.ID] = cart
	return copyCart(cart)
}

func (m *memStores) seedSessionCart(sessionID string, items ...model.CartItem) *model.Cart {
	cart := &model.Cart{ID: m.id(), SessionID: &sessionID, Items: items}
	m.carts[cart.ID] = cart
	return copyCart(cart)
}

func (m *memStores) seedAddress(a model.Address) *model.Address {
	if a.ID == 0 {
		a.ID = m.id()
	}
	a.CreatedAt = m.tick()
	m.addresses[a.ID] = &a
	return copyAddress(&a)
}

// memProducts

type memProducts struct{ m *memStores }

func (s memProducts) GetByID(ctx context.Context, id uint) (*model.Product, error) {
	p, ok := s.m.products[id]
	if !ok {
		return nil, nil
	}
	return copyProduct(p), nil
}

func (s memProducts) List(ctx context.Context, inStockOnly bool) ([]model.Product, error) {
	var out []model.Product
	for _, p := range s.m.products {
		if inStockOnly && p.Stock <= 0 {
			continue
		}
		out = append(out, *copyProduct(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s memProducts) Create(ctx context.Context, p *model.Product) error {
	p.ID = s.m.id()
	p.CreatedAt = s.m.tick()
	s.m.products[p.ID] = copyProduct(p)
	return nil
}

func (s memProducts) Save(ctx context.Context, p *model.Product) error {
	s.m.products[p.ID] = copyProduct(p)
	return nil
}

func (s memProducts) Delete(ctx context.Context, id uint) (bool, error) {
	if _, ok := s.m.products[id]; !ok {
		return false, nil
	}
	delete(s.m.products, id)
	return true, nil
}

func (s memProducts) ConditionalDecrementStock(ctx context.Context, id uint, qty int) (bool, error) {
	p, ok := s.m.products[id]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	return true, nil
}

// memCarts

type memCarts struct{ m *memStores }

func (s memCarts) GetByUser(ctx context.Context, userID uint) (*model.Cart, error) {
	for _, c := range s.m.carts {
		if c.UserID != nil && *c.UserID == userID {
			return copyCart(c), nil
		}
	}
	return nil, nil
}

func (s memCarts) GetBySession(ctx context.Context, sessionID string) (*model.Cart, error) {
	for _, c := range s.m.carts {
		if c.SessionID != nil && *c.SessionID == sessionID {
			return copyCart(c), nil
		}
	}
	return nil, nil
}

func (s memCarts) Save(ctx context.Context, c *model.Cart) error {
	if c.ID == 0 {
		c.ID = s.m.id()
	}
	s.m.carts[c.ID] = copyCart(c)
	return nil
}

func (s memCarts) DeleteByUser(ctx context.Context, userID uint) error {
	for id, c := range s.m.carts {
		if c.UserID != nil && *c.UserID == userID {
			delete(s.m.carts, id)
		}
	}
	return nil
}

func (s memCarts) DeleteBySession(ctx context.Context, sessionID string) error {
	for id, c := range s.m.carts {
		if c.SessionID != nil && *c.SessionID == sessionID {
			delete(s.m.carts, id)
		}
	}
	return nil
}

// memAddresses

type memAddresses struct{ m *memStores }

func (s memAddresses) GetByID(ctx context.Context, id, userID uint) (*model.Address, error) {
	a, ok := s.m.addresses[id]
	if !ok || a.UserID != userID {
		return nil, nil
	}
	return copyAddress(a), nil
}

func (s memAddresses) ListByUser(ctx context.Context, userID uint) ([]model.Address, error) {
	var out []model.Address
	for _, a := range s.m.addresses {
		if a.UserID == userID {
			out = append(out, *copyAddress(a))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDefault != out[j].IsDefault {
			return out[i].IsDefault
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s memAddresses) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	for _, a := range s.m.addresses {
		if a.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (s memAddresses) Create(ctx context.Context, a *model.Address) error {
	a.ID = s.m.id()
	a.CreatedAt = s.m.tick()
	s.m.addresses[a.ID] = copyAddress(a)
	return nil
}

func (s memAddresses) Save(ctx context.Context, a *model.Address) error {
	s.m.addresses[a.ID] = copyAddress(a)
	return nil
}

func (s memAddresses) Delete(ctx context.Context, id, userID uint) error {
	if a, ok := s.m.addresses[id]; ok && a.UserID == userID {
		delete(s.m.addresses, id)
	}
	return nil
}

func (s memAddresses) ClearDefaults(ctx context.Context, userID, exceptID uint) error {
	for _, a := range s.m.addresses {
		if a.UserID == userID && a.ID != exceptID {
			a.IsDefault = false
		}
	}
	return nil
}

func (s memAddresses) EarliestByUser(ctx context.Context, userID uint) (*model.Address, error) {
	var earliest *model.Address
	for _, a := range s.m.addresses {
		if a.UserID != userID {
			continue
		}
		if earliest == nil || a.CreatedAt.Before(earliest.CreatedAt) {
			earliest = a
		}
	}
	if earliest == nil {
		return nil, nil
	}
	return copyAddress(earliest), nil
}

// memOrders

type memOrders struct{ m *memStores }

func (s memOrders) Insert(ctx context.Context, o *model.Order) error {
	o.ID = s.m.id()
	o.CreatedAt = s.m.tick()
	s.m.orders[o.ID] = copyOrder(o)
	return nil
}

func (s memOrders) GetByID(ctx context.Context, id uint) (*model.Order, error) {
	o, ok := s.m.orders[id]
	if !ok {
		return nil, nil
	}
	return copyOrder(o), nil
}

func (s memOrders) ListByUser(ctx context.Context, userID uint) ([]model.Order, error) {
	var out []model.Order
	for _, o := range s.m.orders {
		if o.UserID == userID {
			out = append(out, *copyOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s memOrders) ListAll(ctx context.Context) ([]model.Order, error) {
	var out []model.Order
	for _, o := range s.m.orders {
		out = append(out, *copyOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s memOrders) UpdateStatus(ctx context.Context, id uint, status string) error {
	if o, ok := s.m.orders[id]; ok {
		o.Status = status
	}
	return nil
}

// memUsers

type memUsers struct{ m *memStores }

func (s memUsers) GetByID(ctx context.Context, id uint) (*model.User, error) {
	u, ok := s.m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s memUsers) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range s.m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s memUsers) Create(ctx context.Context, u *model.User) error {
	u.ID = s.m.id()
	u.CreatedAt = s.m.tick()
	cp := *u
	s.m.users[u.ID] = &cp
	return nil
}

func (s memUsers) Save(ctx context.Context, u *model.User) error {
	cp := *u
	s.m.users[u.ID] = &cp
	return nil
}

// recordingPublisher captures events for assertions.
type recordingPublisher struct {
	mu            sync.Mutex
	created       []uint
	statusUpdates [][2]string
	checkedOut    []uint
}

func (r *recordingPublisher) OrderCreated(o *model.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, o.ID)
}

func (r *recordingPublisher) OrderStatusUpdated(orderID uint, previous, next string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statusUpdates = append(r.statusUpdates, [2]string{previous, next})
}

func (r *recordingPublisher) CartCheckedOut(userID, orderID uint, total float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkedOut = append(r.checkedOut, orderID)
}
