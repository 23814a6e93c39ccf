package application

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/weihanng/techtrove/internal/domain/entity"
	repo "github.com/weihanng/techtrove/internal/domain/repository"
)

// In-memory repository fakes backing the service tests. They mirror
// the storage semantics the Postgres implementations rely on: the
// (user, product) cart key is unique, seller scoping matches zero
// rows, and order creation applies its three steps all-or-nothing.

type memProducts struct {
	seq   int
	items map[string]*entity.Product
	order []string
}

func newMemProducts() *memProducts {
	return &memProducts{items: map[string]*entity.Product{}}
}

func (m *memProducts) Create(p *entity.Product) error {
	m.seq++
	p.ID = fmt.Sprintf("prod-%d", m.seq)
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	m.items[p.ID] = &cp
	m.order = append(m.order, p.ID)
	return nil
}

func (m *memProducts) GetByID(id string) (*entity.Product, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memProducts) Update(p *entity.Product) error {
	cur, ok := m.items[p.ID]
	if !ok || cur.SellerID != p.SellerID {
		return repo.ErrNotFound
	}
	cp := *p
	cp.Rating = cur.Rating
	cp.CreatedAt = cur.CreatedAt
	cp.UpdatedAt = time.Now()
	m.items[p.ID] = &cp
	return nil
}

func (m *memProducts) Delete(id, sellerID string) error {
	if cur, ok := m.items[id]; ok && cur.SellerID == sellerID {
		delete(m.items, id)
		for i, pid := range m.order {
			if pid == id {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
	}
	return nil
}

func (m *memProducts) all() []entity.Product {
	out := make([]entity.Product, 0, len(m.items))
	for _, id := range m.order {
		out = append(out, *m.items[id])
	}
	return out
}

func slicePage(products []entity.Product, offset, limit int) []entity.Product {
	if offset >= len(products) {
		return []entity.Product{}
	}
	end := offset + limit
	if end > len(products) {
		end = len(products)
	}
	return products[offset:end]
}

func (m *memProducts) List(offset, limit int) ([]entity.Product, error) {
	return slicePage(m.all(), offset, limit), nil
}

func (m *memProducts) Count() (int, error) { return len(m.items), nil }

func (m *memProducts) ListBySeller(sellerID string, offset, limit int) ([]entity.Product, error) {
	mine := []entity.Product{}
	for _, p := range m.all() {
		if p.SellerID == sellerID {
			mine = append(mine, p)
		}
	}
	return slicePage(mine, offset, limit), nil
}

func (m *memProducts) CountBySeller(sellerID string) (int, error) {
	n := 0
	for _, p := range m.items {
		if p.SellerID == sellerID {
			n++
		}
	}
	return n, nil
}

func (m *memProducts) matches(p *entity.Product, term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Title), term) ||
		strings.Contains(strings.ToLower(p.Category), term)
}

func (m *memProducts) Search(term string, offset, limit int) ([]entity.Product, error) {
	hits := []entity.Product{}
	for _, p := range m.all() {
		if m.matches(&p, term) {
			hits = append(hits, p)
		}
	}
	return slicePage(hits, offset, limit), nil
}

func (m *memProducts) CountSearch(term string) (int, error) {
	n := 0
	for _, p := range m.items {
		if m.matches(p, term) {
			n++
		}
	}
	return n, nil
}

func (m *memProducts) TopRated(limit int) ([]entity.Product, error) {
	all := m.all()
	sort.SliceStable(all, func(i, j int) bool { return all[i].Rating > all[j].Rating })
	return slicePage(all, 0, limit), nil
}

func (m *memProducts) UpdateRating(id string, rating float64) error {
	p, ok := m.items[id]
	if !ok {
		return repo.ErrNotFound
	}
	p.Rating = rating
	return nil
}

var _ repo.ProductRepository = (*memProducts)(nil)

type memCarts struct {
	products *memProducts
	items    map[string]map[string]*entity.CartItem // userID -> productID -> line
}

func newMemCarts(products *memProducts) *memCarts {
	return &memCarts{products: products, items: map[string]map[string]*entity.CartItem{}}
}

func (m *memCarts) user(userID string) map[string]*entity.CartItem {
	if m.items[userID] == nil {
		m.items[userID] = map[string]*entity.CartItem{}
	}
	return m.items[userID]
}

func (m *memCarts) Lines(userID string) ([]entity.CartLine, error) {
	lines := []entity.CartLine{}
	for pid, it := range m.user(userID) {
		p, ok := m.products.items[pid]
		if !ok {
			continue
		}
		lines = append(lines, entity.CartLine{Product: *p, Quantity: it.Quantity, AddedAt: it.AddedAt})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].AddedAt.Before(lines[j].AddedAt) })
	return lines, nil
}

func (m *memCarts) Get(userID, productID string) (*entity.CartItem, error) {
	it, ok := m.user(userID)[productID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (m *memCarts) Upsert(userID, productID string) error {
	u := m.user(userID)
	if it, ok := u[productID]; ok {
		it.Quantity++
		return nil
	}
	u[productID] = &entity.CartItem{
		UserID: userID, ProductID: productID, Quantity: 1, AddedAt: time.Now(),
	}
	return nil
}

func (m *memCarts) SetQuantity(userID, productID string, quantity int) error {
	it, ok := m.user(userID)[productID]
	if !ok {
		return repo.ErrNotFound
	}
	it.Quantity = quantity
	return nil
}

func (m *memCarts) Remove(userID, productID string) error {
	delete(m.user(userID), productID)
	return nil
}

func (m *memCarts) Clear(userID string) error {
	delete(m.items, userID)
	return nil
}

func (m *memCarts) Count(userID string) (int, error) {
	n := 0
	for _, it := range m.user(userID) {
		n += it.Quantity
	}
	return n, nil
}

var _ repo.CartRepository = (*memCarts)(nil)

type memOrders struct {
	seq      int
	products *memProducts
	carts    *memCarts
	orders   map[string]*entity.Order
	byUser   map[string][]string
	failNext bool
}

func newMemOrders(products *memProducts, carts *memCarts) *memOrders {
	return &memOrders{
		products: products,
		carts:    carts,
		orders:   map[string]*entity.Order{},
		byUser:   map[string][]string{},
	}
}

// Create mimics the single-transaction contract: on failure nothing is
// written, no stock moves, and the cart keeps its lines.
func (m *memOrders) Create(o *entity.Order) error {
	if m.failNext {
		m.failNext = false
		return fmt.Errorf("tx aborted")
	}
	m.seq++
	o.ID = fmt.Sprintf("order-%d", m.seq)
	o.CreatedAt = time.Now()
	for i := range o.Items {
		it := &o.Items[i]
		it.ID = fmt.Sprintf("%s-item-%d", o.ID, i)
		it.OrderID = o.ID
		if p, ok := m.products.items[it.ProductID]; ok {
			p.Quantity -= it.Quantity
		}
	}
	cp := *o
	cp.Items = append([]entity.OrderItem(nil), o.Items...)
	m.orders[o.ID] = &cp
	m.byUser[o.UserID] = append(m.byUser[o.UserID], o.ID)
	_ = m.carts.Clear(o.UserID)
	return nil
}

func (m *memOrders) GetByID(id string) (*entity.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *o
	cp.Items = append([]entity.OrderItem(nil), o.Items...)
	return &cp, nil
}

func (m *memOrders) ListByUser(userID string) ([]entity.Order, error) {
	ids := m.byUser[userID]
	out := make([]entity.Order, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		o, _ := m.GetByID(ids[i])
		out = append(out, *o)
	}
	return out, nil
}

func (m *memOrders) MarkItemReviewed(orderID, productID string) error {
	o, ok := m.orders[orderID]
	if !ok {
		return repo.ErrNotFound
	}
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			o.Items[i].Reviewed = true
			return nil
		}
	}
	return repo.ErrNotFound
}

var _ repo.OrderRepository = (*memOrders)(nil)

type memReviews struct {
	seq   int
	items []entity.Review
}

func (m *memReviews) Create(r *entity.Review) error {
	m.seq++
	r.ID = fmt.Sprintf("rev-%d", m.seq)
	r.CreatedAt = time.Now()
	m.items = append(m.items, *r)
	return nil
}

func (m *memReviews) ListByProduct(productID string) ([]entity.Review, error) {
	out := []entity.Review{}
	for i := len(m.items) - 1; i >= 0; i-- {
		if m.items[i].ProductID == productID {
			out = append(out, m.items[i])
		}
	}
	return out, nil
}

func (m *memReviews) AverageRating(productID string) (float64, error) {
	sum, n := 0, 0
	for _, rv := range m.items {
		if rv.ProductID == productID {
			sum += rv.Rating
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

var _ repo.ReviewRepository = (*memReviews)(nil)

type memUsers struct {
	seq   int
	items map[string]*entity.User
}

func newMemUsers() *memUsers { return &memUsers{items: map[string]*entity.User{}} }

func (m *memUsers) Create(u *entity.User) error {
	for _, cur := range m.items {
		if cur.Email == u.Email {
			return fmt.Errorf("duplicate email")
		}
	}
	m.seq++
	u.ID = fmt.Sprintf("user-%d", m.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	m.items[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(id string) (*entity.User, error) {
	u, ok := m.items[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(email string) (*entity.User, error) {
	for _, u := range m.items {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memUsers) UpdatePassword(id, passwordHash string) error {
	u, ok := m.items[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.Password = passwordHash
	return nil
}

var _ repo.UserRepository = (*memUsers)(nil)

// pubRecorder captures queued email jobs.
type pubRecorder struct {
	jobs []json.RawMessage
}

func (p *pubRecorder) PublishJSON(_ context.Context, body any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	p.jobs = append(p.jobs, raw)
	return nil
}

var _ Publisher = (*pubRecorder)(nil)
