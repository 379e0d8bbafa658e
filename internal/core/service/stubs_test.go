package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/playverse/gamestore/internal/core/domain"
	"github.com/playverse/gamestore/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs mirroring the Mongo repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
		if u.Username == user.Username {
			return nil, domain.ErrDuplicateUsername
		}
	}
	r.seq++
	c := cloneUser(user)
	c.ID = fmt.Sprintf("u%d", r.seq)
	r.users[c.ID] = c
	return cloneUser(c), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubUserRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

// stubTokenRepo shares the user map so ConsumeAndSetPassword can update both
// sides under one lock, like the Mongo transaction does.
type stubTokenRepo struct {
	users  *stubUserRepo
	tokens map[string]*domain.ResetToken
}

func newStubTokenRepo(users *stubUserRepo) *stubTokenRepo {
	return &stubTokenRepo{users: users, tokens: make(map[string]*domain.ResetToken)}
}

func (r *stubTokenRepo) Replace(_ context.Context, t *domain.ResetToken) error {
	r.users.mu.Lock()
	defer r.users.mu.Unlock()
	for h, existing := range r.tokens {
		if existing.UserID == t.UserID && !existing.Consumed {
			delete(r.tokens, h)
		}
	}
	clone := *t
	r.tokens[t.TokenHash] = &clone
	return nil
}

func (r *stubTokenRepo) FindByHash(_ context.Context, h string) (*domain.ResetToken, error) {
	r.users.mu.Lock()
	defer r.users.mu.Unlock()
	t, ok := r.tokens[h]
	if !ok {
		return nil, domain.ErrTokenNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTokenRepo) ConsumeAndSetPassword(_ context.Context, h, passwordHash string, notBefore, now time.Time) error {
	r.users.mu.Lock()
	defer r.users.mu.Unlock()
	t, ok := r.tokens[h]
	if !ok {
		return domain.ErrTokenNotFound
	}
	if t.Consumed {
		return domain.ErrTokenAlreadyUsed
	}
	if !t.CreatedAt.After(notBefore) {
		return domain.ErrTokenExpired
	}
	t.Consumed = true
	t.ConsumedAt = &now
	r.users.users[t.UserID].PasswordHash = passwordHash
	return nil
}

func (r *stubTokenRepo) unconsumedFor(userID string) int {
	r.users.mu.Lock()
	defer r.users.mu.Unlock()
	n := 0
	for _, t := range r.tokens {
		if t.UserID == userID && !t.Consumed {
			n++
		}
	}
	return n
}

type stubHasher struct{}

func (stubHasher) HashPassword(pw string) (string, error) {
	return "hashed:" + pw, nil
}

type stubMailer struct {
	sent []ports.MailMessage
	err  error
}

func (m *stubMailer) Send(_ context.Context, msg ports.MailMessage) error {
	m.sent = append(m.sent, msg)
	return m.err
}

type stubRevocations struct {
	revoked map[string]time.Duration
	err     error
}

func newStubRevocations() *stubRevocations {
	return &stubRevocations{revoked: make(map[string]time.Duration)}
}

func (r *stubRevocations) Revoke(_ context.Context, id string, ttl time.Duration) error {
	if r.err != nil {
		return r.err
	}
	r.revoked[id] = ttl
	return nil
}

func (r *stubRevocations) IsRevoked(_ context.Context, id string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.revoked[id]
	return ok, nil
}

type stubGameRepo struct {
	games map[string]*domain.Game
	seq   int
}

func newStubGameRepo(games ...*domain.Game) *stubGameRepo {
	r := &stubGameRepo{games: make(map[string]*domain.Game)}
	for _, g := range games {
		clone := *g
		r.games[g.ID] = &clone
	}
	return r
}

func (r *stubGameRepo) Create(_ context.Context, g *domain.Game) error {
	r.seq++
	g.ID = fmt.Sprintf("g%d", r.seq)
	clone := *g
	r.games[g.ID] = &clone
	return nil
}

func (r *stubGameRepo) Update(_ context.Context, g *domain.Game) error {
	if _, ok := r.games[g.ID]; !ok {
		return domain.ErrGameNotFound
	}
	clone := *g
	r.games[g.ID] = &clone
	return nil
}

func (r *stubGameRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.games[id]; !ok {
		return domain.ErrGameNotFound
	}
	delete(r.games, id)
	return nil
}

func (r *stubGameRepo) FindByID(_ context.Context, id string) (*domain.Game, error) {
	g, ok := r.games[id]
	if !ok {
		return nil, domain.ErrGameNotFound
	}
	clone := *g
	return &clone, nil
}

func (r *stubGameRepo) FindBySlug(_ context.Context, slug string) (*domain.Game, error) {
	for _, g := range r.games {
		if g.Slug == slug {
			clone := *g
			return &clone, nil
		}
	}
	return nil, domain.ErrGameNotFound
}

func (r *stubGameRepo) List(_ context.Context, f ports.GameFilter) ([]*domain.Game, error) {
	var out []*domain.Game
	for _, g := range r.games {
		if f.ActiveOnly && !g.Active {
			continue
		}
		if f.Category != "" && g.Category != f.Category {
			continue
		}
		clone := *g
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubGameRepo) Count(context.Context) (int64, error) {
	return int64(len(r.games)), nil
}

type stubCartRepo struct {
	carts map[string]*domain.Cart
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{carts: make(map[string]*domain.Cart)}
}

func cloneCart(c *domain.Cart) *domain.Cart {
	clone := *c
	clone.Items = append([]domain.CartItem(nil), c.Items...)
	return &clone
}

func (r *stubCartRepo) GetOrCreate(_ context.Context, userID string) (*domain.Cart, error) {
	c, ok := r.carts[userID]
	if !ok {
		c = &domain.Cart{ID: "cart-" + userID, UserID: userID}
		r.carts[userID] = c
	}
	return cloneCart(c), nil
}

func (r *stubCartRepo) Save(_ context.Context, c *domain.Cart) error {
	r.carts[c.UserID] = cloneCart(c)
	return nil
}

type stubReservationRepo struct {
	items map[string]*domain.Reservation
	seq   int
}

func newStubReservationRepo() *stubReservationRepo {
	return &stubReservationRepo{items: make(map[string]*domain.Reservation)}
}

func (r *stubReservationRepo) Create(_ context.Context, res *domain.Reservation) error {
	r.seq++
	res.ID = fmt.Sprintf("r%d", r.seq)
	clone := *res
	r.items[res.ID] = &clone
	return nil
}

func (r *stubReservationRepo) ListByUser(_ context.Context, userID string) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, res := range r.items {
		if res.UserID == userID {
			clone := *res
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubReservationRepo) FindForUser(_ context.Context, id, userID string) (*domain.Reservation, error) {
	res, ok := r.items[id]
	if !ok || res.UserID != userID {
		return nil, domain.ErrReservationNotFound
	}
	clone := *res
	return &clone, nil
}

func (r *stubReservationRepo) DeleteForUser(_ context.Context, id, userID string) error {
	res, ok := r.items[id]
	if !ok || res.UserID != userID {
		return domain.ErrReservationNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubReservationRepo) Count(context.Context) (int64, error) {
	return int64(len(r.items)), nil
}
