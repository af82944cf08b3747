package core

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"hisma-backend-go/internal/db"
	"hisma-backend-go/internal/models"
)

// In-memory repository fakes backing the service tests. Each one guards its
// map with a mutex so concurrency tests exercise real interleavings.

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]models.User)}
}

func (r *memUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.ID]; exists {
		return fmt.Errorf("user '%s' already exists", user.ID)
	}
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, userID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &user, nil
}

func (r *memUserRepo) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return db.ErrNotFound
	}
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) SetRoleAndLubricenter(ctx context.Context, userID string, role models.UserRole, lubricenterID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return db.ErrNotFound
	}
	user.Role = role
	user.LubricenterID = lubricenterID
	r.users[userID] = user
	return nil
}

type memLubricenterRepo struct {
	mu    sync.Mutex
	seq   int
	shops map[string]models.Lubricenter
}

func newMemLubricenterRepo() *memLubricenterRepo {
	return &memLubricenterRepo{shops: make(map[string]models.Lubricenter)}
}

func (r *memLubricenterRepo) Create(ctx context.Context, lubricenter *models.Lubricenter) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	id := fmt.Sprintf("lub-%d", r.seq)
	stored := *lubricenter
	stored.ID = id
	r.shops[id] = stored
	return id, nil
}

func (r *memLubricenterRepo) GetByID(ctx context.Context, lubricenterID string) (*models.Lubricenter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	shop, ok := r.shops[lubricenterID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &shop, nil
}

func (r *memLubricenterRepo) GetByOwnerID(ctx context.Context, ownerID string) ([]*models.Lubricenter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Lubricenter
	for _, shop := range r.shops {
		if shop.OwnerID == ownerID {
			s := shop
			out = append(out, &s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memLubricenterRepo) GetByCUIT(ctx context.Context, cuit string) (*models.Lubricenter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, shop := range r.shops {
		if shop.CUIT == cuit {
			s := shop
			return &s, nil
		}
	}
	return nil, db.ErrNotFound
}

func (r *memLubricenterRepo) Update(ctx context.Context, lubricenter *models.Lubricenter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.shops[lubricenter.ID]; !ok {
		return db.ErrNotFound
	}
	r.shops[lubricenter.ID] = *lubricenter
	return nil
}

func (r *memLubricenterRepo) SetSubscriptionID(ctx context.Context, lubricenterID, subscriptionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	shop, ok := r.shops[lubricenterID]
	if !ok {
		return db.ErrNotFound
	}
	shop.SubscriptionID = subscriptionID
	r.shops[lubricenterID] = shop
	return nil
}

func (r *memLubricenterRepo) SetLogoURL(ctx context.Context, lubricenterID, logoURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	shop, ok := r.shops[lubricenterID]
	if !ok {
		return db.ErrNotFound
	}
	shop.LogoURL = logoURL
	r.shops[lubricenterID] = shop
	return nil
}

type memSubscriptionRepo struct {
	mu   sync.Mutex
	seq  int
	subs map[string]models.Subscription
}

func newMemSubscriptionRepo() *memSubscriptionRepo {
	return &memSubscriptionRepo{subs: make(map[string]models.Subscription)}
}

func (r *memSubscriptionRepo) Create(ctx context.Context, subscription *models.Subscription) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	id := fmt.Sprintf("sub-%d", r.seq)
	stored := *subscription
	stored.ID = id
	r.subs[id] = stored
	return id, nil
}

func (r *memSubscriptionRepo) GetByID(ctx context.Context, subscriptionID string) (*models.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.subs[subscriptionID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &sub, nil
}

func (r *memSubscriptionRepo) GetByLubricenterID(ctx context.Context, lubricenterID string) (*models.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sub := range r.subs {
		if sub.LubricenterID == lubricenterID {
			s := sub
			return &s, nil
		}
	}
	return nil, db.ErrNotFound
}

func (r *memSubscriptionRepo) Overwrite(ctx context.Context, subscription *models.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subs[subscription.ID]; !ok {
		return db.ErrNotFound
	}
	r.subs[subscription.ID] = *subscription
	return nil
}

// IncrementOilChangesUsed serializes increments under the mutex, mirroring
// the transactional read-modify-write of the real repository.
func (r *memSubscriptionRepo) IncrementOilChangesUsed(ctx context.Context, subscriptionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.subs[subscriptionID]
	if !ok {
		return db.ErrNotFound
	}
	sub.OilChangesUsed++
	r.subs[subscriptionID] = sub
	return nil
}

type memOilChangeRepo struct {
	mu      sync.Mutex
	seq     int
	records map[string]map[string]models.OilChangeRecord // lubricenterID -> recordID -> record
}

func newMemOilChangeRepo() *memOilChangeRepo {
	return &memOilChangeRepo{records: make(map[string]map[string]models.OilChangeRecord)}
}

func (r *memOilChangeRepo) shop(lubricenterID string) map[string]models.OilChangeRecord {
	if r.records[lubricenterID] == nil {
		r.records[lubricenterID] = make(map[string]models.OilChangeRecord)
	}
	return r.records[lubricenterID]
}

func (r *memOilChangeRepo) Create(ctx context.Context, lubricenterID string, record *models.OilChangeRecord) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	id := fmt.Sprintf("rec-%d", r.seq)
	stored := *record
	stored.ID = id
	stored.LubricenterID = lubricenterID
	r.shop(lubricenterID)[id] = stored
	return id, nil
}

func (r *memOilChangeRepo) GetByID(ctx context.Context, lubricenterID, recordID string) (*models.OilChangeRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.shop(lubricenterID)[recordID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &record, nil
}

func (r *memOilChangeRepo) ListByLubricenter(ctx context.Context, lubricenterID string) ([]*models.OilChangeRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.OilChangeRecord
	for _, record := range r.shop(lubricenterID) {
		rec := record
		out = append(out, &rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memOilChangeRepo) Update(ctx context.Context, lubricenterID string, record *models.OilChangeRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	shop := r.shop(lubricenterID)
	if _, ok := shop[record.ID]; !ok {
		return db.ErrNotFound
	}
	shop[record.ID] = *record
	return nil
}

func (r *memOilChangeRepo) Delete(ctx context.Context, lubricenterID, recordID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	shop := r.shop(lubricenterID)
	if _, ok := shop[recordID]; !ok {
		return db.ErrNotFound
	}
	delete(shop, recordID)
	return nil
}

type memAuditRepo struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func newMemAuditRepo() *memAuditRepo {
	return &memAuditRepo{}
}

func (r *memAuditRepo) Create(ctx context.Context, logEntry models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, logEntry)
	return nil
}

// fakeAccounts is an in-memory identity provider. Setting failCreate makes
// account creation fail, for partial-flow tests.
type fakeAccounts struct {
	mu         sync.Mutex
	seq        int
	byEmail    map[string]string
	failCreate error
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{byEmail: make(map[string]string)}
}

func (a *fakeAccounts) CreateAccount(ctx context.Context, email, password, displayName string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.failCreate != nil {
		return "", a.failCreate
	}
	if _, exists := a.byEmail[email]; exists {
		return "", fmt.Errorf("email '%s' already registered", email)
	}
	a.seq++
	id := fmt.Sprintf("uid-%d", a.seq)
	a.byEmail[email] = id
	return id, nil
}

func (a *fakeAccounts) SendPasswordResetLink(ctx context.Context, email string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.byEmail[email]; !exists {
		return "", fmt.Errorf("no account for '%s'", email)
	}
	return "https://reset.example/" + email, nil
}
