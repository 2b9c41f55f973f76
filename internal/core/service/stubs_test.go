package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/mazadio/auction-system/internal/core/domain"
	"github.com/mazadio/auction-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests
// ---------------------------------------------------------------------------

type stubAuctionRepo struct {
	byID      map[string]*domain.Auction
	nextID    int
	createErr error
}

func newStubAuctionRepo() *stubAuctionRepo {
	return &stubAuctionRepo{byID: make(map[string]*domain.Auction)}
}

func (r *stubAuctionRepo) Create(_ context.Context, a *domain.Auction) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	a.ID = fmt.Sprintf("auction-%d", r.nextID)
	clone := *a
	r.byID[a.ID] = &clone
	return nil
}

func (r *stubAuctionRepo) FindByID(_ context.Context, id string) (*domain.Auction, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAuctionNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAuctionRepo) FindDetail(_ context.Context, id string) (*ports.AuctionDetail, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAuctionNotFound
	}
	clone := *a
	return &ports.AuctionDetail{Auction: clone, Category: domain.CategorySummary{ID: a.CategoryID}}, nil
}

func (r *stubAuctionRepo) Replace(_ context.Context, a *domain.Auction) error {
	if _, ok := r.byID[a.ID]; !ok {
		return domain.ErrAuctionNotFound
	}
	clone := *a
	r.byID[a.ID] = &clone
	return nil
}

func (r *stubAuctionRepo) SetStatus(_ context.Context, id string, status domain.AuctionStatus) error {
	a, ok := r.byID[id]
	if !ok {
		return domain.ErrAuctionNotFound
	}
	a.Status = status
	return nil
}

func (r *stubAuctionRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrAuctionNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubAuctionRepo) List(_ context.Context, f ports.ListAuctionsFilter) ([]*domain.Auction, int64, error) {
	var matched []*domain.Auction
	for _, a := range r.byID {
		if f.Status != "" && string(a.Status) != f.Status {
			continue
		}
		if f.CategoryID != "" && a.CategoryID != f.CategoryID {
			continue
		}
		if f.Featured != nil && a.Featured != *f.Featured {
			continue
		}
		clone := *a
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, int64(len(matched)), nil
}

type stubBidRepo struct {
	bids      []*domain.Bid
	nextID    int
	createErr error
}

func newStubBidRepo() *stubBidRepo {
	return &stubBidRepo{}
}

func (r *stubBidRepo) Create(_ context.Context, b *domain.Bid) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	b.ID = fmt.Sprintf("bid-%d", r.nextID)
	clone := *b
	r.bids = append(r.bids, &clone)
	return nil
}

// HighestForAuction mirrors the Mongo sort: amount desc, timestamp asc.
func (r *stubBidRepo) HighestForAuction(_ context.Context, auctionID string) (*domain.Bid, error) {
	var best *domain.Bid
	for _, b := range r.bids {
		if b.AuctionID != auctionID {
			continue
		}
		if best == nil ||
			b.Amount > best.Amount ||
			(b.Amount == best.Amount && b.Timestamp.Before(best.Timestamp)) {
			best = b
		}
	}
	if best == nil {
		return nil, domain.ErrBidNotFound
	}
	clone := *best
	return &clone, nil
}

func (r *stubBidRepo) ListByAuction(_ context.Context, auctionID string, page, limit int) ([]*domain.Bid, int64, error) {
	var matched []*domain.Bid
	for _, b := range r.bids {
		if b.AuctionID == auctionID {
			clone := *b
			matched = append(matched, &clone)
		}
	}
	return matched, int64(len(matched)), nil
}

func (r *stubBidRepo) ListByBidder(_ context.Context, bidderID string, page, limit int) ([]*domain.Bid, int64, error) {
	var matched []*domain.Bid
	for _, b := range r.bids {
		if b.BidderID == bidderID {
			clone := *b
			matched = append(matched, &clone)
		}
	}
	return matched, int64(len(matched)), nil
}

func (r *stubBidRepo) FindByID(_ context.Context, id string) (*domain.Bid, error) {
	for _, b := range r.bids {
		if b.ID == id {
			clone := *b
			return &clone, nil
		}
	}
	return nil, domain.ErrBidNotFound
}

func (r *stubBidRepo) DeleteByAuction(_ context.Context, auctionID string) error {
	kept := r.bids[:0]
	for _, b := range r.bids {
		if b.AuctionID != auctionID {
			kept = append(kept, b)
		}
	}
	r.bids = kept
	return nil
}

type stubDepositRepo struct {
	byID   map[string]*domain.Deposit
	nextID int
}

func newStubDepositRepo() *stubDepositRepo {
	return &stubDepositRepo{byID: make(map[string]*domain.Deposit)}
}

func (r *stubDepositRepo) Create(_ context.Context, d *domain.Deposit) error {
	r.nextID++
	d.ID = fmt.Sprintf("deposit-%d", r.nextID)
	clone := *d
	r.byID[d.ID] = &clone
	return nil
}

func (r *stubDepositRepo) FindByID(_ context.Context, id string) (*domain.Deposit, error) {
	d, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrDepositNotFound
	}
	clone := *d
	return &clone, nil
}

func (r *stubDepositRepo) Update(_ context.Context, d *domain.Deposit) error {
	if _, ok := r.byID[d.ID]; !ok {
		return domain.ErrDepositNotFound
	}
	clone := *d
	r.byID[d.ID] = &clone
	return nil
}

func (r *stubDepositRepo) List(_ context.Context, f ports.ListDepositsFilter) ([]*domain.Deposit, int64, error) {
	var matched []*domain.Deposit
	for _, d := range r.byID {
		if f.Status != "" && string(d.Status) != f.Status {
			continue
		}
		if f.UserID != "" && d.UserID != f.UserID {
			continue
		}
		if f.AuctionID != "" && d.AuctionID != f.AuctionID {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(d.AuctionTitle), q) &&
				!strings.Contains(strings.ToLower(d.Username), q) &&
				!strings.Contains(strings.ToLower(d.ID), q) {
				continue
			}
		}
		clone := *d
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, int64(len(matched)), nil
}

func (r *stubDepositRepo) ListByUser(_ context.Context, userID string) ([]*domain.Deposit, error) {
	var matched []*domain.Deposit
	for _, d := range r.byID {
		if d.UserID == userID {
			clone := *d
			matched = append(matched, &clone)
		}
	}
	return matched, nil
}

func (r *stubDepositRepo) ListByAuction(_ context.Context, auctionID string) ([]*domain.Deposit, error) {
	var matched []*domain.Deposit
	for _, d := range r.byID {
		if d.AuctionID == auctionID {
			clone := *d
			matched = append(matched, &clone)
		}
	}
	return matched, nil
}

func (r *stubDepositRepo) CountByStatus(_ context.Context) (*domain.DepositStats, error) {
	stats := &domain.DepositStats{}
	for _, d := range r.byID {
		stats.Total++
		switch d.Status {
		case domain.DepositPending:
			stats.Pending++
		case domain.DepositConfirmed:
			stats.Confirmed++
		case domain.DepositRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}

type stubUserRepo struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
	nextID  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, exists := r.byEmail[u.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	u.ID = fmt.Sprintf("user-%d", r.nextID)
	clone := *u
	r.byID[u.ID] = &clone
	r.byEmail[u.Email] = &clone
	return u, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *u
	r.byID[u.ID] = &clone
	r.byEmail[u.Email] = &clone
	return nil
}

func (r *stubUserRepo) List(_ context.Context, f ports.ListUsersFilter) ([]*domain.User, int64, error) {
	var matched []*domain.User
	for _, u := range r.byID {
		if u.Role == domain.RoleAdmin || u.Role == domain.RoleSuperadmin {
			continue
		}
		if f.Role != "" && string(u.Role) != f.Role {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(u.Email), q) &&
				!strings.Contains(strings.ToLower(u.FirstName), q) &&
				!strings.Contains(strings.ToLower(u.LastName), q) {
				continue
			}
		}
		clone := *u
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, int64(len(matched)), nil
}

// stubBlobStore records saved keys in memory.
type stubBlobStore struct {
	saved   map[string][]byte
	removed []string
	saveErr error
}

func newStubBlobStore() *stubBlobStore {
	return &stubBlobStore{saved: make(map[string][]byte)}
}

func (s *stubBlobStore) Save(_ context.Context, key string, r io.Reader) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return "", err
	}
	s.saved[key] = buf.Bytes()
	return "/uploads/" + key, nil
}

func (s *stubBlobStore) Remove(_ context.Context, key string) error {
	delete(s.saved, key)
	s.removed = append(s.removed, key)
	return nil
}

func (s *stubBlobStore) RemovePrefix(_ context.Context, prefix string) error {
	for key := range s.saved {
		if strings.HasPrefix(key, prefix) {
			delete(s.saved, key)
		}
	}
	s.removed = append(s.removed, prefix)
	return nil
}

// stubBidLock emulates the Redis SET NX lock. Setting busyFor makes the first
// N acquires on a key fail, to exercise the retry path.
type stubBidLock struct {
	mu       sync.Mutex
	held     map[string]bool
	busyFor  map[string]int
	acquires int
}

func newStubBidLock() *stubBidLock {
	return &stubBidLock{held: make(map[string]bool), busyFor: make(map[string]int)}
}

func (l *stubBidLock) Acquire(_ context.Context, auctionID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.acquires++
	if n := l.busyFor[auctionID]; n > 0 {
		l.busyFor[auctionID] = n - 1
		return false, nil
	}
	if l.held[auctionID] {
		return false, nil
	}
	l.held[auctionID] = true
	return true, nil
}

func (l *stubBidLock) Release(_ context.Context, auctionID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.held[auctionID] = false
	return nil
}

type stubCategoryRepo struct {
	byID   map[string]*domain.Category
	nextID int
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{byID: make(map[string]*domain.Category)}
}

func (r *stubCategoryRepo) Create(_ context.Context, c *domain.Category) error {
	r.nextID++
	c.ID = fmt.Sprintf("cat-%d", r.nextID)
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id string) (*domain.Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCategoryRepo) FindByName(_ context.Context, name string) (*domain.Category, error) {
	for _, c := range r.byID {
		if c.Name == name {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (r *stubCategoryRepo) List(_ context.Context) ([]*domain.Category, error) {
	var out []*domain.Category
	for _, c := range r.byID {
		clone := *c
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubReferenceRepo struct{}

func (stubReferenceRepo) Tribunals(_ context.Context) ([]*domain.Tribunal, error) {
	return []*domain.Tribunal{{ID: "t-1", Name: "Tribunal de Casablanca", City: "Casablanca"}}, nil
}

func (stubReferenceRepo) Countries(_ context.Context) ([]*domain.Country, error) {
	return []*domain.Country{{ID: "c-1", Name: "Maroc", Code: "MA"}}, nil
}

func (stubReferenceRepo) Cities(_ context.Context, countryID string) ([]*domain.City, error) {
	return []*domain.City{{ID: "v-1", Name: "Rabat", CountryID: countryID}}, nil
}

func (stubReferenceRepo) CreditOrganisms(_ context.Context) ([]*domain.CreditOrganism, error) {
	return []*domain.CreditOrganism{{ID: "o-1", Name: "CIH"}}, nil
}
