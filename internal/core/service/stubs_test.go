package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/engnet/backoffice-api/internal/core/domain"
	"github.com/engnet/backoffice-api/internal/core/ports"
)

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
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
			return nil, domain.ErrUserExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
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

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	for _, u := range r.users {
		if u.Email == user.Email && u.ID != user.ID {
			return nil, domain.ErrUserExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubClientRepo struct {
	clients map[string]*domain.Client
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{clients: make(map[string]*domain.Client)}
}

func cloneClient(c *domain.Client) *domain.Client {
	clone := *c
	return &clone
}

func (r *stubClientRepo) Create(_ context.Context, client *domain.Client) (*domain.Client, error) {
	r.clients[client.ID] = cloneClient(client)
	return cloneClient(client), nil
}

func (r *stubClientRepo) FindAll(_ context.Context) ([]domain.Client, error) {
	out := make([]domain.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id string) (*domain.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	return cloneClient(c), nil
}

func (r *stubClientRepo) Update(_ context.Context, client *domain.Client) (*domain.Client, error) {
	if _, ok := r.clients[client.ID]; !ok {
		return nil, domain.ErrClientNotFound
	}
	r.clients[client.ID] = cloneClient(client)
	return cloneClient(client), nil
}

func (r *stubClientRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.clients[id]; !ok {
		return domain.ErrClientNotFound
	}
	delete(r.clients, id)
	return nil
}

type stubRefundRepo struct {
	refunds map[string]*domain.Refund
	listErr error
}

func newStubRefundRepo() *stubRefundRepo {
	return &stubRefundRepo{refunds: make(map[string]*domain.Refund)}
}

func cloneRefund(r *domain.Refund) *domain.Refund {
	clone := *r
	return &clone
}

func (r *stubRefundRepo) Create(_ context.Context, refund *domain.Refund) (*domain.Refund, error) {
	r.refunds[refund.ID] = cloneRefund(refund)
	return cloneRefund(refund), nil
}

func (r *stubRefundRepo) List(_ context.Context, filter domain.RefundFilter) ([]domain.Refund, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := []domain.Refund{}
	for _, rf := range r.refunds {
		if filter.Status != nil && rf.Status != *filter.Status {
			continue
		}
		if filter.UserID != "" && rf.UserID != filter.UserID {
			continue
		}
		if filter.From != nil && rf.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && rf.CreatedAt.After(*filter.To) {
			continue
		}
		out = append(out, *rf)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubRefundRepo) FindByID(_ context.Context, id string) (*domain.Refund, error) {
	rf, ok := r.refunds[id]
	if !ok {
		return nil, domain.ErrRefundNotFound
	}
	return cloneRefund(rf), nil
}

func (r *stubRefundRepo) Update(_ context.Context, refund *domain.Refund) (*domain.Refund, error) {
	if _, ok := r.refunds[refund.ID]; !ok {
		return nil, domain.ErrRefundNotFound
	}
	r.refunds[refund.ID] = cloneRefund(refund)
	return cloneRefund(refund), nil
}

func (r *stubRefundRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.refunds[id]; !ok {
		return domain.ErrRefundNotFound
	}
	delete(r.refunds, id)
	return nil
}

type stubStatsRepo struct {
	counts  domain.RefundCounts
	users   domain.UserStats
	clients domain.ClientStats
	err     error
}

func (r *stubStatsRepo) RefundCounts(context.Context) (domain.RefundCounts, error) {
	return r.counts, r.err
}

func (r *stubStatsRepo) UserStats(context.Context) (domain.UserStats, error) {
	return r.users, r.err
}

func (r *stubStatsRepo) ClientStats(context.Context) (domain.ClientStats, error) {
	return r.clients, r.err
}

type stubAuditLog struct {
	events    []domain.AuditEvent
	recordErr error
}

func (a *stubAuditLog) Record(_ context.Context, event domain.AuditEvent) error {
	if a.recordErr != nil {
		return a.recordErr
	}
	a.events = append(a.events, event)
	return nil
}

func (a *stubAuditLog) History(_ context.Context, entity, entityID string) ([]domain.AuditEvent, error) {
	out := []domain.AuditEvent{}
	for _, e := range a.events {
		if e.Entity == entity && e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out, nil
}

type stubDenylist struct {
	revoked map[string]time.Duration
	err     error
}

func newStubDenylist() *stubDenylist {
	return &stubDenylist{revoked: make(map[string]time.Duration)}
}

func (d *stubDenylist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if d.err != nil {
		return d.err
	}
	d.revoked[tokenID] = ttl
	return nil
}

func (d *stubDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	_, ok := d.revoked[tokenID]
	return ok, nil
}

type stubArchive struct {
	stored []*ports.Report
	err    error
}

func (a *stubArchive) Store(_ context.Context, report *ports.Report) error {
	if a.err != nil {
		return a.err
	}
	a.stored = append(a.stored, report)
	return nil
}

var errStorageDown = errors.New("storage unavailable")
