package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/waldothedeveloper/rent-jedi-sub001/internal/models"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/utils/addressval"
)

// In-memory repository fakes shared by the service tests. They keep the
// same nil-on-miss contract as the pgx implementations.

type fakePropertyRepo struct {
	mu    sync.Mutex
	props map[uuid.UUID]*models.Property
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{props: map[uuid.UUID]*models.Property{}}
}

func (r *fakePropertyRepo) Create(_ context.Context, p *models.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	cp.CreatedAt = time.Now()
	r.props[p.ID] = &cp
	return nil
}

func (r *fakePropertyRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.props[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePropertyRepo) GetDraftByOwner(_ context.Context, ownerID uuid.UUID) (*models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *models.Property
	for _, p := range r.props {
		if p.OwnerID != ownerID || p.Status != models.PropertyStatusDraft {
			continue
		}
		if latest == nil || p.CreatedAt.After(latest.CreatedAt) {
			latest = p
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (r *fakePropertyRepo) ListByOwnerID(_ context.Context, ownerID uuid.UUID) ([]*models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Property
	for _, p := range r.props {
		if p.OwnerID == ownerID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePropertyRepo) Update(_ context.Context, p *models.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.props[p.ID] = &cp
	return nil
}

func (r *fakePropertyRepo) SetStatus(_ context.Context, id uuid.UUID, status models.PropertyStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.props[id]; ok {
		p.Status = status
	}
	return nil
}

func (r *fakePropertyRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.props, id)
	return nil
}

type fakeUnitRepo struct {
	mu    sync.Mutex
	units map[uuid.UUID]*models.Unit
}

func newFakeUnitRepo() *fakeUnitRepo {
	return &fakeUnitRepo{units: map[uuid.UUID]*models.Unit{}}
}

func (r *fakeUnitRepo) Create(_ context.Context, u *models.Unit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.units[u.ID] = &cp
	return nil
}

func (r *fakeUnitRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Unit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.units[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUnitRepo) ListByPropertyID(_ context.Context, propertyID uuid.UUID) ([]*models.Unit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Unit
	for _, u := range r.units {
		if u.PropertyID == propertyID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUnitRepo) CountByPropertyID(_ context.Context, propertyID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, u := range r.units {
		if u.PropertyID == propertyID {
			n++
		}
	}
	return n, nil
}

func (r *fakeUnitRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.units, id)
	return nil
}

type fakeTenantRepo struct {
	mu      sync.Mutex
	tenants map[uuid.UUID]*models.Tenant
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{tenants: map[uuid.UUID]*models.Tenant{}}
}

func (r *fakeTenantRepo) Create(_ context.Context, t *models.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.tenants[t.ID] = &cp
	return nil
}

func (r *fakeTenantRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tenants[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTenantRepo) ListActiveByOwnerID(_ context.Context, ownerID uuid.UUID) ([]*models.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Tenant
	for _, t := range r.tenants {
		if t.OwnerID == ownerID && t.Status == models.TenantStatusActive {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTenantRepo) UpdateLeaseDates(_ context.Context, id uuid.UUID, start time.Time, end *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tenants[id]; ok {
		t.LeaseStart = start
		t.LeaseEnd = end
	}
	return nil
}

func (r *fakeTenantRepo) Activate(_ context.Context, id uuid.UUID, unitID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tenants[id]; ok {
		t.UnitID = &unitID
		t.Status = models.TenantStatusActive
	}
	return nil
}

func (r *fakeTenantRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tenants, id)
	return nil
}

type fakeInvitationRepo struct {
	mu      sync.Mutex
	invites map[uuid.UUID]*models.Invitation
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{invites: map[uuid.UUID]*models.Invitation{}}
}

func (r *fakeInvitationRepo) Create(_ context.Context, inv *models.Invitation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *inv
	r.invites[inv.ID] = &cp
	return nil
}

func (r *fakeInvitationRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Invitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invites[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvitationRepo) GetByToken(_ context.Context, token string) (*models.Invitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.invites {
		if inv.Token == token {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeInvitationRepo) SetStatus(_ context.Context, id uuid.UUID, status models.InvitationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if inv, ok := r.invites[id]; ok {
		inv.Status = status
	}
	return nil
}

func (r *fakeInvitationRepo) MarkAccepted(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if inv, ok := r.invites[id]; ok {
		inv.Status = models.InvitationStatusAccepted
	}
	return nil
}

func (r *fakeInvitationRepo) RevokeActiveForTenant(_ context.Context, tenantID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.invites {
		if inv.TenantID == tenantID && inv.IsActive() {
			inv.Status = models.InvitationStatusRevoked
		}
	}
	return nil
}

func (r *fakeInvitationRepo) ExpireOverdue(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, inv := range r.invites {
		if (inv.Status == models.InvitationStatusPending || inv.Status == models.InvitationStatusSent) && inv.IsExpired() {
			inv.Status = models.InvitationStatusExpired
			n++
		}
	}
	return n, nil
}

// fakeEmailSender records sends and can fail or block on demand.
type fakeEmailSender struct {
	mu      sync.Mutex
	sent    []string
	failErr error
	entered chan struct{}
	hold    chan struct{}
}

func (f *fakeEmailSender) SendTenantInvitation(_ context.Context, to, _, _, _ string, _ time.Time) error {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.hold != nil {
		<-f.hold
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return f.failErr
	}
	f.sent = append(f.sent, to)
	return nil
}

func (f *fakeEmailSender) SendInvitationRevoked(_ context.Context, to, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	return nil
}

func (f *fakeEmailSender) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type fakeAddressValidator struct {
	result *addressval.Result
	err    error
	calls  int
}

func (f *fakeAddressValidator) Validate(_ context.Context, addr addressval.Address) (*addressval.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	line := addr.Line1 + ", " + addr.City + ", " + addr.State + " " + addr.Zip
	return &addressval.Result{
		UserAddress:       line,
		NormalizedAddress: line,
		AreIdentical:      true,
	}, nil
}
