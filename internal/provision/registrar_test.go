package provision

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/greenlanecloud/tenancy/internal/domain/repository"
	"github.com/greenlanecloud/tenancy/internal/security/password"
)

// fakeRepo implementa TenantRepository en memoria con unicidad por slug.
type fakeRepo struct {
	tenants map[string]*repository.Tenant
	admins  map[string]repository.AdminUser      // por tenant id
	modules map[string][]repository.ModuleGrant  // por tenant id
	calls   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		tenants: map[string]*repository.Tenant{},
		admins:  map[string]repository.AdminUser{},
		modules: map[string][]repository.ModuleGrant{},
	}
}

func (f *fakeRepo) RegisterTenant(_ context.Context, input repository.RegisterTenantInput) (*repository.Tenant, error) {
	f.calls++
	if _, exists := f.tenants[input.Tenant.Slug]; exists {
		return nil, repository.ErrConflict
	}
	t := input.Tenant
	t.ID = "id-" + t.Slug
	f.tenants[t.Slug] = &t

	a := input.Admin
	a.ID = "admin-" + t.Slug
	a.TenantID = t.ID
	f.admins[t.ID] = a

	grants := make([]repository.ModuleGrant, len(input.Modules))
	copy(grants, input.Modules)
	for i := range grants {
		grants[i].TenantID = t.ID
	}
	f.modules[t.ID] = grants
	return &t, nil
}

func (f *fakeRepo) GetBySlug(_ context.Context, slug string) (*repository.Tenant, error) {
	if t, ok := f.tenants[slug]; ok {
		return t, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRepo) ListModules(_ context.Context, tenantID string) ([]repository.ModuleGrant, error) {
	return f.modules[tenantID], nil
}

func TestRegister_GeneratesPasswordAndSeedsEverything(t *testing.T) {
	repo := newFakeRepo()
	reg := NewRegistrar(repo, password.PlainEncoder{}, RegistrarConfig{BaseDomain: "greenlanecloudsolutions.com"})

	res, err := reg.Register(context.Background(), RegisterInput{
		TenantID:    "acme",
		CompanyName: "Acme Corp",
		AdminEmail:  "admin@acme.com",
	})
	require.NoError(t, err)

	require.Len(t, res.GeneratedPassword, 16)
	_, err = hex.DecodeString(res.GeneratedPassword)
	require.NoError(t, err, "generated password should be hex")

	tn := res.Tenant
	require.Equal(t, "acme", tn.Slug)
	require.Equal(t, "acme.greenlanecloudsolutions.com", tn.DomainName)
	require.Equal(t, "standard", tn.PlanType)
	require.True(t, tn.IsActive)
	require.True(t, tn.CustomSubdomain)
	require.Equal(t, "admin@acme.com", tn.AdminEmail)

	admin := repo.admins[tn.ID]
	require.Equal(t, "admin@acme.com", admin.Email)
	require.Equal(t, "admin@acme.com", admin.Username)
	require.Equal(t, "admin", admin.Role)
	require.Equal(t, "Admin", admin.FirstName)
	require.Equal(t, "User", admin.LastName)
	// plain encoder: lo persistido es el password generado, tal cual
	require.Equal(t, res.GeneratedPassword, admin.Password)

	grants := repo.modules[tn.ID]
	require.Len(t, grants, 8)
	enabled := map[string]bool{}
	for _, g := range grants {
		enabled[g.ModuleID] = g.Enabled
		require.Equal(t, "1.0.0", g.Version)
	}
	require.False(t, enabled["support-tickets"])
	require.False(t, enabled["community"])
	for _, id := range []string{"accounts", "contacts", "deals", "projects", "workflows", "tasks"} {
		require.True(t, enabled[id], "module %s", id)
	}
}

func TestRegister_ProvidedPasswordIsNotRegenerated(t *testing.T) {
	repo := newFakeRepo()
	reg := NewRegistrar(repo, password.PlainEncoder{}, RegistrarConfig{BaseDomain: "x.com"})

	res, err := reg.Register(context.Background(), RegisterInput{
		TenantID:      "acme",
		CompanyName:   "Acme",
		AdminEmail:    "admin@acme.com",
		AdminPassword: "chosen-by-operator",
	})
	require.NoError(t, err)
	require.Empty(t, res.GeneratedPassword)
	require.Equal(t, "chosen-by-operator", repo.admins[res.Tenant.ID].Password)
}

func TestRegister_Argon2EncoderHashesBeforePersist(t *testing.T) {
	repo := newFakeRepo()
	reg := NewRegistrar(repo, password.Argon2Encoder{}, RegistrarConfig{BaseDomain: "x.com"})

	res, err := reg.Register(context.Background(), RegisterInput{
		TenantID:      "acme",
		CompanyName:   "Acme",
		AdminEmail:    "admin@acme.com",
		AdminPassword: "S3cret!pass",
	})
	require.NoError(t, err)

	stored := repo.admins[res.Tenant.ID].Password
	require.NotEqual(t, "S3cret!pass", stored)
	require.True(t, password.Verify("S3cret!pass", stored))
}

func TestRegister_InvalidID_NoSideEffects(t *testing.T) {
	repo := newFakeRepo()
	reg := NewRegistrar(repo, password.PlainEncoder{}, RegistrarConfig{BaseDomain: "x.com"})

	for _, id := range []string{"AB", "ab", "-bad", "bad-", "con espacios"} {
		_, err := reg.Register(context.Background(), RegisterInput{TenantID: id, AdminEmail: "a@b.co"})
		require.ErrorIs(t, err, repository.ErrInvalidInput, "id %q", id)
	}
	require.Zero(t, repo.calls, "repository must never be reached on invalid ids")
}

func TestRegister_ConflictOnSecondCall(t *testing.T) {
	repo := newFakeRepo()
	reg := NewRegistrar(repo, password.PlainEncoder{}, RegistrarConfig{BaseDomain: "x.com"})
	ctx := context.Background()

	_, err := reg.Register(ctx, RegisterInput{TenantID: "acme", CompanyName: "Acme", AdminEmail: "a@b.co"})
	require.NoError(t, err)

	_, err = reg.Register(ctx, RegisterInput{TenantID: "acme", CompanyName: "Acme", AdminEmail: "a@b.co"})
	require.ErrorIs(t, err, repository.ErrConflict)
	require.Len(t, repo.tenants, 1, "exactly one tenant row after both calls")
}

func TestRegister_StrictSubdomainOption(t *testing.T) {
	repo := newFakeRepo()

	permissive := NewRegistrar(repo, password.PlainEncoder{}, RegistrarConfig{BaseDomain: "x.com"})
	_, err := permissive.Register(context.Background(), RegisterInput{TenantID: "ab--cd", AdminEmail: "a@b.co"})
	require.NoError(t, err, "consecutive hyphens pass by default")

	strict := NewRegistrar(repo, password.PlainEncoder{}, RegistrarConfig{BaseDomain: "x.com", StrictSubdomain: true})
	_, err = strict.Register(context.Background(), RegisterInput{TenantID: "ef--gh", AdminEmail: "a@b.co"})
	require.ErrorIs(t, err, repository.ErrInvalidInput)
}
