package repository

import (
	"context"
	"time"
)

// Tenant representa una organización cliente aislada dentro del sistema,
// identificada por su slug de subdominio.
type Tenant struct {
	ID              string
	Slug            string // label de subdominio, único
	CompanyName     string
	PlanType        string // "standard" al crear
	IsActive        bool
	DomainName      string // "<slug>.<base-domain>", derivado
	AdminEmail      string
	CustomSubdomain bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AdminUser es el usuario administrador sembrado junto con el tenant.
// El email se usa también como username.
type AdminUser struct {
	ID        string
	TenantID  string
	Username  string
	Email     string
	Password  string // salida del password.Encoder configurado
	FirstName string
	LastName  string
	Role      string // "admin"
	CreatedAt time.Time
}

// ModuleGrant habilita o deshabilita un área funcional del CRM para un tenant.
type ModuleGrant struct {
	TenantID    string
	ModuleID    string
	Name        string
	Description string
	Enabled     bool
	Version     string
	Settings    map[string]any
	CreatedAt   time.Time
}

// RegisterTenantInput agrupa los datos para materializar un tenant nuevo
// con su administrador y sus module grants, en una sola transacción.
type RegisterTenantInput struct {
	Tenant  Tenant
	Admin   AdminUser
	Modules []ModuleGrant
}

// TenantRepository define operaciones sobre tenants.
type TenantRepository interface {
	// RegisterTenant inserta tenant + admin + module grants de forma atómica.
	// Retorna ErrConflict si el slug ya existe; en ese caso (y en cualquier
	// otro error) no queda ninguna fila persistida.
	RegisterTenant(ctx context.Context, input RegisterTenantInput) (*Tenant, error)

	// GetBySlug busca un tenant por su slug.
	// Retorna ErrNotFound si no existe.
	GetBySlug(ctx context.Context, slug string) (*Tenant, error)

	// ListModules retorna los module grants de un tenant.
	ListModules(ctx context.Context, tenantID string) ([]ModuleGrant, error)
}
