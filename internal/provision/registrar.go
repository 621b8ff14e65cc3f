// Package provision contiene el registrar de tenants y el pipeline de setup
// completo (registro + reconciliación DNS).
package provision

import (
	"context"
	"fmt"

	"github.com/greenlanecloud/tenancy/internal/domain/repository"
	"github.com/greenlanecloud/tenancy/internal/modules"
	"github.com/greenlanecloud/tenancy/internal/observability/logger"
	"github.com/greenlanecloud/tenancy/internal/security/password"
	"github.com/greenlanecloud/tenancy/internal/util"
	"github.com/greenlanecloud/tenancy/internal/validation"
)

// RegistrarConfig es la configuración resuelta del registrar.
type RegistrarConfig struct {
	BaseDomain      string
	StrictSubdomain bool
}

// RegisterInput son los cuatro argumentos del registro.
// AdminPassword vacío genera un secreto aleatorio de 16 hex chars.
type RegisterInput struct {
	TenantID      string
	CompanyName   string
	AdminEmail    string
	AdminPassword string
}

// Registration es el resultado de un registro exitoso.
type Registration struct {
	Tenant *repository.Tenant

	// GeneratedPassword viene no vacío solo cuando el password fue generado.
	// Es irrecuperable después: el caller debe mostrarlo exactamente una vez.
	GeneratedPassword string
}

// Registrar materializa tenants nuevos de forma atómica.
type Registrar struct {
	repo repository.TenantRepository
	enc  password.Encoder
	cfg  RegistrarConfig
}

// NewRegistrar arma un registrar.
func NewRegistrar(repo repository.TenantRepository, enc password.Encoder, cfg RegistrarConfig) *Registrar {
	return &Registrar{repo: repo, enc: enc, cfg: cfg}
}

// Register valida el tenant id, arma tenant + admin + module grants y delega
// la escritura transaccional al repositorio. Ningún side effect ocurre si la
// validación falla.
func (r *Registrar) Register(ctx context.Context, in RegisterInput) (*Registration, error) {
	valid := validation.ValidSubdomain
	if r.cfg.StrictSubdomain {
		valid = validation.ValidSubdomainStrict
	}
	if !valid(in.TenantID) {
		return nil, fmt.Errorf("invalid tenant id %q: %w", in.TenantID, repository.ErrInvalidInput)
	}

	log := logger.From(ctx).With(
		logger.Component("provision.Registrar"),
		logger.TenantSlug(in.TenantID),
	)

	plain := in.AdminPassword
	generated := ""
	if plain == "" {
		secret, err := password.GenerateSecret()
		if err != nil {
			return nil, fmt.Errorf("generate admin password: %w", err)
		}
		plain = secret
		generated = secret
	}

	if r.enc.Name() == "plain" {
		// Comportamiento heredado: el password se persiste tal cual.
		log.Warn("admin password will be stored without hashing; set security.password_encoder=argon2id to change this")
	}
	encoded, err := r.enc.Encode(plain)
	if err != nil {
		return nil, fmt.Errorf("encode admin password: %w", err)
	}

	input := repository.RegisterTenantInput{
		Tenant: repository.Tenant{
			Slug:            in.TenantID,
			CompanyName:     in.CompanyName,
			PlanType:        "standard",
			IsActive:        true,
			DomainName:      in.TenantID + "." + r.cfg.BaseDomain,
			AdminEmail:      in.AdminEmail,
			CustomSubdomain: true,
		},
		Admin: repository.AdminUser{
			Username:  in.AdminEmail,
			Email:     in.AdminEmail,
			Password:  encoded,
			FirstName: "Admin",
			LastName:  "User",
			Role:      "admin",
		},
		Modules: modules.GrantsFor(""), // el repo asigna el tenant id definitivo
	}

	tenant, err := r.repo.RegisterTenant(ctx, input)
	if err != nil {
		return nil, err
	}

	log.Info("tenant provisioned",
		logger.TenantID(tenant.ID),
		logger.Hostname(tenant.DomainName),
		logger.Email(util.MaskEmail(tenant.AdminEmail)),
		logger.Bool("password_generated", generated != ""),
	)
	return &Registration{Tenant: tenant, GeneratedPassword: generated}, nil
}
