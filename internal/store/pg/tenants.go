package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/greenlanecloud/tenancy/internal/domain/repository"
	"github.com/greenlanecloud/tenancy/internal/observability/logger"
)

// mapPgError traduce errores de Postgres a sentinels del dominio.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
		return repository.ErrConflict
	}
	return err
}

// RegisterTenant inserta tenant + admin + module grants en una transacción.
// No hay pre-lectura de existencia: el INSERT confía en el UNIQUE de
// tenant.slug y la violación se mapea a ErrConflict, así dos registros
// concurrentes para el mismo slug no pueden colarse entre check e insert.
func (s *Store) RegisterTenant(ctx context.Context, input repository.RegisterTenantInput) (*repository.Tenant, error) {
	log := logger.From(ctx).With(
		logger.Component("pg.Store"),
		logger.TenantSlug(input.Tenant.Slug),
	)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	t := input.Tenant
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO tenant (id, slug, company_name, plan_type, is_active, domain_name, admin_email, custom_subdomain)
		VALUES ($1, $2, $3, $4, $5, $6, LOWER($7), $8)
		RETURNING id, slug, company_name, plan_type, is_active, domain_name, admin_email, custom_subdomain, created_at, updated_at
	`, t.ID, t.Slug, t.CompanyName, t.PlanType, t.IsActive, t.DomainName, t.AdminEmail, t.CustomSubdomain).Scan(
		&t.ID, &t.Slug, &t.CompanyName, &t.PlanType, &t.IsActive,
		&t.DomainName, &t.AdminEmail, &t.CustomSubdomain, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert tenant: %w", mapPgError(err))
	}

	a := input.Admin
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO admin_user (id, tenant_id, username, email, password, first_name, last_name, role)
		VALUES ($1, $2, LOWER($3), LOWER($4), $5, $6, $7, $8)
	`, a.ID, t.ID, a.Username, a.Email, a.Password, a.FirstName, a.LastName, a.Role); err != nil {
		return nil, fmt.Errorf("insert admin user: %w", mapPgError(err))
	}

	for _, m := range input.Modules {
		settings, err := json.Marshal(m.Settings)
		if err != nil {
			return nil, fmt.Errorf("marshal settings %s: %w", m.ModuleID, err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO tenant_module (tenant_id, module_id, name, description, enabled, version, settings)
			VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb)
		`, t.ID, m.ModuleID, m.Name, m.Description, m.Enabled, m.Version, settings); err != nil {
			return nil, fmt.Errorf("insert module %s: %w", m.ModuleID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	log.Info("tenant registered",
		logger.TenantID(t.ID),
		logger.Count(len(input.Modules)),
	)
	return &t, nil
}

// GetBySlug busca un tenant por su slug.
func (s *Store) GetBySlug(ctx context.Context, slug string) (*repository.Tenant, error) {
	var t repository.Tenant
	err := s.pool.QueryRow(ctx, `
		SELECT id, slug, company_name, plan_type, is_active, domain_name, admin_email, custom_subdomain, created_at, updated_at
		FROM tenant WHERE slug = $1
	`, slug).Scan(
		&t.ID, &t.Slug, &t.CompanyName, &t.PlanType, &t.IsActive,
		&t.DomainName, &t.AdminEmail, &t.CustomSubdomain, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListModules retorna los module grants de un tenant, en orden de module_id.
func (s *Store) ListModules(ctx context.Context, tenantID string) ([]repository.ModuleGrant, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT tenant_id, module_id, name, description, enabled, version, settings, created_at
		FROM tenant_module WHERE tenant_id = $1 ORDER BY module_id
	`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.ModuleGrant
	for rows.Next() {
		var m repository.ModuleGrant
		var settings []byte
		if err := rows.Scan(
			&m.TenantID, &m.ModuleID, &m.Name, &m.Description,
			&m.Enabled, &m.Version, &settings, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(settings) > 0 {
			if err := json.Unmarshal(settings, &m.Settings); err != nil {
				return nil, fmt.Errorf("settings %s: %w", m.ModuleID, err)
			}
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

var _ repository.TenantRepository = (*Store)(nil)
