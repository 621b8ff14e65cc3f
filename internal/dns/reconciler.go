// Package dns lleva el estado del proveedor DNS hacia el estado deseado del
// tenant: un CNAME "<slug>.<base-domain>" apuntando al backend, proxied.
// Read-then-write idempotente; re-ejecutar contra un record ya correcto
// re-aplica el mismo update y reporta éxito.
package dns

import (
	"context"
	"errors"
	"fmt"

	"github.com/greenlanecloud/tenancy/internal/dns/cloudflare"
	"github.com/greenlanecloud/tenancy/internal/domain/repository"
	"github.com/greenlanecloud/tenancy/internal/observability/logger"
	"github.com/greenlanecloud/tenancy/internal/validation"
)

var (
	// ErrMissingConfig indica que falta el API token o el zone ID.
	// Se detecta antes de cualquier llamada de red.
	ErrMissingConfig = errors.New("dns: missing api token or zone id")

	// ErrUpstream indica que el proveedor DNS reportó un fallo en
	// list/create/update. El detalle del proveedor viaja envuelto.
	ErrUpstream = errors.New("dns: provider error")
)

// Action distingue el resultado de una reconciliación exitosa.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
)

// Config es la configuración resuelta del reconciler.
type Config struct {
	APIToken        string
	ZoneID          string
	BaseDomain      string
	TargetHostname  string
	StrictSubdomain bool
}

// RecordsAPI es la porción del proveedor DNS que usa el reconciler.
// Implementada por *cloudflare.Client.
type RecordsAPI interface {
	ListCNAME(ctx context.Context, name string) ([]cloudflare.Record, error)
	Create(ctx context.Context, rec cloudflare.Record) (*cloudflare.Record, error)
	Update(ctx context.Context, id string, rec cloudflare.Record) (*cloudflare.Record, error)
}

// Result describe una reconciliación exitosa.
type Result struct {
	Action     Action
	RecordName string
	Target     string
	// Matches es la cantidad de records que matchearon el nombre exacto.
	// Más de uno es una anomalía del lado del proveedor: se actualiza el
	// primero y se deja warning, los duplicados quedan intactos.
	Matches int
	Message string
}

// Reconciler aplica la convergencia para una zona.
type Reconciler struct {
	cfg Config
	api RecordsAPI
}

// NewReconciler arma un reconciler con configuración ya resuelta.
func NewReconciler(cfg Config, api RecordsAPI) *Reconciler {
	return &Reconciler{cfg: cfg, api: api}
}

// Reconcile hace converger el CNAME del tenant. No reintenta: el caller puede
// re-invocar con seguridad porque la operación es idempotente.
func (r *Reconciler) Reconcile(ctx context.Context, tenantSlug string) (*Result, error) {
	if r.cfg.APIToken == "" || r.cfg.ZoneID == "" {
		return nil, ErrMissingConfig
	}

	valid := validation.ValidSubdomain
	if r.cfg.StrictSubdomain {
		valid = validation.ValidSubdomainStrict
	}
	if !valid(tenantSlug) {
		return nil, fmt.Errorf("invalid tenant id %q: %w", tenantSlug, repository.ErrInvalidInput)
	}

	recordName := tenantSlug + "." + r.cfg.BaseDomain
	log := logger.From(ctx).With(
		logger.Component("dns.Reconciler"),
		logger.TenantSlug(tenantSlug),
		logger.Hostname(recordName),
	)

	desired := cloudflare.Record{
		Type:    "CNAME",
		Name:    recordName,
		Content: r.cfg.TargetHostname,
		TTL:     cloudflare.TTLAuto,
		Proxied: true,
	}

	matches, err := r.api.ListCNAME(ctx, recordName)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w: %w", recordName, ErrUpstream, err)
	}

	if len(matches) > 0 {
		if len(matches) > 1 {
			log.Warn("multiple CNAME records match the exact name; updating the first, duplicates left untouched",
				logger.Count(len(matches)),
			)
		}
		updated, err := r.api.Update(ctx, matches[0].ID, desired)
		if err != nil {
			return nil, fmt.Errorf("update %s: %w: %w", recordName, ErrUpstream, err)
		}
		log.Info("dns record updated", logger.RecordID(updated.ID))
		return &Result{
			Action:     ActionUpdated,
			RecordName: recordName,
			Target:     r.cfg.TargetHostname,
			Matches:    len(matches),
			Message:    fmt.Sprintf("Updated CNAME %s -> %s", recordName, r.cfg.TargetHostname),
		}, nil
	}

	created, err := r.api.Create(ctx, desired)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w: %w", recordName, ErrUpstream, err)
	}
	log.Info("dns record created", logger.RecordID(created.ID))
	return &Result{
		Action:     ActionCreated,
		RecordName: recordName,
		Target:     r.cfg.TargetHostname,
		Matches:    0,
		Message:    fmt.Sprintf("Created CNAME %s -> %s", recordName, r.cfg.TargetHostname),
	}, nil
}
