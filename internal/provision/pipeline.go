package provision

import (
	"context"

	"github.com/greenlanecloud/tenancy/internal/dns"
	"github.com/greenlanecloud/tenancy/internal/domain/repository"
	"github.com/greenlanecloud/tenancy/internal/observability/logger"
)

// State es el estado del pipeline de setup. La máquina es lineal:
// registering → reconciling_dns → done, con failed como terminal de error.
type State string

const (
	StateRegistering    State = "registering"
	StateReconcilingDNS State = "reconciling_dns"
	StateDone           State = "done"
	StateFailed         State = "failed"
)

// Reconciler es la porción del reconciler DNS que usa el pipeline.
// Implementada por *dns.Reconciler.
type Reconciler interface {
	Reconcile(ctx context.Context, tenantSlug string) (*dns.Result, error)
}

// Notifier avisa al administrador que su tenant quedó listo. Best-effort:
// un fallo acá nunca falla el pipeline, el aprovisionamiento ya commiteó.
type Notifier interface {
	TenantProvisioned(ctx context.Context, tenant *repository.Tenant) error
}

// Outcome es el resultado combinado de una corrida del pipeline.
// FailedAt indica en qué estado falló cuando State es failed.
type Outcome struct {
	State        State
	FailedAt     State
	Registration *Registration
	DNS          *dns.Result
}

// Pipeline corre el registrar y después el reconciler, estrictamente en
// secuencia. No reintenta: re-invocar es una corrida nueva completa, segura
// porque el registrar falla limpio por conflicto y el reconciler es
// idempotente.
type Pipeline struct {
	registrar  *Registrar
	reconciler Reconciler
	notifier   Notifier // opcional
}

// NewPipeline arma el pipeline. notifier puede ser nil.
func NewPipeline(registrar *Registrar, reconciler Reconciler, notifier Notifier) *Pipeline {
	return &Pipeline{registrar: registrar, reconciler: reconciler, notifier: notifier}
}

// Run ejecuta el setup completo para un tenant. El error retornado es el del
// paso que falló; Outcome indica hasta dónde llegó.
func (p *Pipeline) Run(ctx context.Context, in RegisterInput) (*Outcome, error) {
	log := logger.From(ctx).With(
		logger.Component("provision.Pipeline"),
		logger.TenantSlug(in.TenantID),
	)
	out := &Outcome{State: StateRegistering}

	reg, err := p.registrar.Register(ctx, in)
	if err != nil {
		// Sin tenant commiteado no hay nada a qué apuntar el DNS.
		out.State = StateFailed
		out.FailedAt = StateRegistering
		return out, err
	}
	out.Registration = reg

	out.State = StateReconcilingDNS
	res, err := p.reconciler.Reconcile(ctx, in.TenantID)
	if err != nil {
		out.State = StateFailed
		out.FailedAt = StateReconcilingDNS
		return out, err
	}
	out.DNS = res

	if p.notifier != nil {
		if err := p.notifier.TenantProvisioned(ctx, reg.Tenant); err != nil {
			log.Warn("welcome notification failed", logger.Err(err))
		}
	}

	out.State = StateDone
	log.Info("tenant setup complete",
		logger.Hostname(reg.Tenant.DomainName),
		logger.String("dns_action", string(res.Action)),
	)
	return out, nil
}
