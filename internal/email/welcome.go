package email

import (
	"context"
	"fmt"

	"github.com/greenlanecloud/tenancy/internal/domain/repository"
)

// WelcomeNotifier manda el mail de bienvenida con la URL del tenant.
// El password nunca viaja por email: se muestra una sola vez en la consola
// del operador.
type WelcomeNotifier struct {
	sender Sender
}

// NewWelcomeNotifier arma el notifier sobre cualquier Sender.
func NewWelcomeNotifier(sender Sender) *WelcomeNotifier {
	return &WelcomeNotifier{sender: sender}
}

// TenantProvisioned envía el mail de bienvenida al admin del tenant.
func (n *WelcomeNotifier) TenantProvisioned(_ context.Context, t *repository.Tenant) error {
	url := "https://" + t.DomainName
	subject := fmt.Sprintf("Your %s workspace is ready", t.CompanyName)

	text := fmt.Sprintf(
		"Hi,\n\nYour CRM workspace for %s is ready at %s.\n\nSign in with this address (%s) and the password your operator shared with you.\n",
		t.CompanyName, url, t.AdminEmail,
	)
	html := fmt.Sprintf(
		"<p>Hi,</p><p>Your CRM workspace for <strong>%s</strong> is ready at <a href=%q>%s</a>.</p><p>Sign in with this address (%s) and the password your operator shared with you.</p>",
		t.CompanyName, url, url, t.AdminEmail,
	)

	return n.sender.Send(t.AdminEmail, subject, html, text)
}
