// Package modules define el catálogo fijo de módulos del CRM que se siembra
// al aprovisionar un tenant.
package modules

import "github.com/greenlanecloud/tenancy/internal/domain/repository"

// Version es la versión inicial asignada a todo module grant.
const Version = "1.0.0"

// Entry es una entrada estática del catálogo.
type Entry struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
}

// Catalog es el catálogo completo, en el orden en que se insertan los grants.
// support-tickets y community son premium/opt-in: nacen deshabilitados.
var Catalog = []Entry{
	{ID: "accounts", Name: "Accounts", Description: "Manage customer accounts and organizations", Enabled: true},
	{ID: "contacts", Name: "Contacts", Description: "Track contacts and their account relationships", Enabled: true},
	{ID: "deals", Name: "Deals", Description: "Sales pipeline and deal tracking", Enabled: true},
	{ID: "projects", Name: "Projects", Description: "Project planning and delivery tracking", Enabled: true},
	{ID: "support-tickets", Name: "Support Tickets", Description: "Customer support ticketing", Enabled: false},
	{ID: "community", Name: "Community", Description: "Customer community and discussions", Enabled: false},
	{ID: "workflows", Name: "Workflows", Description: "Visual workflow rule builder", Enabled: true},
	{ID: "tasks", Name: "Tasks", Description: "Task management and reminders", Enabled: true},
}

// GrantsFor materializa el catálogo como module grants para un tenant.
func GrantsFor(tenantID string) []repository.ModuleGrant {
	out := make([]repository.ModuleGrant, 0, len(Catalog))
	for _, e := range Catalog {
		out = append(out, repository.ModuleGrant{
			TenantID:    tenantID,
			ModuleID:    e.ID,
			Name:        e.Name,
			Description: e.Description,
			Enabled:     e.Enabled,
			Version:     Version,
			Settings:    map[string]any{},
		})
	}
	return out
}
