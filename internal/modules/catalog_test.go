package modules

import "testing"

func TestCatalog_Complete(t *testing.T) {
	if len(Catalog) != 8 {
		t.Fatalf("expected 8 catalog entries, got %d", len(Catalog))
	}

	enabled := map[string]bool{}
	for _, e := range Catalog {
		if e.ID == "" || e.Name == "" || e.Description == "" {
			t.Fatalf("incomplete entry: %+v", e)
		}
		if _, dup := enabled[e.ID]; dup {
			t.Fatalf("duplicate module id %q", e.ID)
		}
		enabled[e.ID] = e.Enabled
	}

	for _, id := range []string{"accounts", "contacts", "deals", "projects", "workflows", "tasks"} {
		if !enabled[id] {
			t.Fatalf("module %q should be enabled by default", id)
		}
	}
	for _, id := range []string{"support-tickets", "community"} {
		on, ok := enabled[id]
		if !ok {
			t.Fatalf("module %q missing from catalog", id)
		}
		if on {
			t.Fatalf("module %q should be disabled by default", id)
		}
	}
}

func TestGrantsFor(t *testing.T) {
	grants := GrantsFor("t-123")
	if len(grants) != len(Catalog) {
		t.Fatalf("expected %d grants, got %d", len(Catalog), len(grants))
	}
	for _, g := range grants {
		if g.TenantID != "t-123" {
			t.Fatalf("grant %q has wrong tenant id %q", g.ModuleID, g.TenantID)
		}
		if g.Version != Version {
			t.Fatalf("grant %q has version %q", g.ModuleID, g.Version)
		}
		if g.Settings == nil || len(g.Settings) != 0 {
			t.Fatalf("grant %q should start with empty settings", g.ModuleID)
		}
	}
}
