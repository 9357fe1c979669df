package security

import (
	"encoding/json"
	"testing"
)

func TestNewPrincipalFromKeycloakClaims(t *testing.T) {
	raw := `{
		"sub": "user-1",
		"email": "dev@example.com",
		"name": "Dev One",
		"realm_access": {"roles": ["ADMIN"]},
		"resource_access": {"devTimeTracker-rest-api": {"roles": ["client_admin"]}}
	}`
	var claims Claims
	if err := json.Unmarshal([]byte(raw), &claims); err != nil {
		t.Fatalf("unmarshal claims: %v", err)
	}
	p := NewPrincipal(&claims)
	if p.ID != "user-1" {
		t.Fatalf("expected subject user-1, got %q", p.ID)
	}
	if p.Email != "dev@example.com" || p.Name != "Dev One" {
		t.Fatalf("unexpected identity fields: %+v", p)
	}
	if !p.IsClientAdmin() {
		t.Fatal("expected client admin")
	}
	if !p.HasRealmRole("ADMIN") {
		t.Fatal("expected realm role ADMIN")
	}
}

func TestClientAdminIgnoresOtherRoleSpaces(t *testing.T) {
	raw := `{
		"sub": "user-2",
		"realm_access": {"roles": ["client_admin"]},
		"resource_access": {"other-client": {"roles": ["client_admin"]}}
	}`
	var claims Claims
	if err := json.Unmarshal([]byte(raw), &claims); err != nil {
		t.Fatalf("unmarshal claims: %v", err)
	}
	p := NewPrincipal(&claims)
	if p.IsClientAdmin() {
		t.Fatal("roles outside the service client must not grant admin")
	}
}

func TestNewPrincipalWithoutRoleClaims(t *testing.T) {
	var claims Claims
	if err := json.Unmarshal([]byte(`{"sub": "user-3"}`), &claims); err != nil {
		t.Fatalf("unmarshal claims: %v", err)
	}
	p := NewPrincipal(&claims)
	if p.IsClientAdmin() || p.HasRealmRole("ADMIN") {
		t.Fatal("missing role claims must yield no roles")
	}
	if len(p.ClientRoles) != 0 || len(p.RealmRoles) != 0 {
		t.Fatalf("expected empty role lists, got %+v", p)
	}
}
