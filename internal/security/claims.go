package security

import "github.com/golang-jwt/jwt/v5"

// AdminResource is the Keycloak client whose roles gate admin access.
const AdminResource = "devTimeTracker-rest-api"

// ClientAdminRole grants access to every tracked project and user.
const ClientAdminRole = "client_admin"

// RoleList is the {"roles": [...]} object Keycloak nests role names in.
type RoleList struct {
	Roles []string `json:"roles"`
}

// Claims is the subset of a Keycloak access token the service consumes.
type Claims struct {
	jwt.RegisteredClaims

	Email          string              `json:"email"`
	Name           string              `json:"name"`
	RealmAccess    RoleList            `json:"realm_access"`
	ResourceAccess map[string]RoleList `json:"resource_access"`
}

// Principal is the authenticated caller derived from verified claims.
type Principal struct {
	ID          string
	Email       string
	Name        string
	ClientRoles []string
	RealmRoles  []string
}

// NewPrincipal flattens verified claims into a Principal.
func NewPrincipal(c *Claims) *Principal {
	return &Principal{
		ID:          c.Subject,
		Email:       c.Email,
		Name:        c.Name,
		ClientRoles: c.ResourceAccess[AdminResource].Roles,
		RealmRoles:  c.RealmAccess.Roles,
	}
}

// IsClientAdmin reports whether the caller holds the client admin role.
func (p *Principal) IsClientAdmin() bool {
	return hasRole(p.ClientRoles, ClientAdminRole)
}

// HasRealmRole reports whether the caller holds a realm-level role. Realm
// roles and client roles are separate spaces and are never mixed.
func (p *Principal) HasRealmRole(role string) bool {
	return hasRole(p.RealmRoles, role)
}

func hasRole(roles []string, want string) bool {
	for _, r := range roles {
		if r == want {
			return true
		}
	}
	return false
}
