package models

import "time"

// User mirrors a Keycloak account that owns tracked projects.
type User struct {
	ID string `gorm:"type:text;primaryKey" json:"id"` // Keycloak subject.

	Email    string `gorm:"type:text;uniqueIndex" json:"email"` // Email address.
	Username string `gorm:"type:text" json:"username"`          // Display name.

	Teams []Team `gorm:"many2many:team_members" json:"-"` // Team memberships.

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"` // Last update timestamp.
}
