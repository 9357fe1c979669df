package models

import "time"

// Team groups users under an optional team lead. Only the persisted shape
// exists; no team management endpoints are exposed yet.
type Team struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"` // Primary key.

	Name string `gorm:"type:text;not null" json:"name"` // Team name.

	TeamLeadID *string `gorm:"type:text;index" json:"teamLeadId"` // Leading user ID.
	TeamLead   *User   `gorm:"foreignKey:TeamLeadID" json:"-"`    // Leading user.

	Members []User `gorm:"many2many:team_members" json:"-"` // Team members.

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"` // Last update timestamp.
}
