package models

// ProjectStats is the tracked state of one project.
type ProjectStats struct {
	ProjectID string `gorm:"type:text;primaryKey" json:"projectId"` // UUID.

	ProjectPath        string `gorm:"type:text;not null" json:"projectPath"`            // Filesystem path of the project.
	GithubBadgeVisible bool   `gorm:"not null;default:false" json:"githubBadgeVisible"` // Whether the public badge is served.

	TotalCodingTime int64 `gorm:"not null;default:0" json:"totalCodingTime"` // Sum of daily coding seconds.
	TotalOpenTime   int64 `gorm:"not null;default:0" json:"totalOpenTime"`   // Sum of daily open seconds.

	UserID *string `gorm:"type:text;index" json:"-"`    // Owning user ID; nil on legacy rows.
	User   *User   `gorm:"foreignKey:UserID" json:"-"` // Owning user.

	DailyStats DailyMap    `gorm:"-" json:"dailyStats"` // Per-day activity, stored in project_daily_stats.
	Files      []FileStats `gorm:"-" json:"files"`      // Per-file activity, stored in file_stats.
}
