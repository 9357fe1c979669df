package models

// FileStats is per-file activity inside a project.
type FileStats struct {
	ID string `gorm:"type:text;primaryKey" json:"id"` // UUID.

	ProjectID string `gorm:"type:text;index" json:"-"` // Owning project ID.

	FilePath string `gorm:"type:text;not null" json:"filePath"` // Path relative to the project root.
	Type     string `gorm:"type:text;not null" json:"type"`     // File type or language.

	CodingTime *int64 `json:"codingTime"` // Total coding seconds; nil when only daily stats were sent.
	OpenTime   *int64 `json:"openTime"`   // Total open seconds; nil when only daily stats were sent.

	DailyStats DailyMap `gorm:"-" json:"dailyStats"` // Per-day activity, stored in file_daily_stats.
}
