package models

import "gorm.io/datatypes"

// DailyStats holds one day of recorded activity, in seconds.
type DailyStats struct {
	CodingTime *int64 `json:"codingTime"` // Seconds spent actively editing.
	OpenTime   *int64 `json:"openTime"`   // Seconds the editor was open.
}

// DailyMap keys daily stats by ISO date ("2006-01-02").
type DailyMap map[string]DailyStats

// ProjectDailyStat is one persisted day of project-level activity.
type ProjectDailyStat struct {
	ProjectID string         `gorm:"type:text;primaryKey"` // Owning project ID.
	Date      datatypes.Date `gorm:"primaryKey"`           // Activity day.

	CodingTime int64 `gorm:"not null;default:0"` // Seconds spent actively editing.
	OpenTime   int64 `gorm:"not null;default:0"` // Seconds the editor was open.
}

// FileDailyStat is one persisted day of file-level activity.
type FileDailyStat struct {
	FileID string         `gorm:"type:text;primaryKey"` // Owning file ID.
	Date   datatypes.Date `gorm:"primaryKey"`           // Activity day.

	CodingTime int64 `gorm:"not null;default:0"` // Seconds spent actively editing.
	OpenTime   int64 `gorm:"not null;default:0"` // Seconds the file was open.
}
