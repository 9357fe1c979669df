package stats

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/dengas/devtimetracker/internal/models"
)

// parseDate converts an ISO date key into a column value. Keys reaching this
// point were validated with the same layout.
func parseDate(key string) (datatypes.Date, error) {
	t, err := time.Parse(dateLayout, key)
	if err != nil {
		return datatypes.Date{}, fmt.Errorf("stats: parse date %q: %w", key, err)
	}
	return datatypes.Date(t), nil
}

func dateKey(d datatypes.Date) string {
	return time.Time(d).Format(dateLayout)
}

// replaceProjectDaily rewrites the persisted day rows for one project.
func replaceProjectDaily(tx *gorm.DB, projectID string, daily models.DailyMap) error {
	if errDelete := tx.Where("project_id = ?", projectID).Delete(&models.ProjectDailyStat{}).Error; errDelete != nil {
		return fmt.Errorf("stats: delete project daily stats: %w", errDelete)
	}
	rows := make([]models.ProjectDailyStat, 0, len(daily))
	for key, d := range daily {
		date, errDate := parseDate(key)
		if errDate != nil {
			return errDate
		}
		rows = append(rows, models.ProjectDailyStat{
			ProjectID:  projectID,
			Date:       date,
			CodingTime: seconds(d.CodingTime),
			OpenTime:   seconds(d.OpenTime),
		})
	}
	if len(rows) == 0 {
		return nil
	}
	if errCreate := tx.Create(&rows).Error; errCreate != nil {
		return fmt.Errorf("stats: insert project daily stats: %w", errCreate)
	}
	return nil
}

// replaceFileDaily rewrites the persisted day rows for one file.
func replaceFileDaily(tx *gorm.DB, fileID string, daily models.DailyMap) error {
	if errDelete := tx.Where("file_id = ?", fileID).Delete(&models.FileDailyStat{}).Error; errDelete != nil {
		return fmt.Errorf("stats: delete file daily stats: %w", errDelete)
	}
	rows := make([]models.FileDailyStat, 0, len(daily))
	for key, d := range daily {
		date, errDate := parseDate(key)
		if errDate != nil {
			return errDate
		}
		rows = append(rows, models.FileDailyStat{
			FileID:     fileID,
			Date:       date,
			CodingTime: seconds(d.CodingTime),
			OpenTime:   seconds(d.OpenTime),
		})
	}
	if len(rows) == 0 {
		return nil
	}
	if errCreate := tx.Create(&rows).Error; errCreate != nil {
		return fmt.Errorf("stats: insert file daily stats: %w", errCreate)
	}
	return nil
}

// loadProjectDaily attaches the persisted day rows to a project.
func loadProjectDaily(db *gorm.DB, project *models.ProjectStats) error {
	var rows []models.ProjectDailyStat
	if errFind := db.Where("project_id = ?", project.ProjectID).Find(&rows).Error; errFind != nil {
		return fmt.Errorf("stats: load project daily stats: %w", errFind)
	}
	daily := models.DailyMap{}
	for _, row := range rows {
		coding, open := row.CodingTime, row.OpenTime
		daily[dateKey(row.Date)] = models.DailyStats{CodingTime: &coding, OpenTime: &open}
	}
	project.DailyStats = daily
	return nil
}

// loadFileDaily attaches the persisted day rows to a file.
func loadFileDaily(db *gorm.DB, file *models.FileStats) error {
	var rows []models.FileDailyStat
	if errFind := db.Where("file_id = ?", file.ID).Find(&rows).Error; errFind != nil {
		return fmt.Errorf("stats: load file daily stats: %w", errFind)
	}
	daily := models.DailyMap{}
	for _, row := range rows {
		coding, open := row.CodingTime, row.OpenTime
		daily[dateKey(row.Date)] = models.DailyStats{CodingTime: &coding, OpenTime: &open}
	}
	file.DailyStats = daily
	return nil
}

func seconds(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
