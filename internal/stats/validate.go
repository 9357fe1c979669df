package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/dengas/devtimetracker/internal/models"
)

const dateLayout = "2006-01-02"

// ValidateFile checks one incoming file entry. Rules apply in order and the
// first failure wins; nothing is persisted for a rejected file.
func ValidateFile(f *models.FileStats) error {
	if strings.TrimSpace(f.FilePath) == "" {
		return &ValidationError{Message: "File path is required"}
	}
	if strings.TrimSpace(f.Type) == "" {
		return &ValidationError{Message: "File type is required"}
	}
	if len(f.DailyStats) == 0 {
		if f.CodingTime == nil || f.OpenTime == nil {
			return &ValidationError{Message: "Either daily stats or total times must be provided"}
		}
		return nil
	}
	for date, d := range f.DailyStats {
		if d.CodingTime == nil || d.OpenTime == nil {
			return &ValidationError{Message: "Daily stats must have both coding time and open time"}
		}
		if _, err := time.Parse(dateLayout, date); err != nil {
			return &ValidationError{Message: fmt.Sprintf("Invalid daily stats date: %s", date)}
		}
	}
	return nil
}
