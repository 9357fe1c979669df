package stats

import (
	"testing"

	"github.com/dengas/devtimetracker/internal/models"
)

func TestValidateFile(t *testing.T) {
	cases := []struct {
		name    string
		file    models.FileStats
		wantErr string
	}{
		{
			name:    "blank path",
			file:    models.FileStats{FilePath: "  ", Type: "JAVA", CodingTime: i64(1), OpenTime: i64(1)},
			wantErr: "File path is required",
		},
		{
			name:    "blank path wins over blank type",
			file:    models.FileStats{},
			wantErr: "File path is required",
		},
		{
			name:    "blank type",
			file:    models.FileStats{FilePath: "/p/A.java", CodingTime: i64(1), OpenTime: i64(1)},
			wantErr: "File type is required",
		},
		{
			name:    "no daily stats and no totals",
			file:    models.FileStats{FilePath: "/p/A.java", Type: "JAVA", CodingTime: i64(1)},
			wantErr: "Either daily stats or total times must be provided",
		},
		{
			name: "incomplete daily entry",
			file: models.FileStats{
				FilePath:   "/p/A.java",
				Type:       "JAVA",
				DailyStats: models.DailyMap{"2024-01-20": {CodingTime: i64(400)}},
			},
			wantErr: "Daily stats must have both coding time and open time",
		},
		{
			name: "bad date key",
			file: models.FileStats{
				FilePath:   "/p/A.java",
				Type:       "JAVA",
				DailyStats: models.DailyMap{"20-01-2024": {CodingTime: i64(400), OpenTime: i64(800)}},
			},
			wantErr: "Invalid daily stats date: 20-01-2024",
		},
		{
			name: "daily stats only",
			file: models.FileStats{
				FilePath:   "/p/A.java",
				Type:       "JAVA",
				DailyStats: models.DailyMap{"2024-01-20": {CodingTime: i64(400), OpenTime: i64(800)}},
			},
		},
		{
			name: "totals only",
			file: models.FileStats{FilePath: "/p/A.java", Type: "JAVA", CodingTime: i64(1), OpenTime: i64(1)},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateFile(&tc.file)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %q", tc.wantErr)
			}
			vErr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if vErr.Message != tc.wantErr {
				t.Fatalf("expected %q, got %q", tc.wantErr, vErr.Message)
			}
		})
	}
}
