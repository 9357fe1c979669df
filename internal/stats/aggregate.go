package stats

import "github.com/dengas/devtimetracker/internal/models"

// Aggregate rolls the daily stats of every file up into one project-level
// map. Days appearing in several files are summed per field; files without
// daily entries contribute nothing.
func Aggregate(files []models.FileStats) models.DailyMap {
	daily := models.DailyMap{}
	for _, f := range files {
		for date, d := range f.DailyStats {
			entry := daily[date]
			entry.CodingTime = addSeconds(entry.CodingTime, d.CodingTime)
			entry.OpenTime = addSeconds(entry.OpenTime, d.OpenTime)
			daily[date] = entry
		}
	}
	return daily
}

// Totalize sums a daily map into totals. An empty map yields zeros, so
// removing every file also zeroes the project totals.
func Totalize(daily models.DailyMap) (codingTime, openTime int64) {
	for _, d := range daily {
		if d.CodingTime != nil {
			codingTime += *d.CodingTime
		}
		if d.OpenTime != nil {
			openTime += *d.OpenTime
		}
	}
	return codingTime, openTime
}

// recalcFileTotals overwrites a file's totals from its own daily map. Files
// without daily entries keep the totals the client supplied.
func recalcFileTotals(f *models.FileStats) {
	if len(f.DailyStats) == 0 {
		return
	}
	coding, open := Totalize(f.DailyStats)
	f.CodingTime = &coding
	f.OpenTime = &open
}

func addSeconds(a, b *int64) *int64 {
	if b == nil {
		return a
	}
	sum := *b
	if a != nil {
		sum += *a
	}
	return &sum
}
