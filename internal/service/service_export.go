package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/MKhiriev/health-keeper/models"
)

const emptyExportMessage = "No records stored yet."

// Export implements [RecordService]. The report groups records by date,
// most recent date first; records inside a group keep their stored order
// (already descending by timestamp).
func (s *recordService) Export(ctx context.Context, userID string, encrypted bool) string {
	doc := s.Load(ctx, userID, encrypted)

	if len(doc.Records) == 0 {
		return emptyExportMessage
	}

	byDate := make(map[string][]models.Record)
	dates := make([]string, 0)
	for _, record := range doc.Records {
		if _, seen := byDate[record.Date]; !seen {
			dates = append(dates, record.Date)
		}
		byDate[record.Date] = append(byDate[record.Date], record)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	var report strings.Builder
	fmt.Fprintf(&report, "Health log export: %d record(s)\n", len(doc.Records))
	for _, date := range dates {
		fmt.Fprintf(&report, "\n%s\n", date)
		for _, record := range byDate[date] {
			line := fmt.Sprintf("  [%s] %s", models.CategoryLabel(record.Category), record.Content)
			report.WriteString(strings.TrimRight(line, " "))
			report.WriteByte('\n')
		}
	}

	return report.String()
}
