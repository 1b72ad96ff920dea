package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/health-keeper/models"
)

// ResolveDateExpression turns a caller-supplied date expression into a
// canonical "YYYY-MM-DD" day string relative to now.
//
// Accepted forms:
//   - "" or "today": the current day
//   - "yesterday": the previous day
//   - "DD/MM/YY" and "DD/MM/YYYY"
//   - "YYYY-MM-DD": passed through after validation
//
// Anything else is an error; free-text date understanding belongs to the
// external classifier, not to this helper.
func ResolveDateExpression(expression string, now time.Time) (string, error) {
	expression = strings.TrimSpace(strings.ToLower(expression))

	switch expression {
	case "", "today", "hoy":
		return now.Format(models.DateLayout), nil
	case "yesterday", "ayer":
		return now.AddDate(0, 0, -1).Format(models.DateLayout), nil
	}

	for _, layout := range []string{"02/01/2006", "02/01/06", models.DateLayout} {
		if parsed, err := time.Parse(layout, expression); err == nil {
			return parsed.Format(models.DateLayout), nil
		}
	}

	return "", fmt.Errorf("unrecognized date expression: %q", expression)
}
