package service

import (
	"fmt"
	"strings"
	"time"

	"amorlias/internal/domain"
)

// ParseGranularity maps the "granularity" query value to a report
// granularity. Empty means monthly.
func ParseGranularity(v string) (domain.Granularity, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return domain.GranularityMonthly, nil
	}
	g := domain.Granularity(v)
	if !domain.ValidGranularities[g] {
		return "", fmt.Errorf("granularity %q: must be one of daily, weekly, monthly, quarterly, yearly: %w",
			v, domain.ErrInvalidArgument)
	}
	return g, nil
}

// periodStart truncates t (in UTC) to the start of its period. Weeks start
// on Monday.
func periodStart(t time.Time, g domain.Granularity) time.Time {
	y, m, d := t.UTC().Date()
	switch g {
	case domain.GranularityDaily:
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	case domain.GranularityWeekly:
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return day.AddDate(0, 0, -((int(day.Weekday()) + 6) % 7))
	case domain.GranularityQuarterly:
		return time.Date(y, time.Month((int(m)-1)/3*3+1), 1, 0, 0, 0, 0, time.UTC)
	case domain.GranularityYearly:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	}
}

// formatPeriod labels a period by its start.
func formatPeriod(start time.Time, g domain.Granularity) string {
	switch g {
	case domain.GranularityDaily:
		return start.Format("2006-01-02")
	case domain.GranularityWeekly:
		year, week := start.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case domain.GranularityQuarterly:
		return fmt.Sprintf("%d-Q%d", start.Year(), (int(start.Month())-1)/3+1)
	case domain.GranularityYearly:
		return start.Format("2006")
	default:
		return start.Format("2006-01")
	}
}

// periodEnd is the last second of the period beginning at start.
func periodEnd(start time.Time, g domain.Granularity) time.Time {
	switch g {
	case domain.GranularityDaily:
		return start.AddDate(0, 0, 1).Add(-time.Second)
	case domain.GranularityWeekly:
		return start.AddDate(0, 0, 7).Add(-time.Second)
	case domain.GranularityQuarterly:
		return start.AddDate(0, 3, 0).Add(-time.Second)
	case domain.GranularityYearly:
		return start.AddDate(1, 0, 0).Add(-time.Second)
	default:
		return start.AddDate(0, 1, 0).Add(-time.Second)
	}
}
