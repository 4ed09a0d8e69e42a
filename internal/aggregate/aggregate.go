// Package aggregate reduces a day's visit records into per-category totals,
// a ranked domain list, and a focus score. Aggregation is a pure function of
// its inputs, so a day can always be recomputed from scratch.
package aggregate

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/runnerr0/focuswatch/internal/classify"
	"github.com/runnerr0/focuswatch/internal/storage"
)

// maxTopDomains bounds the ranked domain list in a daily aggregate.
const maxTopDomains = 10

// FocusScore returns the 0-100 ratio of productive time within
// focus-relevant (productive + distraction) time. Neutral and uncategorized
// time never affects the score.
func FocusScore(productiveSeconds, distractionSeconds int) int {
	total := productiveSeconds + distractionSeconds
	if total == 0 {
		return 0
	}
	score := int(math.Round(100 * float64(productiveSeconds) / float64(total)))
	if score > 100 {
		score = 100
	}
	return score
}

// Aggregate reduces entries into the daily summary for date. Durations are
// clamped at zero, unknown categories bucket into uncategorized, and the
// per-domain ranking keeps each domain's last-seen category. Identical
// inputs always yield identical output.
func Aggregate(entries []storage.Visit, date string) storage.Daily {
	var productive, distraction, neutral, uncategorized int

	type domainTotal struct {
		seconds  int
		category classify.Category
	}
	domains := make(map[string]*domainTotal)

	for _, entry := range entries {
		dur := entry.DurationSeconds
		if dur < 0 {
			dur = 0
		}

		switch entry.Category {
		case classify.Productive:
			productive += dur
		case classify.Distraction:
			distraction += dur
		case classify.Neutral:
			neutral += dur
		default:
			uncategorized += dur
		}

		if existing, ok := domains[entry.Domain]; ok {
			existing.seconds += dur
			existing.category = entry.Category
		} else {
			domains[entry.Domain] = &domainTotal{seconds: dur, category: entry.Category}
		}
	}

	top := make([]storage.TopDomain, 0, len(domains))
	for domain, total := range domains {
		top = append(top, storage.TopDomain{
			Domain:   domain,
			Seconds:  total.seconds,
			Category: total.category,
		})
	}
	// Descending by seconds, domain name as the stable tie-break so
	// recomputation is byte-identical.
	sort.Slice(top, func(i, j int) bool {
		if top[i].Seconds != top[j].Seconds {
			return top[i].Seconds > top[j].Seconds
		}
		return top[i].Domain < top[j].Domain
	})
	if len(top) > maxTopDomains {
		top = top[:maxTopDomains]
	}

	return storage.Daily{
		Date:                 date,
		TotalSeconds:         productive + distraction + neutral + uncategorized,
		ProductiveSeconds:    productive,
		DistractionSeconds:   distraction,
		NeutralSeconds:       neutral,
		UncategorizedSeconds: uncategorized,
		TopDomains:           top,
		FocusScore:           FocusScore(productive, distraction),
	}
}

// Recompute rebuilds the aggregate for date from its stored entries and
// writes it back through the gateway.
func Recompute(ctx context.Context, gw *storage.Gateway, date string) (storage.Daily, error) {
	entries, err := gw.EntriesForDate(ctx, date)
	if err != nil {
		return storage.Daily{}, fmt.Errorf("load entries for %s: %w", date, err)
	}

	agg := Aggregate(entries, date)
	if err := gw.SaveAggregate(ctx, agg); err != nil {
		return storage.Daily{}, fmt.Errorf("save aggregate for %s: %w", date, err)
	}
	return agg, nil
}

// DateString formats t as the YYYY-MM-DD key used for entries and
// aggregates.
func DateString(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatDuration renders seconds as "30s", "45m", "2h", or "2h 34m".
func FormatDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours := minutes / 60
	remaining := minutes % 60
	if remaining == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, remaining)
}
