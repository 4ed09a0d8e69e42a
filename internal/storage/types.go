package storage

import (
	"time"

	"github.com/runnerr0/focuswatch/internal/classify"
)

// Visit is one completed, attributable visit to a single tab/URL. Visits are
// immutable once written; only retention cleanup or an explicit delete-all
// removes them.
type Visit struct {
	ID              string            `json:"id"`
	Domain          string            `json:"domain"`
	URL             string            `json:"url"`
	Title           string            `json:"title"`
	Category        classify.Category `json:"category"`
	StartedAt       time.Time         `json:"started_at"`
	DurationSeconds int               `json:"duration_seconds"`
	Date            string            `json:"date"` // YYYY-MM-DD
}

// Session describes the visit currently in progress. All fields are
// populated together when a session starts; a session is never partially
// present.
type Session struct {
	TabID     int               `json:"tab_id"`
	Domain    string            `json:"domain"`
	URL       string            `json:"url"`
	Title     string            `json:"title"`
	Category  classify.Category `json:"category"`
	StartedAt time.Time         `json:"started_at"`
}

// State is the single durable tracking state record. Session == nil means no
// visit is in progress.
type State struct {
	Tracking bool     `json:"is_tracking"`
	Idle     bool     `json:"is_idle"`
	Session  *Session `json:"session,omitempty"`
}

// DefaultState is the state assumed when nothing has been persisted yet.
func DefaultState() State {
	return State{Tracking: true}
}

// TopDomain is one entry in a daily aggregate's ranked domain list.
type TopDomain struct {
	Domain   string            `json:"domain"`
	Seconds  int               `json:"seconds"`
	Category classify.Category `json:"category"`
}

// Daily is the derived per-calendar-day summary of all visits. It is always
// recomputed from the visit list for its date, never hand-edited.
type Daily struct {
	Date                 string      `json:"date"`
	TotalSeconds         int         `json:"total_seconds"`
	ProductiveSeconds    int         `json:"productive_seconds"`
	DistractionSeconds   int         `json:"distraction_seconds"`
	NeutralSeconds       int         `json:"neutral_seconds"`
	UncategorizedSeconds int         `json:"uncategorized_seconds"`
	TopDomains           []TopDomain `json:"top_domains"`
	FocusScore           int         `json:"focus_score"`
}

// Settings holds user-tunable tracking preferences.
type Settings struct {
	TrackingEnabled    bool `json:"tracking_enabled"`
	IdleTimeoutMinutes int  `json:"idle_timeout_minutes"`
	DataRetentionDays  int  `json:"data_retention_days"`
	DailyGoalMinutes   int  `json:"daily_goal_minutes"`
}

// DefaultSettings returns the settings assumed before the user changes
// anything.
func DefaultSettings() Settings {
	return Settings{
		TrackingEnabled:    true,
		IdleTimeoutMinutes: 2,
		DataRetentionDays:  30,
		DailyGoalMinutes:   360,
	}
}

// Export is a full JSON-serializable snapshot of all tracked data.
type Export struct {
	Entries    map[string][]Visit `json:"entries"`
	Aggregates map[string]Daily   `json:"aggregates"`
	Settings   Settings           `json:"settings"`
	Rules      []classify.Rule    `json:"custom_rules"`
	ExportedAt time.Time          `json:"exported_at"`
}
