package classify

import "fmt"

// Category is the productivity classification of a domain or visit.
type Category string

const (
	Productive    Category = "productive"
	Distraction   Category = "distraction"
	Neutral       Category = "neutral"
	Uncategorized Category = "uncategorized"
)

// ParseCategory validates a category string from config, CLI, or API input.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case Productive, Distraction, Neutral, Uncategorized:
		return Category(s), nil
	default:
		return "", fmt.Errorf("unknown category %q (use productive, distraction, neutral, or uncategorized)", s)
	}
}

// Valid reports whether c is one of the four known categories.
func (c Category) Valid() bool {
	switch c {
	case Productive, Distraction, Neutral, Uncategorized:
		return true
	}
	return false
}
