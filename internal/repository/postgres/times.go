package postgres

import "time"

// Timestamp layouts seen in the wild: RFC3339 from our own writes, the bare
// CURRENT_TIMESTAMP format from column defaults.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

func parseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
