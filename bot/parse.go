package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date layouts accepted for the start-time argument, tried in order.
// Bare unix timestamps are handled separately.
var startTimeLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
	"2006-01-02",
}

// ParseGuildList splits a comma-separated guild list, trimming whitespace
// and dropping empty entries. Order and case are preserved. At least two
// guilds are required.
func ParseGuildList(input string) ([]string, error) {
	var guilds []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			guilds = append(guilds, trimmed)
		}
	}

	if len(guilds) < 2 {
		return nil, fmt.Errorf("at least 2 guilds are required, separated by commas")
	}

	return guilds, nil
}

// ParseStartTime turns the start-time argument into epoch seconds. A purely
// numeric argument is taken as a unix timestamp; anything else must match
// one of the accepted date layouts, interpreted in local time.
func ParseStartTime(input string) (int64, error) {
	input = strings.TrimSpace(input)

	if isDigits(input) {
		return strconv.ParseInt(input, 10, 64)
	}

	for _, layout := range startTimeLayouts {
		if date, err := time.ParseInLocation(layout, input, time.Local); err == nil {
			return date.Unix(), nil
		}
	}

	return 0, fmt.Errorf("could not parse %q as a unix timestamp or date", input)
}

func isDigits(input string) bool {
	if input == "" {
		return false
	}
	for _, r := range input {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
