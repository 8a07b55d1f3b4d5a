package parse

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ParseWeekdays parses a comma-separated list of weekday numbers
// (0 = Sunday .. 6 = Saturday) into a set. Empty input yields an empty
// set; whitespace around entries is ignored.
func ParseWeekdays(raw string) (map[time.Weekday]bool, error) {
	out := make(map[time.Weekday]bool)
	s := strings.TrimSpace(raw)
	if s == "" {
		return out, nil
	}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 6 {
			return nil, fmt.Errorf("invalid weekday %q: must be 0-6", part)
		}
		out[time.Weekday(n)] = true
	}
	return out, nil
}

// WeekdaySet converts a list of weekday numbers into a set, rejecting
// values outside 0..6.
func WeekdaySet(days []int) (map[time.Weekday]bool, error) {
	out := make(map[time.Weekday]bool)
	for _, n := range days {
		if n < 0 || n > 6 {
			return nil, fmt.Errorf("invalid weekday %d: must be 0-6", n)
		}
		out[time.Weekday(n)] = true
	}
	return out, nil
}

// FormatWeekdays renders a weekday set back into the comma-separated
// storage form, in ascending order.
func FormatWeekdays(days map[time.Weekday]bool) string {
	nums := make([]int, 0, len(days))
	for d, ok := range days {
		if ok {
			nums = append(nums, int(d))
		}
	}
	sort.Ints(nums)
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
