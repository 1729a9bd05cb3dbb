package retriever

import "strings"

// weekdays in fixed enumeration order. Queries mentioning two days get
// no special handling: the first match in this order wins.
var weekdays = [...]string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// DetectDay scans the query case-insensitively for a weekday name and
// returns it capitalized. At most one day is detected.
func DetectDay(query string) (string, bool) {
	lower := strings.ToLower(query)
	for _, day := range weekdays {
		if strings.Contains(lower, strings.ToLower(day)) {
			return day, true
		}
	}
	return "", false
}
