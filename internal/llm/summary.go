package llm

import (
	"regexp"
	"strconv"
	"strings"
)

// SummarySections holds the semi-structured fields of a citizen summary
// response. The summary prompt asks for labeled text sections rather than
// JSON, so this is parsed line by line, not through ParseStructured.
type SummarySections struct {
	English       string
	Hindi         string
	Actionability int
	Complexity    string
}

var (
	actionabilityOutOfTen = regexp.MustCompile(`(\d+)\s*/\s*10`)
	firstInteger          = regexp.MustCompile(`(\d+)`)
	summaryValueNoise     = regexp.MustCompile("[*`\"]")
)

// ParseSummarySections accumulates lines into the english/hindi sections and
// pulls the actionability and complexity values from their marker lines.
// Marker lines inside an open section are also kept in that section's text,
// matching how downstream consumers have always seen the summaries.
func ParseSummarySections(raw string) SummarySections {
	result := SummarySections{Actionability: -1}
	if strings.TrimSpace(raw) == "" {
		return result
	}

	var section string
	var buf []string

	flush := func() {
		if section == "" || len(buf) == 0 {
			return
		}
		text := strings.TrimSpace(strings.Join(buf, "\n"))
		if section == "english" {
			result.English = text
		} else {
			result.Hindi = text
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		low := strings.ToLower(line)

		if strings.Contains(low, "english summary") {
			flush()
			section = "english"
			buf = nil
			continue
		}
		if strings.Contains(low, "hindi summary") || strings.Contains(line, "हिंदी") {
			flush()
			section = "hindi"
			buf = nil
			continue
		}
		if strings.Contains(low, "actionability score") {
			if m := actionabilityOutOfTen.FindStringSubmatch(line); m != nil {
				if v, err := strconv.Atoi(m[1]); err == nil {
					result.Actionability = v
				}
			} else if m := firstInteger.FindStringSubmatch(line); m != nil {
				if v, err := strconv.Atoi(m[1]); err == nil {
					result.Actionability = v
				}
			}
		}
		if strings.Contains(low, "complexity level") {
			if idx := strings.Index(line, ":"); idx >= 0 {
				val := strings.TrimSpace(line[idx+1:])
				result.Complexity = strings.TrimSpace(summaryValueNoise.ReplaceAllString(val, ""))
			}
		}
		if section != "" {
			buf = append(buf, line)
		}
	}
	flush()

	return result
}
