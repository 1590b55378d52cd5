package policy

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/civiclens/backend/internal/storage/models"
)

// Card is a citizen-facing summary of one notification.
type Card struct {
	SummaryEnglish string
	SummaryHindi   string
	WhatChanged    string
	WhoAffected    string
	WhatToDo       string
}

// Gap describes one missing-information item along with the question a
// citizen could file under the Right to Information Act to resolve it.
type Gap struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	RTIQuestion string `json:"rti_question"`
}

var changeKeywords = []string{"amend", "replace", "effective", "new", "revised", "update", "modify"}

type partyKeywords struct {
	party    string
	keywords []string
}

var affectedParties = []partyKeywords{
	{"taxpayers", []string{"taxpayer", "tax", "income", "gst", "revenue"}},
	{"businesses", []string{"company", "business", "enterprise", "corporate", "msme"}},
	{"citizens", []string{"citizen", "public", "individual", "person"}},
	{"students", []string{"student", "education", "school", "university"}},
	{"farmers", []string{"farmer", "agriculture", "crop", "rural"}},
	{"banks", []string{"bank", "financial", "rbi", "sebi", "finance"}},
}

var actionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)shall[^.]*`),
	regexp.MustCompile(`(?i)must[^.]*`),
	regexp.MustCompile(`(?i)required to[^.]*`),
	regexp.MustCompile(`(?i)need to[^.]*`),
	regexp.MustCompile(`(?i)should[^.]*`),
}

var changePatterns = buildChangePatterns()

func buildChangePatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(changeKeywords))
	for _, keyword := range changeKeywords {
		patterns = append(patterns, regexp.MustCompile(`(?i)`+keyword+`[^.]*`))
	}
	return patterns
}

// Summarizer derives policy cards from notification text with keyword and
// pattern rules. It is the fallback path when the language model is not
// configured or its response cannot be used.
type Summarizer struct{}

func NewSummarizer() *Summarizer {
	return &Summarizer{}
}

func (s *Summarizer) GenerateCard(text, title string) Card {
	whatChanged := extractChanges(text, title)
	whoAffected := extractAffectedParties(text, title)
	whatToDo := extractActions(text, title)

	english := createEnglishSummary(whatChanged, whoAffected, title)

	return Card{
		SummaryEnglish: english,
		SummaryHindi:   translateToHindi(english),
		WhatChanged:    whatChanged,
		WhoAffected:    whoAffected,
		WhatToDo:       whatToDo,
	}
}

func extractChanges(text, title string) string {
	var changes []string
	for _, pattern := range changePatterns {
		matches := pattern.FindAllString(text, 2)
		changes = append(changes, matches...)
	}

	if len(changes) == 0 {
		switch {
		case strings.Contains(title, "GST"):
			changes = append(changes, "GST rates and exemptions have been updated")
		case strings.Contains(title, "Income Tax") || strings.Contains(title, "Income-Tax"):
			changes = append(changes, "Income tax provisions and procedures have been modified")
		case strings.Contains(title, "SEBI"):
			changes = append(changes, "Securities regulations and compliance requirements updated")
		case strings.Contains(title, "Education"):
			changes = append(changes, "Educational policies and implementation guidelines revised")
		case strings.Contains(title, "Land"):
			changes = append(changes, "Land records and property documentation procedures updated")
		default:
			changes = append(changes, "Policy provisions have been updated")
		}
	}

	if len(changes) > 3 {
		changes = changes[:3]
	}
	return strings.Join(changes, ". ")
}

func extractAffectedParties(text, title string) string {
	combined := strings.ToLower(text) + " " + strings.ToLower(title)

	var affected []string
	for _, entry := range affectedParties {
		for _, keyword := range entry.keywords {
			if strings.Contains(combined, keyword) {
				affected = append(affected, entry.party)
				break
			}
		}
	}

	if len(affected) == 0 {
		titleLower := strings.ToLower(title)
		switch {
		case containsAny(titleLower, "gst", "tax", "income"):
			affected = append(affected, "taxpayers")
		case containsAny(titleLower, "sebi", "securities", "listing"):
			affected = append(affected, "businesses")
		case containsAny(titleLower, "education", "student"):
			affected = append(affected, "students")
		default:
			affected = append(affected, "citizens")
		}
	}

	return strings.Join(affected, ", ")
}

func extractActions(text, title string) string {
	var actions []string
	for _, pattern := range actionPatterns {
		matches := pattern.FindAllString(text, 2)
		actions = append(actions, matches...)
	}

	if len(actions) == 0 {
		switch {
		case strings.Contains(title, "GST"):
			actions = append(actions,
				"Update GST compliance procedures",
				"Review exemption eligibility for applicable items")
		case strings.Contains(title, "Income Tax"):
			actions = append(actions,
				"Prepare for new tax filing procedures",
				"Update accounting systems for new provisions")
		case strings.Contains(title, "SEBI"):
			actions = append(actions,
				"Review and update compliance frameworks",
				"Ensure adherence to new disclosure requirements")
		case strings.Contains(title, "Education"):
			actions = append(actions,
				"Implement new curriculum guidelines",
				"Train staff on updated procedures")
		default:
			actions = append(actions,
				"Review policy changes and ensure compliance",
				"Update internal procedures as required")
		}
	}

	if len(actions) > 3 {
		actions = actions[:3]
	}
	return strings.Join(actions, ". ")
}

func createEnglishSummary(whatChanged, whoAffected, title string) string {
	var parts []string

	switch {
	case strings.Contains(title, "GST"):
		parts = append(parts, "GST notification updates tax exemptions and rates.")
	case strings.Contains(title, "Income Tax"), strings.Contains(title, "Income-Tax"):
		parts = append(parts, "Income Tax Act introduces new provisions and procedures.")
	case strings.Contains(title, "SEBI"):
		parts = append(parts, "SEBI regulations update compliance requirements for listed entities.")
	case strings.Contains(title, "Education"):
		parts = append(parts, "Education policy implements new curriculum and assessment frameworks.")
	case strings.Contains(title, "Land"):
		parts = append(parts, "Land records modernization introduces digital verification systems.")
	default:
		parts = append(parts, fmt.Sprintf("Policy update: %s...", truncate(title, 100)))
	}

	parts = append(parts, fmt.Sprintf("Key changes: %s...", truncate(whatChanged, 150)))
	parts = append(parts, fmt.Sprintf("Affects: %s", whoAffected))

	summary := strings.Join(parts, " ")
	if len(summary) > 300 {
		return summary[:300] + "..."
	}
	return summary
}

// hindiTerms maps common policy vocabulary. A full translation pipeline is
// out of scope; this keeps the Hindi field useful for key terms.
var hindiTerms = []struct{ english, hindi string }{
	{"Income Tax", "आयकर"},
	{"GST", "जीएसटी"},
	{"taxpayers", "करदाता"},
	{"tax", "कर"},
	{"policy", "नीति"},
	{"notification", "अधिसूचना"},
	{"update", "अपडेट"},
	{"changes", "बदलाव"},
	{"citizens", "नागरिक"},
	{"businesses", "व्यवसाय"},
	{"students", "छात्र"},
	{"education", "शिक्षा"},
	{"compliance", "अनुपालन"},
	{"requirements", "आवश्यकताएं"},
	{"effective", "प्रभावी"},
	{"implementation", "कार्यान्वयन"},
}

func translateToHindi(text string) string {
	translated := text
	for _, term := range hindiTerms {
		translated = strings.ReplaceAll(translated, term.english, term.hindi)
	}
	if translated == text {
		return fmt.Sprintf("नीति अपडेट: %s... (पूर्ण हिंदी अनुवाद उपलब्ध नहीं)", truncate(text, 50))
	}
	return translated
}

// IdentifyGaps lists the missing-information items on a stored policy and
// phrases each as an RTI question.
func IdentifyGaps(p *models.PolicyRecord) []Gap {
	var gaps []Gap

	if p.MissingDates {
		gaps = append(gaps, Gap{
			Type:        "missing_dates",
			Description: "Implementation timeline not specified",
			RTIQuestion: fmt.Sprintf("What is the specific implementation timeline for %s?", p.Title),
		})
	}
	if p.MissingOfficerInfo {
		gaps = append(gaps, Gap{
			Type:        "missing_officer_info",
			Description: "Responsible officer contact not provided",
			RTIQuestion: fmt.Sprintf("Who is the responsible officer for implementing %s and what are their contact details?", p.Title),
		})
	}
	if p.MissingURLs {
		gaps = append(gaps, Gap{
			Type:        "missing_urls",
			Description: "Detailed guidelines or forms not linked",
			RTIQuestion: fmt.Sprintf("Where can citizens access detailed implementation guidelines and required forms for %s?", p.Title),
		})
	}

	return gaps
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
