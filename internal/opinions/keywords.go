package opinions

import "strings"

// youthKeywords mark content as relevant to the youth-opinion surface.
// Matching is substring containment over the lowercased text, so multiword
// entries like "mental health" match as phrases.
var youthKeywords = []string{
	"student", "youth", "teenager", "young", "college", "university", "school",
	"education", "job", "career", "future", "dream", "aspiration", "startup",
	"entrepreneur", "technology", "social media", "mental health", "climate",
	"environment", "politics", "government", "policy", "reform", "change",
	"innovation", "digital", "online", "internet", "mobile", "app", "coding",
	"programming", "artificial intelligence", "sustainability", "equality",
	"diversity", "inclusion", "rights", "freedom", "expression", "voice",
	"opinion", "thought", "idea", "solution", "problem", "challenge", "opportunity",
}

// ExtractYouthKeywords returns the youth keywords present in the text, in
// lexicon order.
func ExtractYouthKeywords(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, kw := range youthKeywords {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
		}
	}
	return found
}
