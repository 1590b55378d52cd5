package llm

import (
	"strings"
	"testing"
)

func TestParseSummarySections(t *testing.T) {
	t.Parallel()

	raw := `ENGLISH SUMMARY (150 words max):
- What changed: New digital filing portal for income tax returns
- Who's affected: All salaried taxpayers
- What to do: Register on the portal before the deadline
- Key dates: 31 July 2026

HINDI SUMMARY (हिंदी में सारांश):
आयकर रिटर्न के लिए नया डिजिटल पोर्टल शुरू किया गया है।

ACTIONABILITY SCORE: 8/10 (clear steps for citizens)
COMPLEXITY LEVEL: Simple`

	got := ParseSummarySections(raw)

	if !strings.Contains(got.English, "digital filing portal") {
		t.Errorf("english section missing content: %q", got.English)
	}
	if !strings.Contains(got.Hindi, "पोर्टल") {
		t.Errorf("hindi section missing content: %q", got.Hindi)
	}
	if got.Actionability != 8 {
		t.Errorf("Actionability = %d, want 8", got.Actionability)
	}
	if got.Complexity != "Simple" {
		t.Errorf("Complexity = %q, want Simple", got.Complexity)
	}
}

func TestParseSummarySectionsScoreWithoutSlash(t *testing.T) {
	t.Parallel()

	got := ParseSummarySections("ENGLISH SUMMARY:\ntext\nACTIONABILITY SCORE: 6\nCOMPLEXITY LEVEL: **Medium**")
	if got.Actionability != 6 {
		t.Errorf("Actionability = %d, want 6 from bare integer", got.Actionability)
	}
	if got.Complexity != "Medium" {
		t.Errorf("Complexity = %q, markdown noise must be stripped", got.Complexity)
	}
}

func TestParseSummarySectionsEmpty(t *testing.T) {
	t.Parallel()

	got := ParseSummarySections("  \n ")
	if got.English != "" || got.Hindi != "" {
		t.Error("empty input must yield empty sections")
	}
	if got.Actionability != -1 {
		t.Errorf("Actionability = %d, want sentinel -1", got.Actionability)
	}
}

func TestBuildPromptsDeterministic(t *testing.T) {
	t.Parallel()

	meta := PolicyMetadata{Title: "Draft EV Policy", Ministry: "Ministry of Heavy Industries"}
	a := BuildGapAnalysisPrompt("body text", meta)
	b := BuildGapAnalysisPrompt("body text", meta)
	if a != b {
		t.Error("gap analysis prompt must be deterministic")
	}
	if !strings.Contains(a, "Draft EV Policy") || !strings.Contains(a, "TEXT:\nbody text") {
		t.Errorf("prompt missing labeled slots: %q", a)
	}

	empty := BuildGapAnalysisPrompt("body", PolicyMetadata{})
	if !strings.Contains(empty, "Title: Unknown") || !strings.Contains(empty, "Ministry: Unknown") {
		t.Errorf("missing metadata must default to Unknown: %q", empty)
	}

	draft := BuildRTIDraftPrompt("https://example.gov.in/scheme", "no officer listed", "")
	if !strings.Contains(draft, "the concerned public authority") {
		t.Errorf("empty authority must fall back to generic authority: %q", draft)
	}
}
