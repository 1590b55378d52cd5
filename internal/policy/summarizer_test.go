package policy

import (
	"strings"
	"testing"

	"github.com/civiclens/backend/internal/storage/models"
)

func TestGenerateCardFromPatternText(t *testing.T) {
	s := NewSummarizer()

	text := "The amended rates are effective from October 1. Registered dealers shall file revised returns within 30 days."
	card := s.GenerateCard(text, "GST Rate Notification No. 10/2025")

	if !strings.Contains(card.WhatChanged, "amended rates are effective from October 1") {
		t.Errorf("WhatChanged missed pattern match: %q", card.WhatChanged)
	}
	if !strings.Contains(card.WhatToDo, "shall file revised returns") {
		t.Errorf("WhatToDo missed action match: %q", card.WhatToDo)
	}
	// "GST" in the title hits the taxpayer keyword set.
	if !strings.Contains(card.WhoAffected, "taxpayers") {
		t.Errorf("WhoAffected = %q, want taxpayers", card.WhoAffected)
	}
	if !strings.HasPrefix(card.SummaryEnglish, "GST notification updates tax exemptions and rates.") {
		t.Errorf("unexpected summary lead: %q", card.SummaryEnglish)
	}
}

func TestGenerateCardTitleDefaults(t *testing.T) {
	s := NewSummarizer()

	tests := []struct {
		title        string
		wantChanged  string
		wantAffected string
		wantAction   string
	}{
		{
			title:        "SEBI LODR Third Amendment Regulations 2025",
			wantChanged:  "Securities regulations and compliance requirements updated",
			wantAffected: "banks",
			wantAction:   "Review and update compliance frameworks",
		},
		{
			title:        "National Education Policy Implementation Phase 2",
			wantChanged:  "Educational policies and implementation guidelines revised",
			wantAffected: "students",
			wantAction:   "Implement new curriculum guidelines",
		},
		{
			title:        "Coastal Zone Advisory",
			wantChanged:  "Policy provisions have been updated",
			wantAffected: "citizens",
			wantAction:   "Review policy changes and ensure compliance",
		},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			card := s.GenerateCard("", tt.title)
			if !strings.Contains(card.WhatChanged, tt.wantChanged) {
				t.Errorf("WhatChanged = %q, want substring %q", card.WhatChanged, tt.wantChanged)
			}
			if !strings.Contains(card.WhoAffected, tt.wantAffected) {
				t.Errorf("WhoAffected = %q, want substring %q", card.WhoAffected, tt.wantAffected)
			}
			if !strings.Contains(card.WhatToDo, tt.wantAction) {
				t.Errorf("WhatToDo = %q, want substring %q", card.WhatToDo, tt.wantAction)
			}
		})
	}
}

func TestTranslateToHindi(t *testing.T) {
	translated := translateToHindi("GST notification updates compliance for taxpayers")
	if !strings.Contains(translated, "जीएसटी") || !strings.Contains(translated, "करदाता") {
		t.Errorf("known terms not mapped: %q", translated)
	}
	if strings.Contains(translated, "GST") {
		t.Errorf("english term survived mapping: %q", translated)
	}

	// Text with no mappable terms gets the generic notice.
	fallback := translateToHindi("Coastal zone advisory issued")
	if !strings.Contains(fallback, "पूर्ण हिंदी अनुवाद उपलब्ध नहीं") {
		t.Errorf("expected fallback notice, got %q", fallback)
	}
}

func TestIdentifyGaps(t *testing.T) {
	record := &models.PolicyRecord{
		Title:              "Digital India Land Records Modernization",
		MissingDates:       true,
		MissingOfficerInfo: true,
	}

	gaps := IdentifyGaps(record)
	if len(gaps) != 2 {
		t.Fatalf("got %d gaps, want 2", len(gaps))
	}
	if gaps[0].Type != "missing_dates" || gaps[1].Type != "missing_officer_info" {
		t.Fatalf("wrong gap types: %s, %s", gaps[0].Type, gaps[1].Type)
	}
	if !strings.Contains(gaps[0].RTIQuestion, record.Title) {
		t.Errorf("RTI question does not name the policy: %q", gaps[0].RTIQuestion)
	}

	if got := IdentifyGaps(&models.PolicyRecord{Title: "Complete notification"}); len(got) != 0 {
		t.Errorf("expected no gaps for complete record, got %d", len(got))
	}
}

func TestFetchByNumber(t *testing.T) {
	f := NewFetcher()

	n, ok := f.FetchByNumber("DILRMP/2025/09")
	if !ok {
		t.Fatal("expected curated notification to be found")
	}
	if n.Ministry != "Ministry of Rural Development" {
		t.Errorf("Ministry = %q", n.Ministry)
	}

	if _, ok := f.FetchByNumber("nonexistent"); ok {
		t.Error("expected miss for unknown number")
	}
}
