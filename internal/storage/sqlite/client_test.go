package sqlite

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/civiclens/backend/internal/storage/models"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	client, err := NewClient(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	if err := client.InitSchema(); err != nil {
		t.Fatalf("InitSchema: %v", err)
	}
	return client
}

func testPolicy(id, notificationNumber, title string) *models.PolicyRecord {
	now := time.Now()
	return &models.PolicyRecord{
		ID:                 id,
		Title:              title,
		Ministry:           "Ministry of Finance",
		NotificationNumber: notificationNumber,
		PublicationDate:    now.Add(-24 * time.Hour),
		SummaryEnglish:     "GST rates revised for essential goods",
		WhatChanged:        "Rate reduced from 12% to 5%",
		WhoAffected:        "Small traders and consumers",
		SourceURL:          "https://example.gov.in/notification",
		Status:             models.StatusNew,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func TestInsertPolicyDedupByNotificationNumber(t *testing.T) {
	client := newTestClient(t)

	inserted, err := client.InsertPolicy(testPolicy("p1", "GST/10/2025", "GST Rate Notification"))
	if err != nil {
		t.Fatalf("InsertPolicy: %v", err)
	}
	if !inserted {
		t.Fatal("expected first insert to succeed")
	}

	// Same notification number, different id and title: must be skipped.
	inserted, err = client.InsertPolicy(testPolicy("p2", "GST/10/2025", "GST Rate Notification (updated)"))
	if err != nil {
		t.Fatalf("InsertPolicy duplicate: %v", err)
	}
	if inserted {
		t.Fatal("expected duplicate notification number to be skipped")
	}

	stats, err := client.PolicyStatistics(time.Now().Add(-7 * 24 * time.Hour))
	if err != nil {
		t.Fatalf("PolicyStatistics: %v", err)
	}
	if stats.TotalPolicies != 1 {
		t.Fatalf("TotalPolicies = %d, want 1", stats.TotalPolicies)
	}
}

func TestInsertPolicyDedupByTitleAndSource(t *testing.T) {
	client := newTestClient(t)

	first := testPolicy("p1", "", "Monsoon Session Legislative Agenda")
	if inserted, err := client.InsertPolicy(first); err != nil || !inserted {
		t.Fatalf("first insert: inserted=%v err=%v", inserted, err)
	}

	dup := testPolicy("p2", "", "Monsoon Session Legislative Agenda")
	inserted, err := client.InsertPolicy(dup)
	if err != nil {
		t.Fatalf("InsertPolicy duplicate: %v", err)
	}
	if inserted {
		t.Fatal("expected duplicate title+source to be skipped")
	}

	// Same title, different source URL: not a duplicate.
	other := testPolicy("p3", "", "Monsoon Session Legislative Agenda")
	other.SourceURL = "https://other.gov.in/item"
	inserted, err = client.InsertPolicy(other)
	if err != nil {
		t.Fatalf("InsertPolicy other source: %v", err)
	}
	if !inserted {
		t.Fatal("expected different source URL to insert")
	}

	// Two records with empty notification numbers must coexist; the UNIQUE
	// constraint treats NULLs as distinct.
	stats, err := client.PolicyStatistics(time.Now().Add(-7 * 24 * time.Hour))
	if err != nil {
		t.Fatalf("PolicyStatistics: %v", err)
	}
	if stats.TotalPolicies != 2 {
		t.Fatalf("TotalPolicies = %d, want 2", stats.TotalPolicies)
	}
}

func TestGetPolicyRoundTrip(t *testing.T) {
	client := newTestClient(t)

	effective := time.Date(2025, 9, 22, 0, 0, 0, 0, time.UTC)
	p := testPolicy("p1", "10/2025", "GST Rate Notification")
	p.EffectiveDate = &effective
	p.MissingOfficerInfo = true

	if _, err := client.InsertPolicy(p); err != nil {
		t.Fatalf("InsertPolicy: %v", err)
	}

	got, err := client.GetPolicy("p1")
	if err != nil {
		t.Fatalf("GetPolicy: %v", err)
	}
	if got.Title != p.Title || got.NotificationNumber != "10/2025" {
		t.Fatalf("unexpected record: %+v", got)
	}
	if got.EffectiveDate == nil || !got.EffectiveDate.Equal(effective) {
		t.Fatalf("EffectiveDate = %v, want %v", got.EffectiveDate, effective)
	}
	if !got.MissingOfficerInfo || got.MissingDates || got.MissingURLs {
		t.Fatalf("missing-info flags not preserved: %+v", got)
	}

	_, err = client.GetPolicy("nope")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected ErrNoRows for unknown id, got %v", err)
	}
}

func TestListRecentPoliciesOrderAndWindow(t *testing.T) {
	client := newTestClient(t)
	now := time.Now()

	old := testPolicy("old", "N/1", "Old notification")
	old.PublicationDate = now.Add(-40 * 24 * time.Hour)
	recent := testPolicy("recent", "N/2", "Recent notification")
	recent.PublicationDate = now.Add(-2 * 24 * time.Hour)
	newest := testPolicy("newest", "N/3", "Newest notification")
	newest.PublicationDate = now.Add(-1 * time.Hour)

	for _, p := range []*models.PolicyRecord{old, recent, newest} {
		if _, err := client.InsertPolicy(p); err != nil {
			t.Fatalf("InsertPolicy(%s): %v", p.ID, err)
		}
	}

	got, err := client.ListRecentPolicies(now.Add(-30*24*time.Hour), 50)
	if err != nil {
		t.Fatalf("ListRecentPolicies: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d policies, want 2", len(got))
	}
	if got[0].ID != "newest" || got[1].ID != "recent" {
		t.Fatalf("wrong order: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestSearchPolicies(t *testing.T) {
	client := newTestClient(t)

	gst := testPolicy("gst", "G/1", "GST Rate Notification")
	land := testPolicy("land", "L/1", "Digital Land Records Modernization")
	land.Ministry = "Ministry of Rural Development"
	land.SummaryEnglish = "Land records available online"
	land.WhatChanged = "Records digitized"

	for _, p := range []*models.PolicyRecord{gst, land} {
		if _, err := client.InsertPolicy(p); err != nil {
			t.Fatalf("InsertPolicy(%s): %v", p.ID, err)
		}
	}

	tests := []struct {
		name     string
		text     string
		ministry string
		wantIDs  []string
	}{
		{name: "title match", text: "GST", wantIDs: []string{"gst"}},
		{name: "summary match", text: "online", wantIDs: []string{"land"}},
		{name: "ministry filter", ministry: "Rural", wantIDs: []string{"land"}},
		{name: "text and ministry", text: "Land", ministry: "Finance", wantIDs: nil},
		{name: "no match", text: "aviation", wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := client.SearchPolicies(tt.text, tt.ministry, 20)
			if err != nil {
				t.Fatalf("SearchPolicies: %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d results, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("result[%d] = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestPolicyStatistics(t *testing.T) {
	client := newTestClient(t)
	now := time.Now()

	clean := testPolicy("clean", "S/1", "Complete notification")
	gap := testPolicy("gap", "S/2", "Incomplete notification")
	gap.MissingDates = true
	oldGap := testPolicy("oldgap", "S/3", "Old incomplete notification")
	oldGap.PublicationDate = now.Add(-60 * 24 * time.Hour)
	oldGap.MissingURLs = true
	oldGap.Ministry = "Ministry of Education"

	for _, p := range []*models.PolicyRecord{clean, gap, oldGap} {
		if _, err := client.InsertPolicy(p); err != nil {
			t.Fatalf("InsertPolicy(%s): %v", p.ID, err)
		}
	}

	stats, err := client.PolicyStatistics(now.Add(-7 * 24 * time.Hour))
	if err != nil {
		t.Fatalf("PolicyStatistics: %v", err)
	}
	if stats.TotalPolicies != 3 {
		t.Errorf("TotalPolicies = %d, want 3", stats.TotalPolicies)
	}
	if stats.RecentPolicies != 2 {
		t.Errorf("RecentPolicies = %d, want 2", stats.RecentPolicies)
	}
	if stats.PoliciesWithGaps != 2 {
		t.Errorf("PoliciesWithGaps = %d, want 2", stats.PoliciesWithGaps)
	}
	if stats.MinistryCount != 2 {
		t.Errorf("MinistryCount = %d, want 2", stats.MinistryCount)
	}
	if stats.GapPercentage != 66.67 {
		t.Errorf("GapPercentage = %v, want 66.67", stats.GapPercentage)
	}
}

func TestComplaintAndRTILifecycle(t *testing.T) {
	client := newTestClient(t)
	now := time.Now()

	complaint := &models.Complaint{
		ID:               "c1",
		URL:              "https://pgportal.gov.in/grievance/123",
		ComplaintText:    "Street lights broken for three months, no response from municipality",
		IsGovernmentURL:  true,
		ValidationStatus: models.ValidationPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := client.InsertComplaint(complaint); err != nil {
		t.Fatalf("InsertComplaint: %v", err)
	}

	complaint.ValidationStatus = models.ValidationValid
	complaint.Eligible = true
	complaint.EligibilityScore = 85
	complaint.EligibilityReason = "Concerns a public authority and seeks records"
	if err := client.UpdateComplaintEligibility(complaint); err != nil {
		t.Fatalf("UpdateComplaintEligibility: %v", err)
	}

	got, err := client.GetComplaint("c1")
	if err != nil {
		t.Fatalf("GetComplaint: %v", err)
	}
	if got.ValidationStatus != models.ValidationValid || !got.Eligible || got.EligibilityScore != 85 {
		t.Fatalf("eligibility not persisted: %+v", got)
	}
	if !got.IsGovernmentURL {
		t.Fatal("IsGovernmentURL not preserved")
	}

	req := &models.RTIRequest{
		ID:              "r1",
		ComplaintID:     "c1",
		RTIText:         "To the Public Information Officer...",
		ComplianceScore: 90,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := client.UpsertRTIRequest(req); err != nil {
		t.Fatalf("UpsertRTIRequest: %v", err)
	}

	// Regenerating replaces the draft for the same complaint.
	req2 := &models.RTIRequest{
		ID:              "r2",
		ComplaintID:     "c1",
		RTIText:         "To the Public Information Officer, revised...",
		ComplianceScore: 95,
		CreatedAt:       now,
		UpdatedAt:       now.Add(time.Minute),
	}
	if err := client.UpsertRTIRequest(req2); err != nil {
		t.Fatalf("UpsertRTIRequest regenerate: %v", err)
	}

	byComplaint, err := client.GetRTIRequestByComplaint("c1")
	if err != nil {
		t.Fatalf("GetRTIRequestByComplaint: %v", err)
	}
	if byComplaint.ComplianceScore != 95 {
		t.Fatalf("ComplianceScore = %d, want 95 after regenerate", byComplaint.ComplianceScore)
	}
}

func TestUserUniqueEmail(t *testing.T) {
	client := newTestClient(t)
	now := time.Now()

	user := &models.User{ID: "u1", Email: "asha@example.com", Name: "Asha", PasswordHash: "hash", CreatedAt: now}
	if err := client.CreateUser(user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	dup := &models.User{ID: "u2", Email: "asha@example.com", PasswordHash: "hash2", CreatedAt: now}
	if err := client.CreateUser(dup); err == nil {
		t.Fatal("expected duplicate email to fail")
	}

	got, err := client.GetUserByEmail("asha@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got == nil || got.ID != "u1" {
		t.Fatalf("GetUserByEmail = %+v, want u1", got)
	}

	missing, err := client.GetUserByEmail("nobody@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown email, got %+v", missing)
	}
}

func TestForumScoringAndOrdering(t *testing.T) {
	client := newTestClient(t)
	now := time.Now()

	for _, u := range []*models.User{
		{ID: "u1", Email: "a@example.com", Name: "A", PasswordHash: "h", CreatedAt: now},
		{ID: "u2", Email: "b@example.com", Name: "B", PasswordHash: "h", CreatedAt: now},
		{ID: "u3", Email: "c@example.com", Name: "C", PasswordHash: "h", CreatedAt: now},
	} {
		if err := client.CreateUser(u); err != nil {
			t.Fatalf("CreateUser(%s): %v", u.ID, err)
		}
	}

	ideas := []*models.Idea{
		{ID: "i1", UserID: "u1", Content: "Public dashboards for ward budgets", CreatedAt: now.Add(-3 * time.Hour)},
		{ID: "i2", UserID: "u2", Content: "SMS alerts for new notifications", CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "i3", UserID: "u3", Content: "Open office hours with MLAs", CreatedAt: now.Add(-1 * time.Hour)},
	}
	for _, idea := range ideas {
		if err := client.InsertIdea(idea); err != nil {
			t.Fatalf("InsertIdea(%s): %v", idea.ID, err)
		}
	}

	votes := []*models.Vote{
		{UserID: "u1", IdeaID: "i2", Value: 1, CreatedAt: now},
		{UserID: "u2", IdeaID: "i2", Value: 1, CreatedAt: now},
		{UserID: "u3", IdeaID: "i2", Value: 1, CreatedAt: now},
		{UserID: "u1", IdeaID: "i1", Value: 1, CreatedAt: now},
		{UserID: "u2", IdeaID: "i1", Value: -1, CreatedAt: now},
		{UserID: "u1", IdeaID: "i3", Value: -1, CreatedAt: now},
	}
	for _, v := range votes {
		if err := client.UpsertVote(v); err != nil {
			t.Fatalf("UpsertVote: %v", err)
		}
	}

	got, err := client.ListIdeas(0)
	if err != nil {
		t.Fatalf("ListIdeas: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d ideas, want 3", len(got))
	}
	wantOrder := []string{"i2", "i1", "i3"}
	wantScores := []int{3, 0, -1}
	for i := range wantOrder {
		if got[i].ID != wantOrder[i] || got[i].Score != wantScores[i] {
			t.Errorf("ideas[%d] = %s score %d, want %s score %d",
				i, got[i].ID, got[i].Score, wantOrder[i], wantScores[i])
		}
	}
	if got[0].AuthorEmail != "b@example.com" {
		t.Errorf("AuthorEmail = %s, want b@example.com", got[0].AuthorEmail)
	}

	// Revoting replaces the previous value instead of stacking.
	if err := client.UpsertVote(&models.Vote{UserID: "u1", IdeaID: "i3", Value: 1, CreatedAt: now}); err != nil {
		t.Fatalf("UpsertVote revote: %v", err)
	}
	score, err := client.IdeaScore("i3")
	if err != nil {
		t.Fatalf("IdeaScore: %v", err)
	}
	if score != 1 {
		t.Fatalf("IdeaScore = %d, want 1 after revote", score)
	}

	top, err := client.ListIdeas(2)
	if err != nil {
		t.Fatalf("ListIdeas limit: %v", err)
	}
	if len(top) != 2 || top[0].ID != "i2" {
		t.Fatalf("top ideas wrong: %+v", top)
	}
}

func TestCommentsWithAuthor(t *testing.T) {
	client := newTestClient(t)
	now := time.Now()

	user := &models.User{ID: "u1", Email: "a@example.com", Name: "A", PasswordHash: "h", CreatedAt: now}
	if err := client.CreateUser(user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	idea := &models.Idea{ID: "i1", UserID: "u1", Content: "Ward-level budget tracker", CreatedAt: now}
	if err := client.InsertIdea(idea); err != nil {
		t.Fatalf("InsertIdea: %v", err)
	}

	comments := []*models.Comment{
		{ID: "c1", IdeaID: "i1", UserID: "u1", Content: "First", CreatedAt: now.Add(-time.Minute)},
		{ID: "c2", IdeaID: "i1", UserID: "u1", Content: "Second", CreatedAt: now},
	}
	for _, c := range comments {
		if err := client.InsertComment(c); err != nil {
			t.Fatalf("InsertComment(%s): %v", c.ID, err)
		}
	}

	got, err := client.ListComments("i1")
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	if len(got) != 2 || got[0].ID != "c1" || got[1].ID != "c2" {
		t.Fatalf("comments wrong order: %+v", got)
	}
	if got[0].AuthorEmail != "a@example.com" || got[0].AuthorName != "A" {
		t.Fatalf("author not joined: %+v", got[0])
	}

	ideasWithCounts, err := client.ListIdeas(0)
	if err != nil {
		t.Fatalf("ListIdeas: %v", err)
	}
	if ideasWithCounts[0].CommentsCount != 2 {
		t.Fatalf("CommentsCount = %d, want 2", ideasWithCounts[0].CommentsCount)
	}
}
