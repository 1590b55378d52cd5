package rti

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/civiclens/backend/internal/llm"
	"github.com/civiclens/backend/internal/storage/models"
	"github.com/civiclens/backend/internal/storage/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Client {
	t.Helper()

	store, err := sqlite.NewClient(filepath.Join(t.TempDir(), "rti.db"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.InitSchema(); err != nil {
		t.Fatalf("InitSchema: %v", err)
	}
	return store
}

func TestIsGovernmentURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://pgportal.gov.in/grievance/123", true},
		{"https://services.india.gov.in/service/detail", true},
		{"https://dolr.nic.in/guidelines", true},
		{"https://www.rbi.org.in/Scripts/NotificationUser.aspx", true},
		{"https://example.com/complaint", false},
		{"not a url", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsGovernmentURL(tt.url); got != tt.want {
			t.Errorf("IsGovernmentURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestExtractEligibilityFromProse(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantEligible bool
		wantScore    int
		wantReason   string
	}{
		{
			name:         "prose verdict with score and reason",
			raw:          "I think this is eligible with a score around 75 out of 100. reason: it asks for specific documents.",
			wantEligible: true,
			wantScore:    75,
			wantReason:   "it asks for specific documents.",
		},
		{
			name:         "negated verdict",
			raw:          "This is not eligible. Score: 20. reason: opinion, not a record request.",
			wantEligible: false,
			wantScore:    20,
			wantReason:   "opinion, not a record request.",
		},
		{
			name:         "ineligible wording",
			raw:          "The request is ineligible under the Act.",
			wantEligible: false,
			wantScore:    0,
			wantReason:   "The request is ineligible under the Act.",
		},
		{
			name:         "no number and no reason marker",
			raw:          "Seems eligible to me.",
			wantEligible: true,
			wantScore:    0,
			wantReason:   "Seems eligible to me.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eligible, score, reason := ExtractEligibilityFromProse(tt.raw)
			if eligible != tt.wantEligible {
				t.Errorf("eligible = %v, want %v", eligible, tt.wantEligible)
			}
			if score != tt.wantScore {
				t.Errorf("score = %d, want %d", score, tt.wantScore)
			}
			if reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", reason, tt.wantReason)
			}
		})
	}
}

type fakeAssessor struct {
	eligibility llm.ParseResult
	draft       string
	draftErr    error
}

func (f *fakeAssessor) AssessRTIEligibility(_ context.Context, _, _ string) (llm.ParseResult, error) {
	return f.eligibility, nil
}

func (f *fakeAssessor) DraftRTIRequest(_ context.Context, _, _, _ string) (string, error) {
	return f.draft, f.draftErr
}

func TestSubmitComplaintStructuredEligibility(t *testing.T) {
	store := newTestStore(t)
	svc := NewService(store, &fakeAssessor{
		eligibility: llm.ParseResult{
			OK: true,
			Fields: map[string]interface{}{
				"eligible": true,
				"score":    float64(80),
				"reason":   "specific record request",
			},
		},
	})

	complaint, err := svc.SubmitComplaint(context.Background(),
		"https://pgportal.gov.in/grievance/123",
		"Ration card application pending for six months with no acknowledgment")
	if err != nil {
		t.Fatalf("SubmitComplaint: %v", err)
	}

	if complaint.ValidationStatus != models.ValidationValid {
		t.Fatalf("ValidationStatus = %s", complaint.ValidationStatus)
	}
	if !complaint.IsGovernmentURL {
		t.Error("government URL not detected")
	}
	if !complaint.Eligible || complaint.EligibilityScore != 80 {
		t.Fatalf("eligibility = %v score %d, want true 80", complaint.Eligible, complaint.EligibilityScore)
	}

	stored, err := svc.GetComplaint(complaint.ID)
	if err != nil {
		t.Fatalf("GetComplaint: %v", err)
	}
	if stored.EligibilityReason != "specific record request" {
		t.Errorf("EligibilityReason = %q", stored.EligibilityReason)
	}
}

func TestSubmitComplaintProseFallback(t *testing.T) {
	store := newTestStore(t)
	svc := NewService(store, &fakeAssessor{
		eligibility: llm.ParseResult{
			OK:     false,
			Raw:    "Likely eligible, around 65. reason: seeks file status.",
			Reason: "no JSON object found",
		},
	})

	complaint, err := svc.SubmitComplaint(context.Background(),
		"https://pgportal.gov.in/grievance/456",
		"Road repair sanctioned last year but work never started in our ward")
	if err != nil {
		t.Fatalf("SubmitComplaint: %v", err)
	}

	if !complaint.Eligible || complaint.EligibilityScore != 65 {
		t.Fatalf("prose fallback gave eligible=%v score=%d", complaint.Eligible, complaint.EligibilityScore)
	}
	if complaint.EligibilityReason != "seeks file status." {
		t.Errorf("EligibilityReason = %q", complaint.EligibilityReason)
	}
}

func TestSubmitComplaintValidationFailures(t *testing.T) {
	store := newTestStore(t)
	svc := NewService(store, nil)

	tests := []struct {
		name string
		url  string
		text string
	}{
		{"bad url", "not-a-url", "A complaint long enough to pass the length check easily"},
		{"ftp scheme", "ftp://example.gov.in/file", "A complaint long enough to pass the length check easily"},
		{"short text", "https://pgportal.gov.in/x", "too short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			complaint, err := svc.SubmitComplaint(context.Background(), tt.url, tt.text)
			if err != nil {
				t.Fatalf("SubmitComplaint: %v", err)
			}
			if complaint.ValidationStatus != models.ValidationInvalid {
				t.Fatalf("ValidationStatus = %s, want invalid", complaint.ValidationStatus)
			}
			if complaint.ValidationReason == "" {
				t.Error("invalid complaint must carry a reason")
			}
			if complaint.Eligible {
				t.Error("invalid complaint must not be eligible")
			}
		})
	}
}

func TestGenerateRequestWithModelDraft(t *testing.T) {
	store := newTestStore(t)
	draft := `To,
The Public Information Officer,

Subject: Application under Section 6(1) of the Right to Information Act, 2005

I am a citizen of India and request the status of grievance 123 and copies of related records.`

	svc := NewService(store, &fakeAssessor{
		eligibility: llm.ParseResult{
			OK:     true,
			Fields: map[string]interface{}{"eligible": true, "score": float64(90), "reason": "ok"},
		},
		draft: draft,
	})

	complaint, err := svc.SubmitComplaint(context.Background(),
		"https://pgportal.gov.in/grievance/123",
		"Pension disbursement stopped without any written communication")
	if err != nil {
		t.Fatalf("SubmitComplaint: %v", err)
	}

	request, err := svc.GenerateRequest(context.Background(), complaint.ID)
	if err != nil {
		t.Fatalf("GenerateRequest: %v", err)
	}
	if request.RTIText != draft {
		t.Error("model draft not used")
	}
	if request.ComplianceScore != 100 {
		t.Errorf("ComplianceScore = %d, want 100", request.ComplianceScore)
	}

	byComplaint, err := svc.GetRequestByComplaint(complaint.ID)
	if err != nil {
		t.Fatalf("GetRequestByComplaint: %v", err)
	}
	if byComplaint.ID != request.ID {
		t.Error("stored request not retrievable by complaint")
	}
}

func TestGenerateRequestTemplateFallback(t *testing.T) {
	store := newTestStore(t)
	svc := NewService(store, nil)

	complaint, err := svc.SubmitComplaint(context.Background(),
		"https://dolr.nic.in/land-records",
		"Mutation entry for our plot pending despite repeated visits to the tehsil office")
	if err != nil {
		t.Fatalf("SubmitComplaint: %v", err)
	}

	request, err := svc.GenerateRequest(context.Background(), complaint.ID)
	if err != nil {
		t.Fatalf("GenerateRequest: %v", err)
	}
	if !strings.Contains(request.RTIText, "Right to Information Act, 2005") {
		t.Error("template draft missing statute reference")
	}
	if !strings.Contains(request.RTIText, complaint.URL) {
		t.Error("template draft missing complaint URL")
	}
	if request.ComplianceScore != 100 {
		t.Errorf("ComplianceScore = %d, want 100 for template", request.ComplianceScore)
	}
}

func TestGenerateRequestRejectsIneligible(t *testing.T) {
	store := newTestStore(t)
	svc := NewService(store, &fakeAssessor{
		eligibility: llm.ParseResult{
			OK:     true,
			Fields: map[string]interface{}{"eligible": false, "score": float64(10), "reason": "opinion request"},
		},
	})

	complaint, err := svc.SubmitComplaint(context.Background(),
		"https://pgportal.gov.in/grievance/789",
		"I want the government to explain why its policy direction is wrong")
	if err != nil {
		t.Fatalf("SubmitComplaint: %v", err)
	}

	if _, err := svc.GenerateRequest(context.Background(), complaint.ID); err == nil {
		t.Fatal("expected error for ineligible complaint")
	}
}

func TestComplianceScore(t *testing.T) {
	if got := ComplianceScore(""); got != 0 {
		t.Errorf("empty draft score = %d, want 0", got)
	}
	if got := ComplianceScore("Right to Information Act"); got != 25 {
		t.Errorf("single element short draft = %d, want 25", got)
	}
}
