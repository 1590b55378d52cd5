package rti

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/civiclens/backend/internal/llm"
	"github.com/civiclens/backend/internal/metrics"
	"github.com/civiclens/backend/internal/storage/models"
	"github.com/civiclens/backend/internal/storage/sqlite"
	"github.com/civiclens/backend/pkg/logger"
)

const minComplaintLength = 20

// Assessor is the language-model surface for eligibility checks and request
// drafting. Nil means no model is configured; the service then falls back to
// local heuristics so the workflow stays usable.
type Assessor interface {
	AssessRTIEligibility(ctx context.Context, pageURL, complaint string) (llm.ParseResult, error)
	DraftRTIRequest(ctx context.Context, pageURL, complaint, authority string) (string, error)
}

type Service struct {
	store    *sqlite.Client
	assessor Assessor
}

func NewService(store *sqlite.Client, assessor Assessor) *Service {
	return &Service{store: store, assessor: assessor}
}

var governmentDomainSuffixes = []string{".gov.in", ".nic.in", ".gov", ".rbi.org.in"}

// IsGovernmentURL reports whether the host belongs to a recognized
// government domain.
func IsGovernmentURL(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	for _, suffix := range governmentDomainSuffixes {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}
	return false
}

// SubmitComplaint validates and stores a citizen complaint, then runs the
// eligibility assessment. Validation failures are stored with their reason
// rather than rejected, so the record keeps an audit trail.
func (s *Service) SubmitComplaint(ctx context.Context, pageURL, complaintText string) (*models.Complaint, error) {
	now := time.Now()
	complaint := &models.Complaint{
		ID:               uuid.NewString(),
		URL:              pageURL,
		ComplaintText:    complaintText,
		IsGovernmentURL:  IsGovernmentURL(pageURL),
		ValidationStatus: models.ValidationPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if reason, ok := validateComplaint(pageURL, complaintText); !ok {
		complaint.ValidationStatus = models.ValidationInvalid
		complaint.ValidationReason = reason
		if err := s.store.InsertComplaint(complaint); err != nil {
			return nil, err
		}
		return complaint, nil
	}

	complaint.ValidationStatus = models.ValidationValid
	complaint.ValidationReason = "URL and complaint text pass basic checks"
	s.assessEligibility(ctx, complaint)

	if err := s.store.InsertComplaint(complaint); err != nil {
		return nil, err
	}
	return complaint, nil
}

func validateComplaint(pageURL, complaintText string) (string, bool) {
	parsed, err := url.Parse(pageURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "URL must be a valid http or https address", false
	}
	if len(strings.TrimSpace(complaintText)) < minComplaintLength {
		return fmt.Sprintf("complaint text must be at least %d characters", minComplaintLength), false
	}
	return "", true
}

func (s *Service) assessEligibility(ctx context.Context, complaint *models.Complaint) {
	if s.assessor == nil {
		// No model configured: accept valid complaints for drafting with a
		// neutral score so the workflow does not dead-end.
		complaint.Eligible = true
		complaint.EligibilityScore = 50
		complaint.EligibilityReason = "Accepted by baseline checks; no model-based assessment available"
		return
	}

	result, err := s.assessor.AssessRTIEligibility(ctx, complaint.URL, complaint.ComplaintText)
	if err != nil {
		logger.Warn("Eligibility assessment failed",
			zap.String("complaint_id", complaint.ID),
			zap.Error(err),
		)
		complaint.Eligible = false
		complaint.EligibilityReason = "Eligibility assessment unavailable"
		return
	}

	if result.OK {
		complaint.Eligible = boolField(result.Fields, "eligible")
		complaint.EligibilityScore = intField(result.Fields, "score")
		complaint.EligibilityReason = stringField(result.Fields, "reason")
		return
	}

	// Structured parsing failed; mine the prose for a verdict.
	eligible, score, reason := ExtractEligibilityFromProse(result.Raw)
	complaint.Eligible = eligible
	complaint.EligibilityScore = score
	complaint.EligibilityReason = reason
	logger.Debug("Eligibility extracted from prose",
		zap.String("complaint_id", complaint.ID),
		zap.Bool("eligible", eligible),
		zap.Int("score", score),
	)
}

var scorePattern = regexp.MustCompile(`\b\d{1,3}\b`)

// ExtractEligibilityFromProse recovers an eligibility verdict from a model
// answer that carried no parseable JSON. The word "eligible" signals a
// positive verdict unless negated, the first one-to-three digit number is
// the score, and any text after "reason:" becomes the reason.
func ExtractEligibilityFromProse(raw string) (bool, int, string) {
	lower := strings.ToLower(raw)

	eligible := strings.Contains(lower, "eligible") &&
		!strings.Contains(lower, "not eligible") &&
		!strings.Contains(lower, "ineligible")

	score := 0
	if match := scorePattern.FindString(raw); match != "" {
		score, _ = strconv.Atoi(match)
	}

	reason := strings.TrimSpace(raw)
	if idx := strings.Index(lower, "reason:"); idx >= 0 {
		reason = strings.TrimSpace(raw[idx+len("reason:"):])
	}

	return eligible, score, reason
}

func (s *Service) GetComplaint(id string) (*models.Complaint, error) {
	return s.store.GetComplaint(id)
}

// GenerateRequest drafts the formal RTI application for an eligible
// complaint and stores it with a compliance score. Regeneration replaces the
// previous draft.
func (s *Service) GenerateRequest(ctx context.Context, complaintID string) (*models.RTIRequest, error) {
	complaint, err := s.store.GetComplaint(complaintID)
	if err != nil {
		return nil, err
	}
	if complaint.ValidationStatus != models.ValidationValid {
		return nil, fmt.Errorf("complaint %s failed validation: %s", complaintID, complaint.ValidationReason)
	}
	if !complaint.Eligible {
		return nil, fmt.Errorf("complaint %s is not eligible: %s", complaintID, complaint.EligibilityReason)
	}

	text, method := s.draftText(ctx, complaint)
	metrics.RTIRequestsGenerated.WithLabelValues(method).Inc()
	now := time.Now()
	request := &models.RTIRequest{
		ID:              uuid.NewString(),
		ComplaintID:     complaint.ID,
		RTIText:         text,
		ComplianceScore: ComplianceScore(text),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.store.UpsertRTIRequest(request); err != nil {
		return nil, err
	}
	return request, nil
}

// draftText returns the drafted application and which method produced it,
// "model" or "template".
func (s *Service) draftText(ctx context.Context, complaint *models.Complaint) (string, string) {
	if s.assessor != nil {
		text, err := s.assessor.DraftRTIRequest(ctx, complaint.URL, complaint.ComplaintText, "")
		if err != nil {
			logger.Warn("RTI draft failed, using template",
				zap.String("complaint_id", complaint.ID),
				zap.Error(err),
			)
		} else if strings.TrimSpace(text) != "" {
			return text, "model"
		}
	}
	return templateDraft(complaint), "template"
}

func templateDraft(complaint *models.Complaint) string {
	return fmt.Sprintf(`To,
The Public Information Officer,
The concerned public authority

Subject: Application under Section 6(1) of the Right to Information Act, 2005

Sir/Madam,

I wish to seek information under the Right to Information Act, 2005 regarding the following matter, also reported at %s:

%s

Kindly provide:
1. The current status of action taken on the above matter.
2. Copies of records, file notings and correspondence relating to it.
3. The name and designation of the officer responsible for its resolution.
4. The prescribed timeline for its resolution.

I am a citizen of India. The application fee has been paid as prescribed. If the requested information is held by another public authority, kindly transfer this application under Section 6(3) of the Act.

Yours faithfully`, complaint.URL, strings.TrimSpace(complaint.ComplaintText))
}

// complianceChecks are the structural elements a well-formed RTI application
// carries. The score is the fraction present, scaled to 100.
var complianceChecks = []string{
	"Right to Information Act",
	"Public Information Officer",
	"Section 6(1)",
	"citizen of India",
}

func ComplianceScore(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	hits := 0
	for _, check := range complianceChecks {
		if strings.Contains(text, check) {
			hits++
		}
	}
	score := hits * 100 / len(complianceChecks)
	// A draft too short to state the information sought cannot score full.
	if len(text) < 200 && score > 50 {
		score = 50
	}
	return score
}

func (s *Service) GetRequest(id string) (*models.RTIRequest, error) {
	return s.store.GetRTIRequest(id)
}

func (s *Service) GetRequestByComplaint(complaintID string) (*models.RTIRequest, error) {
	return s.store.GetRTIRequestByComplaint(complaintID)
}

func boolField(fields map[string]interface{}, key string) bool {
	v, _ := fields[key].(bool)
	return v
}

func intField(fields map[string]interface{}, key string) int {
	switch v := fields[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func stringField(fields map[string]interface{}, key string) string {
	v, _ := fields[key].(string)
	return v
}
