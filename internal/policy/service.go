package policy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/civiclens/backend/internal/llm"
	"github.com/civiclens/backend/internal/metrics"
	"github.com/civiclens/backend/internal/scraper"
	"github.com/civiclens/backend/internal/storage/models"
	"github.com/civiclens/backend/internal/storage/sqlite"
	"github.com/civiclens/backend/pkg/logger"
)

// Analyzer is the language-model surface the pipeline needs. Nil means no
// model is configured and every path falls back to rule-based output.
type Analyzer interface {
	AnalyzePolicyGaps(ctx context.Context, policyText string, meta llm.PolicyMetadata) (llm.ParseResult, error)
	SummarizePolicy(ctx context.Context, policyText string) (llm.SummarySections, error)
}

type Service struct {
	store      *sqlite.Client
	analyzer   Analyzer
	fetcher    *Fetcher
	live       *LiveFetcher
	summarizer *Summarizer
	scraper    *scraper.Client
}

func NewService(store *sqlite.Client, analyzer Analyzer, live *LiveFetcher, sc *scraper.Client) *Service {
	return &Service{
		store:      store,
		analyzer:   analyzer,
		fetcher:    NewFetcher(),
		live:       live,
		summarizer: NewSummarizer(),
		scraper:    sc,
	}
}

// RefreshResult reports one refresh pass over a notification source.
type RefreshResult struct {
	NewPolicies  int `json:"new_policies"`
	TotalChecked int `json:"total_checked"`
}

// RefreshCurated summarizes and stores the curated notification set.
// Notifications already stored under their notification number are skipped
// without re-summarizing.
func (s *Service) RefreshCurated(daysBack int) (RefreshResult, error) {
	notifications := s.fetcher.FetchRecent(daysBack)
	result := RefreshResult{TotalChecked: len(notifications)}

	for _, n := range notifications {
		exists, err := s.store.HasPolicy(n.NotificationNumber, n.Title, n.SourceURL)
		if err != nil {
			return result, err
		}
		if exists {
			metrics.PoliciesSkipped.Inc()
			continue
		}

		card := s.summarizer.GenerateCard(n.Summary, n.Title)
		now := time.Now()
		record := &models.PolicyRecord{
			ID:                 uuid.NewString(),
			Title:              n.Title,
			Ministry:           n.Ministry,
			NotificationNumber: n.NotificationNumber,
			PublicationDate:    n.PublicationDate,
			OriginalText:       n.Summary,
			SummaryEnglish:     card.SummaryEnglish,
			SummaryHindi:       card.SummaryHindi,
			WhatChanged:        card.WhatChanged,
			WhoAffected:        card.WhoAffected,
			WhatToDo:           card.WhatToDo,
			SourceURL:          n.SourceURL,
			GazetteType:        n.GazetteType,
			Status:             models.StatusNew,
			MissingDates:       n.MissingDates,
			MissingOfficerInfo: n.MissingOfficerInfo,
			MissingURLs:        n.SourceURL == "",
			CreatedAt:          now,
			UpdatedAt:          now,
		}

		inserted, err := s.store.InsertPolicy(record)
		if err != nil {
			return result, err
		}
		if inserted {
			metrics.PoliciesStored.Inc()
			result.NewPolicies++
		} else {
			metrics.PoliciesSkipped.Inc()
		}
	}

	logger.Info("Curated refresh complete",
		zap.Int("new_policies", result.NewPolicies),
		zap.Int("total_checked", result.TotalChecked),
	)
	return result, nil
}

// RecentPolicies serves the recent listing. When nothing has landed in the
// last day the curated set is refreshed first, so an empty database still
// answers with content.
func (s *Service) RecentPolicies(daysBack int) ([]*models.PolicyRecord, error) {
	fresh, err := s.store.CountPoliciesCreatedSince(time.Now().Add(-24 * time.Hour))
	if err != nil {
		return nil, err
	}
	if fresh == 0 {
		if _, err := s.RefreshCurated(daysBack); err != nil {
			return nil, err
		}
	}

	return s.store.ListRecentPolicies(time.Now().AddDate(0, 0, -daysBack), 100)
}

// ProcessWeekly runs the live pipeline: scrape official sources, analyze and
// summarize each update, derive missing-info flags and store the new ones.
// Per-item failures are logged and skipped so one bad page cannot sink the
// whole batch.
func (s *Service) ProcessWeekly(ctx context.Context, daysBack int) (int, error) {
	updates := s.live.FetchWeeklyUpdates(ctx, daysBack)
	processed := 0

	for _, u := range updates {
		content := u.Content
		if content == "" {
			content = u.Title
		}

		exists, err := s.store.HasPolicy("", u.Title, u.SourceURL)
		if err != nil {
			return processed, err
		}
		if exists {
			metrics.PoliciesSkipped.Inc()
			continue
		}

		record := s.buildLiveRecord(ctx, u, content)
		inserted, err := s.store.InsertPolicy(record)
		if err != nil {
			logger.Error("Failed to store live policy",
				zap.String("title", u.Title),
				zap.Error(err),
			)
			continue
		}
		if inserted {
			metrics.PoliciesStored.Inc()
			processed++
		}
	}

	logger.Info("Live pipeline complete",
		zap.Int("scraped", len(updates)),
		zap.Int("processed", processed),
	)
	return processed, nil
}

func (s *Service) buildLiveRecord(ctx context.Context, u Update, content string) *models.PolicyRecord {
	now := time.Now()
	record := &models.PolicyRecord{
		ID:              uuid.NewString(),
		Title:           u.Title,
		Ministry:        u.Ministry,
		PublicationDate: u.PublicationDate,
		OriginalText:    content,
		SourceURL:       u.SourceURL,
		GazetteType:     "Ordinary",
		Status:          models.StatusNew,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if s.analyzer == nil {
		card := s.summarizer.GenerateCard(content, u.Title)
		record.SummaryEnglish = card.SummaryEnglish
		record.SummaryHindi = card.SummaryHindi
		record.WhatChanged = card.WhatChanged
		record.WhoAffected = card.WhoAffected
		record.WhatToDo = card.WhatToDo
		return record
	}

	gaps, err := s.analyzer.AnalyzePolicyGaps(ctx, content, llm.PolicyMetadata{
		Title:    u.Title,
		Ministry: u.Ministry,
	})
	if err != nil {
		logger.Warn("Gap analysis failed for live update",
			zap.String("title", u.Title),
			zap.Error(err),
		)
	} else if gaps.OK {
		record.MissingDates = gapListsContain(gaps.Fields, "temporal")
		record.MissingOfficerInfo = gapListsContain(gaps.Fields, "contact")
		// Scraped items always carry a source URL.
		record.MissingURLs = false
	}

	summary, err := s.analyzer.SummarizePolicy(ctx, content)
	if err != nil || summary.English == "" {
		if err != nil {
			logger.Warn("Summary failed for live update",
				zap.String("title", u.Title),
				zap.Error(err),
			)
		}
		record.SummaryEnglish = fmt.Sprintf("Policy update: %s", u.Title)
		record.SummaryHindi = "हिंदी सारांश उपलब्ध नहीं"
		return record
	}

	record.SummaryEnglish = summary.English
	record.SummaryHindi = summary.Hindi
	if record.SummaryHindi == "" {
		record.SummaryHindi = "हिंदी सारांश उपलब्ध नहीं"
	}
	return record
}

// gapListsContain stringifies the priority gap lists from an analysis
// response and looks for the marker as a substring. Markers are gap-type
// prefixes like "temporal" and "contact".
func gapListsContain(fields map[string]interface{}, marker string) bool {
	var entries []interface{}
	for _, key := range []string{"critical_gaps", "high_priority_gaps", "medium_priority_gaps"} {
		if list, ok := fields[key].([]interface{}); ok {
			entries = append(entries, list...)
		}
	}
	joined := strings.ToLower(fmt.Sprintf("%v", entries))
	return strings.Contains(joined, marker)
}

// LiveAnalysis is the on-demand analysis of a single policy text.
type LiveAnalysis struct {
	Gaps    map[string]interface{} `json:"gaps_analysis"`
	Summary llm.SummarySections    `json:"citizen_summary"`
}

// AnalyzeText runs gap analysis and summarization over arbitrary policy
// text without persisting anything.
func (s *Service) AnalyzeText(ctx context.Context, policyText string, meta llm.PolicyMetadata) (*LiveAnalysis, error) {
	if s.analyzer == nil {
		return nil, fmt.Errorf("language model not configured")
	}

	gaps, err := s.analyzer.AnalyzePolicyGaps(ctx, policyText, meta)
	if err != nil {
		return nil, err
	}
	if !gaps.OK {
		return nil, fmt.Errorf("analysis response not usable: %s", gaps.Reason)
	}

	summary, err := s.analyzer.SummarizePolicy(ctx, policyText)
	if err != nil {
		return nil, err
	}

	return &LiveAnalysis{Gaps: gaps.Fields, Summary: summary}, nil
}

// ScrapePolicyText pulls the main article text from a policy URL.
func (s *Service) ScrapePolicyText(ctx context.Context, url string) (string, error) {
	return s.scraper.ExtractArticleText(ctx, url)
}

// Gaps returns the missing-information breakdown for a stored policy.
func (s *Service) Gaps(policyID string) (*models.PolicyRecord, []Gap, error) {
	record, err := s.store.GetPolicy(policyID)
	if err != nil {
		return nil, nil, err
	}
	return record, IdentifyGaps(record), nil
}

func (s *Service) Policy(id string) (*models.PolicyRecord, error) {
	return s.store.GetPolicy(id)
}

func (s *Service) Search(text, ministry string, limit int) ([]*models.PolicyRecord, error) {
	return s.store.SearchPolicies(text, ministry, limit)
}

func (s *Service) Ministries() ([]models.MinistryCount, error) {
	return s.store.ListMinistries()
}

// Statistics reports store-wide counts; "recent" means the last 30 days.
func (s *Service) Statistics() (*models.PolicyStats, error) {
	return s.store.PolicyStatistics(time.Now().AddDate(0, 0, -30))
}
