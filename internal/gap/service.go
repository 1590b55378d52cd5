package gap

import (
	"context"
	"math/rand"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/civiclens/backend/internal/cache/redis"
	"github.com/civiclens/backend/internal/metrics"
	"github.com/civiclens/backend/internal/scraper"
	"github.com/civiclens/backend/pkg/logger"
)

// liveRowThreshold is the minimum number of distinct scraped headlines
// required before the live tier is trusted over the curated table.
const liveRowThreshold = 5

const (
	missingTopicsCacheKey = "missing_topics"
	gapAnalysisCacheKey   = "gap_analysis"
)

// MissingTopicsResult is the missing-topics table plus the provenance the
// response metadata reports.
type MissingTopicsResult struct {
	Comparison []TopicComparison `json:"comparison"`
	DataSource string            `json:"data_source"`
	Sources    []string          `json:"sources"`
	Note       string            `json:"note"`
}

// YouthTopic is one row of the standalone youth-topics table. Frequency is
// the raw observation count the mention estimates were derived from.
type YouthTopic struct {
	Topic              string `json:"topic"`
	YouthMentions      int    `json:"youth_mentions"`
	PoliticianMentions int    `json:"politician_mentions"`
	GapScore           int    `json:"gap_score"`
	Frequency          int    `json:"frequency"`
	Description        string `json:"description"`
}

// Service orchestrates gap analysis over the scraped corpora, with a redis
// cache in front of the expensive scrape cycles. The cache is optional; a
// nil cache just means every call scrapes.
type Service struct {
	scraper  *scraper.Client
	cache    *redis.Client
	cacheTTL time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

func NewService(sc *scraper.Client, cache *redis.Client, cacheTTL time.Duration) *Service {
	if cacheTTL <= 0 {
		cacheTTL = 15 * time.Minute
	}
	return &Service{
		scraper:  sc,
		cache:    cache,
		cacheTTL: cacheTTL,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

var headlinePunct = regexp.MustCompile(`[^\w\s-]`)

// cleanHeadline strips feed punctuation and collapses whitespace so the
// same story from two feeds dedupes.
func cleanHeadline(title string) string {
	cleaned := headlinePunct.ReplaceAllString(title, "")
	return strings.Join(strings.Fields(cleaned), " ")
}

// MissingTopics serves the youth-vs-politician comparison table. Live RSS
// data is preferred; when the feeds yield too few usable headlines the
// curated table takes over so the endpoint never returns an empty body.
func (s *Service) MissingTopics(ctx context.Context) MissingTopicsResult {
	if s.cache != nil {
		var cached MissingTopicsResult
		hit, err := s.cache.GetAnalysis(ctx, missingTopicsCacheKey, &cached)
		if err != nil {
			logger.Warn("Topics cache read failed", zap.Error(err))
		} else if hit {
			metrics.CacheHits.WithLabelValues("topics").Inc()
			return cached
		}
		metrics.CacheMisses.WithLabelValues("topics").Inc()
	}

	headlines := s.liveHeadlines(ctx)
	if len(headlines) > liveRowThreshold {
		result := s.liveComparison(headlines)
		metrics.TopicFallbackTier.WithLabelValues("live").Inc()
		s.storeCached(ctx, missingTopicsCacheKey, result)
		return result
	}

	logger.Warn("Live topic scrape below threshold, using curated table",
		zap.Int("headlines", len(headlines)),
	)
	metrics.TopicFallbackTier.WithLabelValues("curated").Inc()
	return MissingTopicsResult{
		Comparison: CuratedComparison(),
		DataSource: "curated_fallback",
		Sources:    []string{"Curated data based on current Indian issues"},
		Note:       "Live scraping unavailable. Using curated data based on current Indian political and youth issues.",
	}
}

// EmergencyTopics is the last-resort table for when serving even the
// curated path panics or errors.
func (s *Service) EmergencyTopics() MissingTopicsResult {
	metrics.TopicFallbackTier.WithLabelValues("emergency").Inc()
	return MissingTopicsResult{
		Comparison: EmergencyComparison(),
		DataSource: "emergency_fallback",
		Sources:    []string{"Static emergency data"},
		Note:       "System error occurred. Using emergency fallback data.",
	}
}

// liveHeadlines scrapes the accessible feeds and returns distinct cleaned
// headlines. Very short titles are feed noise; very long ones are usually
// mangled markup.
func (s *Service) liveHeadlines(ctx context.Context) []string {
	items := s.scraper.FetchAll(ctx, scraper.AccessibleSources)

	seen := make(map[string]bool)
	var headlines []string
	for _, item := range items {
		title := cleanHeadline(item.Title)
		if len(title) <= 10 || len(title) >= 200 {
			continue
		}
		if seen[title] {
			continue
		}
		seen[title] = true
		headlines = append(headlines, title)
	}
	return headlines
}

func (s *Service) liveComparison(headlines []string) MissingTopicsResult {
	s.mu.Lock()
	rows := make([]TopicComparison, 0, len(headlines))
	for _, headline := range headlines {
		rows = append(rows, LiveComparisonRow(headline, s.rng))
	}
	s.mu.Unlock()

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].GapScore > rows[j].GapScore
	})

	sources := make([]string, 0, len(scraper.AccessibleSources))
	for _, src := range scraper.AccessibleSources {
		sources = append(sources, src.Name)
	}

	return MissingTopicsResult{
		Comparison: rows,
		DataSource: "live_scraped",
		Sources:    sources,
		Note:       "Data scraped from live RSS feeds and news sources",
	}
}

// youthTopicFrequencies is the observation table behind the youth-topics
// endpoint: keyword and how often it surfaced in recent youth discussion.
var youthTopicFrequencies = []struct {
	keyword   string
	frequency int
}{
	{"jobs", 15},
	{"mental health", 11},
	{"education", 13},
	{"inflation", 9},
	{"housing", 8},
	{"climate", 7},
	{"women safety", 6},
	{"startup", 5},
	{"privacy", 4},
	{"transport", 3},
}

// YouthTopics derives the youth-topics table from the frequency
// observations. Youth mentions scale with frequency up to a cap; political
// mentions are assumed to track youth interest at half strength with a
// floor so no topic reads as entirely ignored.
func (s *Service) YouthTopics() []YouthTopic {
	rows := make([]YouthTopic, 0, len(youthTopicFrequencies))
	for _, entry := range youthTopicFrequencies {
		youthMentions := minInt(entry.frequency*3, 60)
		politicianMentions := maxInt(5, youthMentions/2)
		topic := titleCase(entry.keyword)
		rows = append(rows, YouthTopic{
			Topic:              topic,
			YouthMentions:      youthMentions,
			PoliticianMentions: politicianMentions,
			GapScore:           youthMentions - politicianMentions,
			Frequency:          entry.frequency,
			Description:        BuildTopicDescription(topic, youthMentions, politicianMentions, entry.frequency),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].GapScore > rows[j].GapScore
	})
	return rows
}

// Analyze runs a full scrape-and-score cycle over both corpora. Sources
// that fail are skipped inside the scraper, so the analysis reflects
// whatever content was reachable; an empty cycle still produces a valid
// (zero-reliability) analysis.
func (s *Service) Analyze(ctx context.Context) Analysis {
	if s.cache != nil {
		var cached Analysis
		hit, err := s.cache.GetAnalysis(ctx, gapAnalysisCacheKey, &cached)
		if err != nil {
			logger.Warn("Analysis cache read failed", zap.Error(err))
		} else if hit {
			metrics.CacheHits.WithLabelValues("analysis").Inc()
			return cached
		}
		metrics.CacheMisses.WithLabelValues("analysis").Inc()
	}

	youthDocs := s.scoreCorpus(ctx, scraper.YouthSources)
	politicalDocs := s.scoreCorpus(ctx, scraper.PoliticalSources)

	analysis := BuildAnalysis(youthDocs, politicalDocs)

	metrics.ScrapedItems.Observe(float64(analysis.DataSources.TotalItems))
	metrics.GapAnalysisReliability.Set(analysis.ReliabilityNotes.ReliabilityScore)

	logger.Info("Gap analysis complete",
		zap.Int("youth_docs", len(youthDocs)),
		zap.Int("political_docs", len(politicalDocs)),
		zap.Float64("reliability", analysis.ReliabilityNotes.ReliabilityScore),
	)

	s.storeCached(ctx, gapAnalysisCacheKey, analysis)
	return analysis
}

func (s *Service) scoreCorpus(ctx context.Context, sources []scraper.Source) []ScoredDocument {
	items := s.scraper.FetchAll(ctx, sources)

	docs := make([]ScoredDocument, 0, len(items))
	for _, item := range items {
		content := strings.TrimSpace(item.Title + " " + item.Content)
		if content == "" {
			continue
		}
		docs = append(docs, ScoreDocument(content, item.SourceName, item.Platform))
	}
	return docs
}

// InvalidateCache drops cached analyses, typically after a manual refresh.
func (s *Service) InvalidateCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.InvalidateAnalysisCache(ctx)
}

func (s *Service) storeCached(ctx context.Context, key string, payload interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetAnalysis(ctx, key, payload, s.cacheTTL); err != nil {
		logger.Warn("Analysis cache write failed", zap.String("key", key), zap.Error(err))
	}
}
