package opinions

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/civiclens/backend/internal/scraper"
	"github.com/civiclens/backend/pkg/logger"
)

const maxReturnedPosts = 100

// Post is one youth-relevant opinion unit ready for the API.
type Post struct {
	Platform       string    `json:"platform"`
	Source         string    `json:"source"`
	Title          string    `json:"title,omitempty"`
	Content        string    `json:"content"`
	URL            string    `json:"url,omitempty"`
	Engagement     int       `json:"engagement"`
	Sentiment      Sentiment `json:"sentiment"`
	YouthKeywords  []string  `json:"youth_keywords"`
	RelevanceScore float64   `json:"relevance_score"`
	Timestamp      time.Time `json:"timestamp"`
}

// KeywordCount pairs a keyword with its frequency across posts.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// TrendReport aggregates sentiment and keyword activity over a post batch.
type TrendReport struct {
	TotalPosts            int                `json:"total_posts"`
	SentimentDistribution map[string]float64 `json:"sentiment_distribution"`
	TopKeywords           []KeywordCount     `json:"top_keywords"`
	PlatformDistribution  map[string]int     `json:"platform_distribution"`
	AnalysisTimestamp     string             `json:"analysis_timestamp"`
}

// SentimentSummary is the condensed view for the sentiment endpoint.
type SentimentSummary struct {
	OverallSentiment      map[string]float64 `json:"overall_sentiment"`
	TopConcerns           []string           `json:"top_concerns"`
	PlatformActivity      map[string]int     `json:"platform_activity"`
	TotalOpinionsAnalyzed int                `json:"total_opinions_analyzed"`
	AnalysisTimestamp     string             `json:"analysis_timestamp"`
}

type Service struct {
	scraper *scraper.Client
}

func NewService(sc *scraper.Client) *Service {
	return &Service{scraper: sc}
}

// FetchOpinions scrapes the youth sources, keeps keyword-relevant items and
// ranks them by relevance. An empty scrape falls back to the static sample
// set so the surface is never blank.
func (s *Service) FetchOpinions(ctx context.Context) []Post {
	var posts []Post
	if s.scraper != nil {
		items := s.scraper.FetchAll(ctx, scraper.YouthSources)
		posts = buildPosts(items)
	}

	if len(posts) == 0 {
		logger.Warn("No live youth opinions, serving sample set")
		return SamplePosts()
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].RelevanceScore > posts[j].RelevanceScore
	})
	if len(posts) > maxReturnedPosts {
		posts = posts[:maxReturnedPosts]
	}

	logger.Info("Youth opinions fetched", zap.Int("count", len(posts)))
	return posts
}

func buildPosts(items []scraper.Item) []Post {
	var posts []Post
	for _, item := range items {
		content := item.Content
		if len(content) > 500 {
			content = content[:500]
		}

		keywords := ExtractYouthKeywords(content)
		if len(keywords) == 0 {
			continue
		}

		platform := item.Platform
		if platform == "reddit" {
			platform = "forum-post"
		}

		relevance := relevanceScore(platform, len(keywords), item.Score)
		posts = append(posts, Post{
			Platform:       platform,
			Source:         item.SourceName,
			Title:          item.Title,
			Content:        content,
			URL:            item.SourceURL,
			Engagement:     item.Score,
			Sentiment:      AnalyzeSentiment(content),
			YouthKeywords:  keywords,
			RelevanceScore: relevance,
			Timestamp:      time.Now(),
		})
	}
	return posts
}

// relevanceScore weights keyword density by engagement for social posts and
// uses a flat base for news items, which carry no engagement signal.
func relevanceScore(platform string, keywordCount, engagement int) float64 {
	if platform == "news" {
		return float64(keywordCount) * 10
	}
	if engagement < 1 {
		engagement = 1
	}
	return float64(keywordCount) * float64(engagement) / 100
}

// AnalyzeTrends summarizes sentiment, keyword and platform distribution over
// a post batch. An empty batch yields a zero report, not an error.
func AnalyzeTrends(posts []Post) TrendReport {
	report := TrendReport{
		TotalPosts:            len(posts),
		SentimentDistribution: map[string]float64{"positive": 0, "negative": 0, "neutral": 0},
		PlatformDistribution:  map[string]int{},
		AnalysisTimestamp:     time.Now().Format(time.RFC3339),
	}
	if len(posts) == 0 {
		return report
	}

	sentimentCounts := map[string]int{}
	keywordCounts := map[string]int{}
	var keywordOrder []string

	for _, post := range posts {
		sentimentCounts[post.Sentiment.Overall]++
		report.PlatformDistribution[post.Platform]++
		for _, kw := range post.YouthKeywords {
			if keywordCounts[kw] == 0 {
				keywordOrder = append(keywordOrder, kw)
			}
			keywordCounts[kw]++
		}
	}

	total := float64(len(posts))
	for sentiment, count := range sentimentCounts {
		report.SentimentDistribution[sentiment] = float64(count) / total * 100
	}

	counts := make([]KeywordCount, 0, len(keywordOrder))
	for _, kw := range keywordOrder {
		counts = append(counts, KeywordCount{Keyword: kw, Count: keywordCounts[kw]})
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	if len(counts) > 10 {
		counts = counts[:10]
	}
	report.TopKeywords = counts

	return report
}

// Summarize condenses a trend report for the sentiment endpoint.
func Summarize(report TrendReport) SentimentSummary {
	concerns := make([]string, 0, 5)
	for _, kc := range report.TopKeywords {
		concerns = append(concerns, kc.Keyword)
		if len(concerns) == 5 {
			break
		}
	}

	return SentimentSummary{
		OverallSentiment:      report.SentimentDistribution,
		TopConcerns:           concerns,
		PlatformActivity:      report.PlatformDistribution,
		TotalOpinionsAnalyzed: report.TotalPosts,
		AnalysisTimestamp:     report.AnalysisTimestamp,
	}
}

// SamplePosts is the static fallback batch used when every live source
// fails.
func SamplePosts() []Post {
	now := time.Now()
	return []Post{
		{
			Platform:       "social-post",
			Source:         "Twitter",
			Content:        "Students are concerned about job opportunities in 2025.",
			Engagement:     42,
			Sentiment:      Sentiment{Overall: "positive", Compound: 0.2, Confidence: 0.2},
			YouthKeywords:  []string{"student", "job", "opportunity"},
			RelevanceScore: 1.26,
			Timestamp:      now,
		},
		{
			Platform:       "forum-post",
			Source:         "Reddit",
			Content:        "Discussion about mental health resources at colleges.",
			Engagement:     18,
			Sentiment:      Sentiment{Overall: "neutral", Compound: 0, Confidence: 0},
			YouthKeywords:  []string{"college", "mental health"},
			RelevanceScore: 0.36,
			Timestamp:      now,
		},
		{
			Platform:       "social-post",
			Source:         "YouTube",
			Content:        "Rising living costs impacting freshers in metro cities.",
			Engagement:     67,
			Sentiment:      Sentiment{Overall: "negative", Compound: -0.3, Confidence: 0.3},
			YouthKeywords:  []string{"young"},
			RelevanceScore: 0.67,
			Timestamp:      now,
		},
	}
}
