package opinions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/civiclens/backend/internal/scraper"
)

func TestAnalyzeSentiment(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		overall string
	}{
		{"positive", "Great progress on education, hopeful about new opportunities", "positive"},
		{"negative", "Unemployment crisis is terrible, students are struggling and worried", "negative"},
		{"neutral no polarity words", "The committee met on Tuesday to discuss the agenda", "neutral"},
		{"mixed cancels out", "Good progress but terrible failure elsewhere", "neutral"},
		{"empty", "", "neutral"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeSentiment(tt.text)
			if got.Overall != tt.overall {
				t.Errorf("Overall = %s (compound %v), want %s", got.Overall, got.Compound, tt.overall)
			}
			if got.Confidence < 0 || got.Confidence > 1 {
				t.Errorf("Confidence = %v, want [0,1]", got.Confidence)
			}
		})
	}
}

func TestExtractYouthKeywords(t *testing.T) {
	got := ExtractYouthKeywords("Students worry about mental health and job prospects after college")
	want := []string{"student", "college", "job", "mental health"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v (lexicon order)", got, want)
		}
	}

	if got := ExtractYouthKeywords("Quarterly monsoon rainfall figures released"); got != nil {
		t.Errorf("expected no keywords, got %v", got)
	}
}

func TestAnalyzeTrends(t *testing.T) {
	posts := []Post{
		{Platform: "forum-post", Sentiment: Sentiment{Overall: "positive"}, YouthKeywords: []string{"job", "career"}},
		{Platform: "forum-post", Sentiment: Sentiment{Overall: "negative"}, YouthKeywords: []string{"job"}},
		{Platform: "news", Sentiment: Sentiment{Overall: "neutral"}, YouthKeywords: []string{"education", "job"}},
		{Platform: "news", Sentiment: Sentiment{Overall: "positive"}, YouthKeywords: []string{"education"}},
	}

	report := AnalyzeTrends(posts)
	if report.TotalPosts != 4 {
		t.Fatalf("TotalPosts = %d", report.TotalPosts)
	}
	if report.SentimentDistribution["positive"] != 50 {
		t.Errorf("positive = %v, want 50", report.SentimentDistribution["positive"])
	}
	if report.PlatformDistribution["news"] != 2 || report.PlatformDistribution["forum-post"] != 2 {
		t.Errorf("platform distribution = %v", report.PlatformDistribution)
	}
	if len(report.TopKeywords) != 3 {
		t.Fatalf("TopKeywords = %v", report.TopKeywords)
	}
	if report.TopKeywords[0].Keyword != "job" || report.TopKeywords[0].Count != 3 {
		t.Errorf("top keyword = %+v, want job/3", report.TopKeywords[0])
	}
	// education (2) before career (1).
	if report.TopKeywords[1].Keyword != "education" || report.TopKeywords[2].Keyword != "career" {
		t.Errorf("keyword order = %v", report.TopKeywords)
	}
}

func TestAnalyzeTrendsEmpty(t *testing.T) {
	report := AnalyzeTrends(nil)
	if report.TotalPosts != 0 {
		t.Errorf("TotalPosts = %d", report.TotalPosts)
	}
	if report.SentimentDistribution["positive"] != 0 {
		t.Errorf("expected zeroed distribution, got %v", report.SentimentDistribution)
	}
}

func TestSummarize(t *testing.T) {
	report := TrendReport{
		TotalPosts:            253,
		SentimentDistribution: map[string]float64{"positive": 42.5, "neutral": 37.0, "negative": 20.5},
		TopKeywords: []KeywordCount{
			{"job", 12}, {"mental health", 8}, {"education", 7},
			{"climate", 6}, {"housing", 5}, {"politics", 4},
		},
		PlatformDistribution: map[string]int{"forum-post": 120, "news": 85},
	}

	summary := Summarize(report)
	if summary.TotalOpinionsAnalyzed != 253 {
		t.Errorf("TotalOpinionsAnalyzed = %d", summary.TotalOpinionsAnalyzed)
	}
	if len(summary.TopConcerns) != 5 || summary.TopConcerns[0] != "job" {
		t.Errorf("TopConcerns = %v", summary.TopConcerns)
	}
}

func TestFetchOpinionsFallsBackToSample(t *testing.T) {
	// All sources fail: the sample set keeps the endpoint populated.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := scraper.NewClient("CivicLens-PolicyBot/1.0", 2, 0, 10)
	svc := NewService(client)

	// Point the fetch at the failing server via a one-off source list by
	// calling through FetchAll indirectly: the service uses the package
	// sources, so stub them.
	origSources := scraper.YouthSources
	scraper.YouthSources = []scraper.Source{{Name: "down", URL: server.URL, Type: "rss"}}
	defer func() { scraper.YouthSources = origSources }()

	posts := svc.FetchOpinions(context.Background())
	if len(posts) != 3 {
		t.Fatalf("got %d posts, want 3 sample posts", len(posts))
	}
	if posts[0].Source != "Twitter" {
		t.Errorf("unexpected sample ordering: %+v", posts[0])
	}
}

func TestFetchOpinionsLive(t *testing.T) {
	const feed = `<?xml version="1.0"?><rss><channel>
		<item><title>Students demand better mental health support on campus</title>
			<description>College students say counselling services are underfunded</description>
			<link>https://example.com/a</link></item>
		<item><title>Monsoon arrives early in Kerala</title>
			<description>Rainfall ahead of schedule</description>
			<link>https://example.com/b</link></item>
	</channel></rss>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(feed))
	}))
	defer server.Close()

	origSources := scraper.YouthSources
	scraper.YouthSources = []scraper.Source{{Name: "Test Feed", URL: server.URL, Type: "rss"}}
	defer func() { scraper.YouthSources = origSources }()

	client := scraper.NewClient("CivicLens-PolicyBot/1.0", 2, 0, 10)
	svc := NewService(client)

	posts := svc.FetchOpinions(context.Background())
	// Only the youth-relevant item survives the keyword filter.
	if len(posts) != 1 {
		t.Fatalf("got %d posts, want 1", len(posts))
	}
	if posts[0].Platform != "news" {
		t.Errorf("Platform = %s", posts[0].Platform)
	}
	if posts[0].RelevanceScore <= 0 {
		t.Errorf("RelevanceScore = %v", posts[0].RelevanceScore)
	}
}
