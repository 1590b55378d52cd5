package gap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/civiclens/backend/internal/scraper"
)

func newTestService() *Service {
	client := scraper.NewClient("CivicLens-PolicyBot/1.0", 2, 0, 10)
	return NewService(client, nil, 0)
}

func TestCleanHeadline(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Budget 2026: What's in it for students?", "Budget 2026 Whats in it for students"},
		{"  spaced   out \n title ", "spaced out title"},
		{"plain headline", "plain headline"},
	}
	for _, tt := range tests {
		if got := cleanHeadline(tt.in); got != tt.want {
			t.Errorf("cleanHeadline(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

const topicsFeed = `<?xml version="1.0"?><rss><channel>
	<item><title>Student unemployment reaches record high in urban centres</title><link>https://example.com/1</link></item>
	<item><title>Parliament debates new education funding bill</title><link>https://example.com/2</link></item>
	<item><title>Mental health services expand across college campuses</title><link>https://example.com/3</link></item>
	<item><title>Climate activists rally outside state assembly</title><link>https://example.com/4</link></item>
	<item><title>Startup founders seek simpler compliance rules</title><link>https://example.com/5</link></item>
	<item><title>Housing prices squeeze first-time buyers in metros</title><link>https://example.com/6</link></item>
	<item><title>Minister announces skill development scheme for youth</title><link>https://example.com/7</link></item>
	<item><title>short</title><link>https://example.com/8</link></item>
</channel></rss>`

func TestMissingTopicsLiveTier(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(topicsFeed))
	}))
	defer server.Close()

	orig := scraper.AccessibleSources
	scraper.AccessibleSources = []scraper.Source{{Name: "Test Feed", URL: server.URL, Type: "rss"}}
	defer func() { scraper.AccessibleSources = orig }()

	result := newTestService().MissingTopics(context.Background())

	if result.DataSource != "live_scraped" {
		t.Fatalf("DataSource = %q", result.DataSource)
	}
	if result.Note != "Data scraped from live RSS feeds and news sources" {
		t.Errorf("Note = %q", result.Note)
	}
	// The too-short title is filtered; seven usable headlines remain.
	if len(result.Comparison) != 7 {
		t.Fatalf("got %d rows, want 7", len(result.Comparison))
	}
	for i := 1; i < len(result.Comparison); i++ {
		if result.Comparison[i].GapScore > result.Comparison[i-1].GapScore {
			t.Fatalf("rows not sorted by gap: %d before %d",
				result.Comparison[i-1].GapScore, result.Comparison[i].GapScore)
		}
	}
	for _, row := range result.Comparison {
		if row.DataSource != "live_scraped" {
			t.Errorf("row %q DataSource = %q", row.Topic, row.DataSource)
		}
	}
	if len(result.Sources) != 1 || result.Sources[0] != "Test Feed" {
		t.Errorf("Sources = %v", result.Sources)
	}
}

func TestMissingTopicsCuratedFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	orig := scraper.AccessibleSources
	scraper.AccessibleSources = []scraper.Source{{Name: "down", URL: server.URL, Type: "rss"}}
	defer func() { scraper.AccessibleSources = orig }()

	result := newTestService().MissingTopics(context.Background())

	if result.DataSource != "curated_fallback" {
		t.Fatalf("DataSource = %q", result.DataSource)
	}
	if result.Note != "Live scraping unavailable. Using curated data based on current Indian political and youth issues." {
		t.Errorf("Note = %q", result.Note)
	}
	if len(result.Comparison) != 25 {
		t.Errorf("got %d rows, want 25 curated topics", len(result.Comparison))
	}
	if len(result.Sources) != 1 || result.Sources[0] != "Curated data based on current Indian issues" {
		t.Errorf("Sources = %v", result.Sources)
	}
}

func TestEmergencyTopics(t *testing.T) {
	result := newTestService().EmergencyTopics()

	if result.DataSource != "emergency_fallback" {
		t.Fatalf("DataSource = %q", result.DataSource)
	}
	if result.Note != "System error occurred. Using emergency fallback data." {
		t.Errorf("Note = %q", result.Note)
	}
	if len(result.Comparison) != 5 {
		t.Fatalf("got %d rows, want 5", len(result.Comparison))
	}
	if result.Comparison[0].Topic != "Youth Unemployment Crisis" || result.Comparison[0].GapScore != 35 {
		t.Errorf("unexpected first row: %+v", result.Comparison[0])
	}
}

func TestYouthTopics(t *testing.T) {
	rows := newTestService().YouthTopics()

	if len(rows) != 10 {
		t.Fatalf("got %d rows, want 10", len(rows))
	}
	// jobs: frequency 15 -> 45 youth mentions, 22 politician, gap 23.
	first := rows[0]
	if first.Topic != "Jobs" || first.YouthMentions != 45 || first.PoliticianMentions != 22 || first.GapScore != 23 {
		t.Errorf("first row = %+v", first)
	}
	if first.Frequency != 15 {
		t.Errorf("Frequency = %d", first.Frequency)
	}
	// transport: frequency 3 -> 9 youth mentions, floor of 5 politician, gap 4.
	last := rows[len(rows)-1]
	if last.Topic != "Transport" || last.YouthMentions != 9 || last.PoliticianMentions != 5 || last.GapScore != 4 {
		t.Errorf("last row = %+v", last)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].GapScore > rows[i-1].GapScore {
			t.Fatalf("rows not sorted by gap")
		}
	}
}

func TestAnalyzeLive(t *testing.T) {
	const youthFeed = `<?xml version="1.0"?><rss><channel>
		<item><title>Students struggle with job market after graduation</title>
			<description>Unemployment among college students rises as placement drives shrink</description>
			<link>https://example.com/y1</link></item>
		<item><title>Mental health support lacking on campus</title>
			<description>Students report anxiety over exams and fees</description>
			<link>https://example.com/y2</link></item>
	</channel></rss>`
	const politicalFeed = `<?xml version="1.0"?><rss><channel>
		<item><title>Government announces new infrastructure scheme</title>
			<description>The minister presented the budget allocation in parliament</description>
			<link>https://example.com/p1</link></item>
	</channel></rss>`

	youthServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(youthFeed))
	}))
	defer youthServer.Close()
	politicalServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(politicalFeed))
	}))
	defer politicalServer.Close()

	origYouth, origPolitical := scraper.YouthSources, scraper.PoliticalSources
	scraper.YouthSources = []scraper.Source{{Name: "Youth Feed", URL: youthServer.URL, Type: "rss"}}
	scraper.PoliticalSources = []scraper.Source{{Name: "Political Feed", URL: politicalServer.URL, Type: "rss"}}
	defer func() {
		scraper.YouthSources = origYouth
		scraper.PoliticalSources = origPolitical
	}()

	analysis := newTestService().Analyze(context.Background())

	if analysis.DataSources.YouthSources != 2 || analysis.DataSources.PoliticalSources != 1 {
		t.Fatalf("DataSources = %+v", analysis.DataSources)
	}
	if analysis.DataSources.TotalItems != 3 {
		t.Errorf("TotalItems = %d", analysis.DataSources.TotalItems)
	}
	if analysis.OverallScores.TotalYouthScore <= 0 {
		t.Errorf("TotalYouthScore = %d", analysis.OverallScores.TotalYouthScore)
	}
	if analysis.OverallScores.TotalPoliticalScore <= 0 {
		t.Errorf("TotalPoliticalScore = %d", analysis.OverallScores.TotalPoliticalScore)
	}
	if len(analysis.TopGaps) == 0 {
		t.Fatal("no topic gaps produced")
	}
	want := float64(3) / 50
	if analysis.ReliabilityNotes.ReliabilityScore != want {
		t.Errorf("ReliabilityScore = %v, want %v", analysis.ReliabilityNotes.ReliabilityScore, want)
	}
}
