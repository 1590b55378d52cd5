package gap

import (
	"sort"
	"time"
)

// ScoredDocument is one scraped item scored against both lexicons. A
// document belongs to the corpus it was scraped from; the scores record how
// it reads from each side regardless.
type ScoredDocument struct {
	Content           string   `json:"content"`
	Source            string   `json:"source"`
	Platform          string   `json:"platform"`
	YouthScore        int      `json:"youth_score"`
	PoliticalScore    int      `json:"political_score"`
	YouthKeywords     []string `json:"youth_keywords"`
	PoliticalKeywords []string `json:"political_keywords"`
}

// ScoreDocument scores content against both lexicons.
func ScoreDocument(content, source, platform string) ScoredDocument {
	youthScore, youthKeywords := ScoreContent(content, YouthLexicon)
	politicalScore, politicalKeywords := ScoreContent(content, PoliticalLexicon)

	return ScoredDocument{
		Content:           content,
		Source:            source,
		Platform:          platform,
		YouthScore:        youthScore,
		PoliticalScore:    politicalScore,
		YouthKeywords:     youthKeywords,
		PoliticalKeywords: politicalKeywords,
	}
}

// TopicGap is the per-topic comparison between the two corpora. Focus values
// are averages of whole-document scores, so a topic inherits the weight of
// everything else discussed alongside it.
type TopicGap struct {
	TopicName         string  `json:"topic_name"`
	OriginalKeyword   string  `json:"original_keyword"`
	YouthFocus        float64 `json:"youth_focus"`
	PoliticalFocus    float64 `json:"political_focus"`
	GapScore          float64 `json:"gap_score"`
	YouthMentions     int     `json:"youth_mentions"`
	PoliticalMentions int     `json:"political_mentions"`
	Reliability       float64 `json:"reliability"`
}

// CalculateTopicGaps builds the gap table over the union of every keyword
// either corpus surfaced. Topics keep first-encounter order before the sort,
// which makes equal gap scores resolve deterministically. The sort is stable
// and descending by gap score.
func CalculateTopicGaps(youthDocs, politicalDocs []ScoredDocument) []TopicGap {
	var topics []string
	seen := make(map[string]bool)

	collect := func(docs []ScoredDocument) {
		for _, doc := range docs {
			for _, kw := range doc.YouthKeywords {
				if !seen[kw] {
					seen[kw] = true
					topics = append(topics, kw)
				}
			}
			for _, kw := range doc.PoliticalKeywords {
				if !seen[kw] {
					seen[kw] = true
					topics = append(topics, kw)
				}
			}
		}
	}
	collect(youthDocs)
	collect(politicalDocs)

	gaps := make([]TopicGap, 0, len(topics))

	for _, topic := range topics {
		youthSum, youthCount := 0, 0
		for _, doc := range youthDocs {
			if containsKeyword(doc.YouthKeywords, topic) {
				youthSum += doc.YouthScore
				youthCount++
			}
		}

		politicalSum, politicalCount := 0, 0
		for _, doc := range politicalDocs {
			if containsKeyword(doc.PoliticalKeywords, topic) {
				politicalSum += doc.PoliticalScore
				politicalCount++
			}
		}

		youthAvg := float64(youthSum) / float64(maxInt(youthCount, 1))
		politicalAvg := float64(politicalSum) / float64(maxInt(politicalCount, 1))

		gaps = append(gaps, TopicGap{
			TopicName:         DescribeTopic(topic),
			OriginalKeyword:   topic,
			YouthFocus:        youthAvg,
			PoliticalFocus:    politicalAvg,
			GapScore:          youthAvg - politicalAvg,
			YouthMentions:     youthCount,
			PoliticalMentions: politicalCount,
			Reliability:       float64(minInt(youthCount+politicalCount, 10)) / 10,
		})
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].GapScore > gaps[j].GapScore
	})

	return gaps
}

// Analysis is the full youth-vs-political comparison over one scrape cycle.
type Analysis struct {
	Timestamp        time.Time        `json:"timestamp"`
	DataSources      DataSources      `json:"data_sources"`
	OverallScores    OverallScores    `json:"overall_scores"`
	TopicGaps        []TopicGap       `json:"topic_gaps"`
	TopGaps          []TopicGap       `json:"top_gaps"`
	ReliabilityNotes ReliabilityNotes `json:"reliability_notes"`
}

type DataSources struct {
	YouthSources     int `json:"youth_sources"`
	PoliticalSources int `json:"political_sources"`
	TotalItems       int `json:"total_items"`
}

type OverallScores struct {
	TotalYouthScore     int `json:"total_youth_score"`
	TotalPoliticalScore int `json:"total_political_score"`
	OverallGap          int `json:"overall_gap"`
}

type ReliabilityNotes struct {
	DataPoints       int     `json:"data_points"`
	ReliabilityScore float64 `json:"reliability_score"`
	Methodology      string  `json:"methodology"`
}

// BuildAnalysis assembles the analysis envelope from scored corpora.
func BuildAnalysis(youthDocs, politicalDocs []ScoredDocument) Analysis {
	gaps := CalculateTopicGaps(youthDocs, politicalDocs)

	totalYouth := 0
	for _, doc := range youthDocs {
		totalYouth += doc.YouthScore
	}
	totalPolitical := 0
	for _, doc := range politicalDocs {
		totalPolitical += doc.PoliticalScore
	}

	topGaps := gaps
	if len(topGaps) > 10 {
		topGaps = topGaps[:10]
	}

	totalDocs := len(youthDocs) + len(politicalDocs)

	return Analysis{
		Timestamp: time.Now(),
		DataSources: DataSources{
			YouthSources:     len(youthDocs),
			PoliticalSources: len(politicalDocs),
			TotalItems:       totalDocs,
		},
		OverallScores: OverallScores{
			TotalYouthScore:     totalYouth,
			TotalPoliticalScore: totalPolitical,
			OverallGap:          totalYouth - totalPolitical,
		},
		TopicGaps: gaps,
		TopGaps:   topGaps,
		ReliabilityNotes: ReliabilityNotes{
			DataPoints:       totalDocs,
			ReliabilityScore: float64(minInt(totalDocs, 50)) / 50,
			Methodology:      "Real-time analysis of youth vs political content using keyword scoring",
		},
	}
}

func containsKeyword(keywords []string, target string) bool {
	for _, kw := range keywords {
		if kw == target {
			return true
		}
	}
	return false
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
