package gap

import (
	"math/rand"
	"strings"
	"testing"
)

func TestScoreContentCountsAndOrder(t *testing.T) {
	t.Parallel()

	score, keywords := ScoreContent("Job job JOB hunting is brutal", YouthLexicon)
	// "job" weight 9, three case-insensitive occurrences.
	if score != 27 {
		t.Errorf("score = %d, want 27", score)
	}
	if len(keywords) != 1 || keywords[0] != "job" {
		t.Errorf("keywords = %v, want [job]", keywords)
	}
}

func TestScoreContentPhraseAlsoFiresSubstrings(t *testing.T) {
	t.Parallel()

	_, keywords := ScoreContent("student loan repayments are crushing", YouthLexicon)

	wantPresent := []string{"student", "student loan"}
	for _, kw := range wantPresent {
		found := false
		for _, got := range keywords {
			if got == kw {
				found = true
			}
		}
		if !found {
			t.Errorf("keyword %q missing from %v", kw, keywords)
		}
	}

	// Matched keywords come back in lexicon order.
	idxStudent, idxLoan := -1, -1
	for i, kw := range keywords {
		if kw == "student" {
			idxStudent = i
		}
		if kw == "student loan" {
			idxLoan = i
		}
	}
	if idxStudent > idxLoan {
		t.Error("keywords not in lexicon order")
	}
}

func TestCalculateTopicGapsBasic(t *testing.T) {
	t.Parallel()

	youthDocs := []ScoredDocument{
		ScoreDocument("Cannot find a job after graduating", "Reddit Indian Students", "reddit"),
	}
	politicalDocs := []ScoredDocument{
		ScoreDocument("Minister announces new policy framework", "The Hindu National RSS", "news"),
	}

	gaps := CalculateTopicGaps(youthDocs, politicalDocs)
	if len(gaps) == 0 {
		t.Fatal("expected at least one topic gap")
	}

	byKeyword := make(map[string]TopicGap)
	for _, g := range gaps {
		byKeyword[g.OriginalKeyword] = g
	}

	job, ok := byKeyword["job"]
	if !ok {
		t.Fatal("expected a gap row for job")
	}
	if job.YouthFocus != float64(youthDocs[0].YouthScore) {
		t.Errorf("job youth focus = %v, want the single document's score %d", job.YouthFocus, youthDocs[0].YouthScore)
	}
	if job.PoliticalFocus != 0 {
		t.Errorf("job political focus = %v, want 0 (not mentioned politically)", job.PoliticalFocus)
	}
	if job.GapScore != job.YouthFocus-job.PoliticalFocus {
		t.Error("gap score must equal youth focus minus political focus")
	}
	if job.Reliability != 0.1 {
		t.Errorf("job reliability = %v, want 0.1 for one data point", job.Reliability)
	}

	policy, ok := byKeyword["policy"]
	if !ok {
		t.Fatal("expected a gap row for policy")
	}
	if policy.GapScore >= 0 {
		t.Errorf("policy gap = %v, want negative (political-only mention)", policy.GapScore)
	}
}

func TestCalculateTopicGapsSortedDescending(t *testing.T) {
	t.Parallel()

	youthDocs := []ScoredDocument{
		ScoreDocument("unemployment unemployment unemployment crisis", "r/IndianTeenagers", "reddit"),
		ScoreDocument("cheap rent is impossible to find", "r/IndianStudents", "reddit"),
	}
	politicalDocs := []ScoredDocument{
		ScoreDocument("parliament passes defense budget bill", "TOI", "news"),
	}

	gaps := CalculateTopicGaps(youthDocs, politicalDocs)
	for i := 1; i < len(gaps); i++ {
		if gaps[i-1].GapScore < gaps[i].GapScore {
			t.Fatalf("gaps not sorted descending at %d: %v < %v", i, gaps[i-1].GapScore, gaps[i].GapScore)
		}
	}
}

func TestCalculateTopicGapsEmptyCorpora(t *testing.T) {
	t.Parallel()

	if gaps := CalculateTopicGaps(nil, nil); len(gaps) != 0 {
		t.Errorf("empty corpora must produce no gaps, got %d", len(gaps))
	}
}

func TestReliabilityCaps(t *testing.T) {
	t.Parallel()

	var youthDocs []ScoredDocument
	for i := 0; i < 30; i++ {
		youthDocs = append(youthDocs, ScoreDocument("job hunting again", "r/IndianStudents", "reddit"))
	}

	gaps := CalculateTopicGaps(youthDocs, nil)
	for _, g := range gaps {
		if g.OriginalKeyword == "job" && g.Reliability != 1.0 {
			t.Errorf("per-topic reliability = %v, want capped at 1.0", g.Reliability)
		}
	}

	analysis := BuildAnalysis(youthDocs, nil)
	if analysis.ReliabilityNotes.ReliabilityScore != float64(30)/50 {
		t.Errorf("overall reliability = %v, want 0.6 for 30 docs", analysis.ReliabilityNotes.ReliabilityScore)
	}

	for i := 0; i < 40; i++ {
		youthDocs = append(youthDocs, ScoreDocument("job hunting again", "r/IndianStudents", "reddit"))
	}
	analysis = BuildAnalysis(youthDocs, nil)
	if analysis.ReliabilityNotes.ReliabilityScore != 1.0 {
		t.Errorf("overall reliability = %v, want capped at 1.0 for 70 docs", analysis.ReliabilityNotes.ReliabilityScore)
	}
}

func TestBuildAnalysisTopGapsLimit(t *testing.T) {
	t.Parallel()

	youthDocs := []ScoredDocument{
		ScoreDocument("education job career startup housing healthcare stress anxiety future skill rent metro traffic", "r/IndianStudents", "reddit"),
	}

	analysis := BuildAnalysis(youthDocs, nil)
	if len(analysis.TopGaps) > 10 {
		t.Errorf("top gaps = %d rows, want at most 10", len(analysis.TopGaps))
	}
	if analysis.OverallScores.OverallGap != analysis.OverallScores.TotalYouthScore-analysis.OverallScores.TotalPoliticalScore {
		t.Error("overall gap must be total youth minus total political")
	}
}

func TestDescribeTopic(t *testing.T) {
	t.Parallel()

	if got := DescribeTopic("mental health"); got != "Mental Health Crisis" {
		t.Errorf("DescribeTopic(mental health) = %q", got)
	}
	if got := DescribeTopic("quantum farming"); got != "Quantum Farming" {
		t.Errorf("unmapped keyword must title-case, got %q", got)
	}
}

func TestCuratedComparisonConsistency(t *testing.T) {
	t.Parallel()

	rows := CuratedComparison()
	if len(rows) != len(curatedYouthTopics)+len(curatedPoliticianTopics) {
		t.Fatalf("rows = %d, want %d", len(rows), len(curatedYouthTopics)+len(curatedPoliticianTopics))
	}
	for _, row := range rows {
		if row.YouthMentions < 0 || row.PoliticianMentions < 0 {
			t.Errorf("%s: mention counts must be non-negative", row.Topic)
		}
		if row.Description == "" {
			t.Errorf("%s: missing description", row.Topic)
		}
	}
	if rows[0].Topic != "Unemployment and Job Crisis" {
		t.Errorf("first curated row = %q, youth topics must come first", rows[0].Topic)
	}
}

func TestBuildTopicDescription(t *testing.T) {
	t.Parallel()

	got := BuildTopicDescription("Housing", 40, 10, 0)
	if got != "Housing: Youth interest is higher than political focus by 30 points." {
		t.Errorf("positive gap description = %q", got)
	}

	got = BuildTopicDescription("Defense", 10, 28, 0)
	if !strings.Contains(got, "Political focus exceeds youth interest by 18 points") {
		t.Errorf("negative gap description = %q", got)
	}

	got = BuildTopicDescription("Metro", 5, 5, 12)
	if !strings.Contains(got, "balanced") || !strings.Contains(got, "Observed in 12 recent mentions") {
		t.Errorf("balanced description with frequency = %q", got)
	}
}

func TestLiveComparisonRowBounds(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		row := LiveComparisonRow("Students protest over job policy and government scheme", rng)
		if row.YouthMentions > 60 || row.PoliticianMentions > 50 {
			t.Fatalf("mentions exceed caps: %+v", row)
		}
		if row.GapScore != row.YouthMentions-row.PoliticianMentions {
			t.Fatalf("gap score mismatch: %+v", row)
		}
	}
}
