package opinions

import (
	"strings"

	prose "github.com/jdkato/prose/v2"
)

// Sentiment is a coarse verdict over one post. Overall is positive, negative
// or neutral; Confidence is the absolute polarity in [0,1].
type Sentiment struct {
	Overall    string  `json:"overall"`
	Compound   float64 `json:"compound"`
	Confidence float64 `json:"confidence"`
}

const sentimentThreshold = 0.05

var positiveWords = map[string]struct{}{
	"good": {}, "great": {}, "excellent": {}, "amazing": {}, "awesome": {},
	"happy": {}, "hopeful": {}, "optimistic": {}, "positive": {}, "support": {},
	"improve": {}, "improved": {}, "improving": {}, "success": {}, "successful": {},
	"opportunity": {}, "opportunities": {}, "win": {}, "winning": {}, "benefit": {},
	"helpful": {}, "progress": {}, "growth": {}, "better": {}, "best": {},
	"love": {}, "like": {}, "proud": {}, "excited": {}, "encouraging": {},
	"free": {}, "fair": {}, "strong": {}, "innovative": {}, "thriving": {},
}

var negativeWords = map[string]struct{}{
	"bad": {}, "terrible": {}, "awful": {}, "horrible": {}, "worst": {},
	"sad": {}, "angry": {}, "frustrated": {}, "frustrating": {}, "negative": {},
	"fail": {}, "failed": {}, "failing": {}, "failure": {}, "crisis": {},
	"problem": {}, "problems": {}, "unemployed": {}, "unemployment": {}, "struggle": {},
	"struggling": {}, "worried": {}, "worry": {}, "fear": {}, "scared": {},
	"corrupt": {}, "corruption": {}, "broken": {}, "stress": {}, "stressed": {},
	"rising": {}, "costly": {}, "expensive": {}, "poor": {}, "lack": {},
	"ignored": {}, "neglected": {}, "hopeless": {}, "difficult": {},
}

// AnalyzeSentiment scores a text by counting polarity-bearing tokens. This
// trades accuracy for zero external calls; the verdict feeds trend
// percentages, not decisions.
func AnalyzeSentiment(text string) Sentiment {
	tokens := tokenize(text)

	positive, negative := 0, 0
	for _, tok := range tokens {
		if _, ok := positiveWords[tok]; ok {
			positive++
		}
		if _, ok := negativeWords[tok]; ok {
			negative++
		}
	}

	compound := 0.0
	if positive+negative > 0 {
		compound = float64(positive-negative) / float64(positive+negative)
	}

	overall := "neutral"
	switch {
	case compound >= sentimentThreshold:
		overall = "positive"
	case compound <= -sentimentThreshold:
		overall = "negative"
	}

	confidence := compound
	if confidence < 0 {
		confidence = -confidence
	}

	return Sentiment{Overall: overall, Compound: compound, Confidence: confidence}
}

func tokenize(text string) []string {
	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
		prose.WithSegmentation(false),
	)
	if err != nil {
		return strings.Fields(strings.ToLower(text))
	}

	tokens := doc.Tokens()
	words := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		words = append(words, strings.ToLower(tok.Text))
	}
	return words
}
