package analytics

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strings"

	"mediascope/pkg/common"
)

// EntityCount is one row of a top-entities result.
type EntityCount struct {
	Text  string `json:"text"`
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// EntitySentiment is one row of a sentiment-by-entity result. Counts are
// per contributing article, not per mention.
type EntitySentiment struct {
	EntityText    string  `json:"entity_text"`
	EntityType    string  `json:"entity_type"`
	PositiveCount int     `json:"positive_count"`
	NeutralCount  int     `json:"neutral_count"`
	NegativeCount int     `json:"negative_count"`
	ArticleCount  int     `json:"article_count"`
	AvgSentiment  float64 `json:"avg_sentiment"`
}

// EntityPair is one co-occurring entity pair, text1 < text2 lexicographically.
type EntityPair struct {
	Text1 string `json:"text1"`
	Type1 string `json:"type1"`
	Text2 string `json:"text2"`
	Type2 string `json:"type2"`
	Count int    `json:"count"`
}

// KeywordCount is one row of a keyword-frequency result.
type KeywordCount struct {
	Keyword   string `json:"keyword"`
	Frequency int    `json:"frequency"`
}

// TopicShare is one bucket of a topic distribution.
type TopicShare struct {
	Topic      string  `json:"topic"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// SentimentSlice is one label's share of a sentiment overview.
type SentimentSlice struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	AvgScore   float64 `json:"avg_score"`
}

// SentimentOverview is the corpus-wide sentiment breakdown.
type SentimentOverview struct {
	TotalArticles int              `json:"total_articles"`
	Breakdown     []SentimentSlice `json:"breakdown"`
}

// MonthCount is one month bucket of an over-time series.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// MonthSentiment is one month bucket of the sentiment-over-time series.
type MonthSentiment struct {
	Month    string `json:"month"`
	Positive int    `json:"positive"`
	Neutral  int    `json:"neutral"`
	Negative int    `json:"negative"`
}

// TopEntities returns the most mentioned canonical entities, one count per
// mention. An optional type filter and inclusive date range restrict the
// scan; ordering is count descending with text/type ascending tie-breaks.
func (e *Engine) TopEntities(ctx context.Context, typeFilter string, dateRange *DateRange, limit int) ([]EntityCount, error) {
	articles, err := e.scan(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[NormalizedEntity]int)
	for _, a := range articles {
		if dateRange != nil {
			key, ok := e.articleDateKey(a)
			if !ok || !dateRange.inRange(key) {
				continue
			}
		}
		for _, m := range a.Entities {
			if !e.filter.Relevant(m) {
				continue
			}
			if typeFilter != "" && m.Type != typeFilter {
				continue
			}
			counts[NormalizedEntity{Text: Normalize(m.Text), Type: m.Type}]++
		}
	}

	result := make([]EntityCount, 0, len(counts))
	for k, c := range counts {
		result = append(result, EntityCount{Text: k.Text, Type: k.Type, Count: c})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		if result[i].Text != result[j].Text {
			return result[i].Text < result[j].Text
		}
		return result[i].Type < result[j].Type
	})
	return truncate(result, limit), nil
}

// SentimentByEntity accumulates per-article sentiment for each canonical
// entity. An entity appearing several times in one article contributes once.
// Entities below the two-article noise threshold are dropped.
func (e *Engine) SentimentByEntity(ctx context.Context, typeFilter string, limit int) ([]EntitySentiment, error) {
	articles, err := e.scan(ctx)
	if err != nil {
		return nil, err
	}

	type accum struct {
		EntitySentiment
		scores []float64
	}
	stats := make(map[NormalizedEntity]*accum)

	for _, a := range articles {
		seen := make(map[NormalizedEntity]struct{})
		for _, m := range a.Entities {
			if !e.filter.Relevant(m) {
				continue
			}
			if typeFilter != "" && m.Type != typeFilter {
				continue
			}
			key := NormalizedEntity{Text: Normalize(m.Text), Type: m.Type}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			s, ok := stats[key]
			if !ok {
				s = &accum{EntitySentiment: EntitySentiment{EntityText: key.Text, EntityType: key.Type}}
				stats[key] = s
			}
			switch a.SentimentLabel {
			case common.SentimentPositive:
				s.PositiveCount++
			case common.SentimentNegative:
				s.NegativeCount++
			default:
				s.NeutralCount++
			}
			s.ArticleCount++
			s.scores = append(s.scores, a.SentimentScore)
		}
	}

	result := make([]EntitySentiment, 0, len(stats))
	for _, s := range stats {
		if s.ArticleCount < 2 {
			continue
		}
		var sum float64
		for _, score := range s.scores {
			sum += score
		}
		s.AvgSentiment = 0.0
		if len(s.scores) > 0 {
			s.AvgSentiment = sum / float64(len(s.scores))
		}
		result = append(result, s.EntitySentiment)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].ArticleCount != result[j].ArticleCount {
			return result[i].ArticleCount > result[j].ArticleCount
		}
		if result[i].EntityText != result[j].EntityText {
			return result[i].EntityText < result[j].EntityText
		}
		return result[i].EntityType < result[j].EntityType
	})
	return truncate(result, limit), nil
}

// Cooccurrence counts unordered canonical entity pairs that appear together
// in the same article. An entity mentioned twice in one article contributes
// to at most one pair per co-article. Pairs below minCount are dropped.
func (e *Engine) Cooccurrence(ctx context.Context, typeFilter string, minCount, limit int) ([]EntityPair, error) {
	articles, err := e.scan(ctx)
	if err != nil {
		return nil, err
	}
	if minCount < 1 {
		minCount = 1
	}

	type pairKey struct {
		text1, type1, text2, type2 string
	}
	pairs := make(map[pairKey]int)

	for _, a := range articles {
		// Deduplicate per article by canonical text; the first-seen type wins.
		types := make(map[string]string)
		var texts []string
		for _, m := range a.Entities {
			if !e.filter.Relevant(m) {
				continue
			}
			if typeFilter != "" && m.Type != typeFilter {
				continue
			}
			text := Normalize(m.Text)
			if _, ok := types[text]; !ok {
				types[text] = m.Type
				texts = append(texts, text)
			}
		}
		sort.Strings(texts)
		for i := 0; i < len(texts); i++ {
			for j := i + 1; j < len(texts); j++ {
				pairs[pairKey{texts[i], types[texts[i]], texts[j], types[texts[j]]}]++
			}
		}
	}

	result := make([]EntityPair, 0, len(pairs))
	for k, c := range pairs {
		if c < minCount {
			continue
		}
		result = append(result, EntityPair{Text1: k.text1, Type1: k.type1, Text2: k.text2, Type2: k.type2, Count: c})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		if result[i].Text1 != result[j].Text1 {
			return result[i].Text1 < result[j].Text1
		}
		return result[i].Text2 < result[j].Text2
	})
	return truncate(result, limit), nil
}

var (
	numericToken = regexp.MustCompile(`^\d+$`)
	ordinalToken = regexp.MustCompile(`^\d+[a-z]+$`)
	alnumToken   = regexp.MustCompile(`^[a-z]+\d+$`)
	dateToken    = regexp.MustCompile(`^\d{1,2}[-/]\d{1,2}`)
	hasLetter    = regexp.MustCompile(`[a-z]`)
)

// stopWords are common tokens excluded from keyword frequency.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"from": {}, "that": {}, "this": {}, "these": {}, "those": {}, "was": {},
	"were": {}, "been": {}, "being": {}, "have": {}, "has": {}, "had": {},
	"will": {}, "would": {}, "could": {}, "should": {}, "said": {}, "says": {},
	"also": {}, "which": {}, "their": {}, "there": {}, "they": {}, "them": {},
	"when": {}, "where": {}, "while": {}, "about": {}, "after": {}, "before": {},
	"into": {}, "over": {}, "under": {}, "between": {}, "other": {}, "more": {},
	"most": {}, "some": {}, "such": {}, "than": {}, "then": {},
	"against": {}, "during": {}, "through": {}, "year": {}, "years": {},
}

const tokenPunctuation = ".,!?;:\"'()[]{}"

// TopKeywords counts content and headline tokens across the corpus after
// punctuation stripping, lowercasing and noise rejection.
func (e *Engine) TopKeywords(ctx context.Context, limit int) ([]KeywordCount, error) {
	articles, err := e.scan(ctx)
	if err != nil {
		return nil, err
	}

	freq := make(map[string]int)
	for _, a := range articles {
		for _, raw := range strings.Fields(a.Content + " " + a.Headline) {
			word := strings.ToLower(strings.Trim(raw, tokenPunctuation))
			if keepKeyword(word) {
				freq[word]++
			}
		}
	}

	result := make([]KeywordCount, 0, len(freq))
	for w, c := range freq {
		result = append(result, KeywordCount{Keyword: w, Frequency: c})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Frequency != result[j].Frequency {
			return result[i].Frequency > result[j].Frequency
		}
		return result[i].Keyword < result[j].Keyword
	})
	return truncate(result, limit), nil
}

func keepKeyword(word string) bool {
	if len(word) <= 3 {
		return false
	}
	if _, stop := stopWords[word]; stop {
		return false
	}
	if numericToken.MatchString(word) ||
		ordinalToken.MatchString(word) ||
		alnumToken.MatchString(word) ||
		dateToken.MatchString(word) {
		return false
	}
	return hasLetter.MatchString(word)
}

// TopicDistribution groups articles by topic label; percentages are rounded
// to two decimals of the scanned total.
func (e *Engine) TopicDistribution(ctx context.Context) ([]TopicShare, error) {
	articles, err := e.scan(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, a := range articles {
		topic := a.TopicLabel
		if topic == "" {
			topic = common.TopicUncategorized
		}
		counts[topic]++
	}

	total := len(articles)
	result := make([]TopicShare, 0, len(counts))
	for topic, c := range counts {
		pct := 0.0
		if total > 0 {
			pct = round2(float64(c) / float64(total) * 100)
		}
		result = append(result, TopicShare{Topic: topic, Count: c, Percentage: pct})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Topic < result[j].Topic
	})
	return result, nil
}

// Overview computes the corpus-wide sentiment breakdown, optionally
// restricted to a publication-date range.
func (e *Engine) Overview(ctx context.Context, dateRange *DateRange) (*SentimentOverview, error) {
	articles, err := e.scan(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	sums := make(map[string]float64)
	total := 0
	for _, a := range articles {
		if dateRange != nil {
			key, ok := e.articleDateKey(a)
			if !ok || !dateRange.inRange(key) {
				continue
			}
		}
		label := a.SentimentLabel
		if label == "" {
			label = common.SentimentNeutral
		}
		counts[label]++
		sums[label] += a.SentimentScore
		total++
	}

	overview := &SentimentOverview{TotalArticles: total}
	for _, label := range []string{common.SentimentPositive, common.SentimentNeutral, common.SentimentNegative} {
		c := counts[label]
		slice := SentimentSlice{Label: label, Count: c}
		if total > 0 {
			slice.Percentage = round2(float64(c) / float64(total) * 100)
		}
		if c > 0 {
			slice.AvgScore = round3(sums[label] / float64(c))
		}
		overview.Breakdown = append(overview.Breakdown, slice)
	}
	return overview, nil
}

// ArticlesOverTime counts articles per publication month, sorted ascending.
func (e *Engine) ArticlesOverTime(ctx context.Context) ([]MonthCount, error) {
	articles, err := e.scan(ctx)
	if err != nil {
		return nil, err
	}

	monthly := make(map[string]int)
	for _, a := range articles {
		key, ok := e.articleDateKey(a)
		if !ok {
			continue
		}
		monthly[key[:7]]++
	}

	result := make([]MonthCount, 0, len(monthly))
	for month, c := range monthly {
		result = append(result, MonthCount{Month: month, Count: c})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month < result[j].Month })
	return result, nil
}

// SentimentOverTime counts sentiment labels per publication month.
func (e *Engine) SentimentOverTime(ctx context.Context) ([]MonthSentiment, error) {
	articles, err := e.scan(ctx)
	if err != nil {
		return nil, err
	}

	monthly := make(map[string]*MonthSentiment)
	for _, a := range articles {
		key, ok := e.articleDateKey(a)
		if !ok {
			continue
		}
		month := key[:7]
		bucket, ok := monthly[month]
		if !ok {
			bucket = &MonthSentiment{Month: month}
			monthly[month] = bucket
		}
		switch a.SentimentLabel {
		case common.SentimentPositive:
			bucket.Positive++
		case common.SentimentNegative:
			bucket.Negative++
		default:
			bucket.Neutral++
		}
	}

	result := make([]MonthSentiment, 0, len(monthly))
	for _, bucket := range monthly {
		result = append(result, *bucket)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month < result[j].Month })
	return result, nil
}

func truncate[T any](s []T, limit int) []T {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
