package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mediascope/pkg/logger"
)

// Article is the unit of analysis consumed by the aggregation engine.
// It is a read-only snapshot; the engine never mutates a corpus.
type Article struct {
	ID              string
	Headline        string
	Content         string
	PublicationDate string // ISO-8601, with or without a time component
	SentimentLabel  string
	SentimentScore  float64
	TopicLabel      string
	Entities        []EntityMention
}

// EntityMention is one raw extracted entity, in extraction order.
// Duplicates within one article are possible and tolerated.
type EntityMention struct {
	Text string
	Type string
}

// NormalizedEntity is the canonical (text, type) identity used for counting.
type NormalizedEntity struct {
	Text string
	Type string
}

// Corpus provides a finite, order-undefined sequence of article records.
// The limit bounds the scan size; it is a cost cap, not a correctness rule.
type Corpus interface {
	Scan(ctx context.Context, limit int) ([]Article, error)
}

// ErrSourceUnavailable indicates the corpus source could not be reached or
// iterated. No partial results accompany it.
var ErrSourceUnavailable = errors.New("corpus source unavailable")

// DateRange is an inclusive [Start, End] filter on YYYY-MM-DD date strings.
// Either bound may be empty.
type DateRange struct {
	Start string
	End   string
}

// Config holds the aggregation engine settings.
type Config struct {
	// MaxScan bounds every full-corpus scan. Shared by all operations.
	MaxScan int
}

// DefaultMaxScan is the corpus-scan cap applied when none is configured.
const DefaultMaxScan = 1000

// Engine is the family of full-scan aggregation operations. It is stateless:
// each call allocates its own accumulators and discards them on return, so
// concurrent calls are independent.
type Engine struct {
	corpus Corpus
	filter *Filter
	cfg    Config
	logger *logger.Logger
}

// NewEngine creates an aggregation engine over the given corpus.
func NewEngine(corpus Corpus, filter *Filter, cfg Config, log *logger.Logger) *Engine {
	if cfg.MaxScan <= 0 {
		cfg.MaxScan = DefaultMaxScan
	}
	if filter == nil {
		filter = NewFilter()
	}
	return &Engine{
		corpus: corpus,
		filter: filter,
		cfg:    cfg,
		logger: log,
	}
}

// scan performs the bounded corpus read shared by every operation.
func (e *Engine) scan(ctx context.Context) ([]Article, error) {
	articles, err := e.corpus.Scan(ctx, e.cfg.MaxScan)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return articles, nil
}

// dateLayouts are the accepted publication-date representations, tried in
// order. Everything is truncated to YYYY-MM-DD after a successful parse.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// normalizeDate coerces an ISO-8601 publication date to its canonical
// YYYY-MM-DD form. A failure marks the record skipped for date-dependent
// aggregations; it never aborts a scan.
func normalizeDate(s string) (string, error) {
	if s == "" {
		return "", errors.New("empty publication date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("unrecognized date format: %q", s)
}

// parseDate returns the publication date as a time, for bucket computation.
func parseDate(s string) (time.Time, error) {
	key, err := normalizeDate(s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse("2006-01-02", key)
}

// inRange reports whether the canonical date key falls inside the range,
// using string-lexicographic comparison on YYYY-MM-DD keys.
func (r *DateRange) inRange(key string) bool {
	if r == nil {
		return true
	}
	if r.Start != "" && key < r.Start {
		return false
	}
	if r.End != "" && key > r.End {
		return false
	}
	return true
}

// articleDateKey resolves an article's canonical date key when a range filter
// or bucketing requires it. The second return is false when the record must
// be skipped.
func (e *Engine) articleDateKey(a Article) (string, bool) {
	key, err := normalizeDate(a.PublicationDate)
	if err != nil {
		if e.logger != nil {
			e.logger.Debug("skipping record with malformed date",
				logger.StringField("article_id", a.ID),
				logger.ErrorField(err),
			)
		}
		return "", false
	}
	return key, true
}
