package service

import (
	"context"
	"errors"
	"testing"

	"mediascope/internal/entity"
	"mediascope/internal/ingestor/dto"
	"mediascope/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAIRepository struct {
	metadata    *dto.PageMetadata
	metadataErr error
	articles    []dto.OCRArticle
	articlesErr error
	annotations map[string]*dto.AnnotationResult
	annotateErr map[string]error
}

func (f *fakeAIRepository) ExtractMetadata(ctx context.Context, imagePath string) (*dto.PageMetadata, error) {
	if f.metadataErr != nil {
		return nil, f.metadataErr
	}
	return f.metadata, nil
}

func (f *fakeAIRepository) ExtractArticles(ctx context.Context, imagePath string) ([]dto.OCRArticle, error) {
	if f.articlesErr != nil {
		return nil, f.articlesErr
	}
	return f.articles, nil
}

func (f *fakeAIRepository) Annotate(ctx context.Context, headline, content string) (*dto.AnnotationResult, error) {
	if err, ok := f.annotateErr[headline]; ok {
		return nil, err
	}
	if result, ok := f.annotations[headline]; ok {
		return result, nil
	}
	return &dto.AnnotationResult{SentimentLabel: "neutral"}, nil
}

type fakeNewspaperRepository struct {
	existing map[string]bool
	created  []*entity.Newspaper
}

func (f *fakeNewspaperRepository) Create(ctx context.Context, newspaper *entity.Newspaper) error {
	newspaper.ID = "paper-1"
	f.created = append(f.created, newspaper)
	return nil
}

func (f *fakeNewspaperRepository) ExistsByImagePath(ctx context.Context, imagePath string) (bool, error) {
	return f.existing[imagePath], nil
}

type fakeArticleRepository struct {
	created []*entity.Article
	failOn  string
}

func (f *fakeArticleRepository) Create(ctx context.Context, article *entity.Article) error {
	if f.failOn != "" && article.Headline == f.failOn {
		return errors.New("insert failed")
	}
	f.created = append(f.created, article)
	return nil
}

type fakeTopicRepository struct {
	counts map[string]int
}

func (f *fakeTopicRepository) IncrementArticleCount(ctx context.Context, topicName string) error {
	if f.counts == nil {
		f.counts = make(map[string]int)
	}
	f.counts[topicName]++
	return nil
}

func newTestPipeline(t *testing.T, ai *fakeAIRepository, papers *fakeNewspaperRepository, articles *fakeArticleRepository, topics *fakeTopicRepository) PipelineService {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)
	return NewPipelineService(nil, ai, papers, articles, topics, nil, log)
}

func TestProcessImageStoresPageAndArticles(t *testing.T) {
	ai := &fakeAIRepository{
		metadata: &dto.PageMetadata{Year: 1990, Month: 3, Day: 15, PageNumber: 2},
		articles: []dto.OCRArticle{
			{Number: 1, Headline: "Talks resume", Content: "Officials met to resume talks."},
			{Number: 2, Headline: "Prices climb", Content: "Wheat prices rose in local markets."},
		},
		annotations: map[string]*dto.AnnotationResult{
			"Talks resume": {
				Entities:       []dto.EntityAnnotation{{Text: "Pakistan", Type: "GPE", StartChar: 0, EndChar: 8}},
				SentimentScore: 0.7,
				SentimentLabel: "positive",
				TopicLabel:     "diplomacy",
			},
		},
	}
	papers := &fakeNewspaperRepository{}
	articles := &fakeArticleRepository{}
	topics := &fakeTopicRepository{}
	svc := newTestPipeline(t, ai, papers, articles, topics)

	result, err := svc.ProcessImage(context.Background(), "/scans/page1.jpg")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "1990-03-15", result.PublicationDate)
	assert.Equal(t, 2, result.PageNumber)
	assert.Equal(t, 2, result.ArticlesStored)
	assert.Equal(t, 0, result.ArticlesFailed)

	require.Len(t, papers.created, 1)
	assert.Equal(t, "/scans/page1.jpg", papers.created[0].ImagePath)
	assert.Equal(t, 1990, papers.created[0].Year)

	require.Len(t, articles.created, 2)
	first := articles.created[0]
	assert.Equal(t, "paper-1", first.NewspaperID)
	assert.Equal(t, 0.7, first.SentimentScore)
	assert.Equal(t, "diplomacy", first.TopicLabel)
	assert.Equal(t, 5, first.WordCount)
	require.Len(t, first.Entities, 1)
	assert.Equal(t, "Pakistan", first.Entities[0].EntityText)

	assert.Equal(t, 1, topics.counts["diplomacy"])
	assert.Equal(t, 1, topics.counts["Uncategorized"])
}

func TestProcessImageSkipsIngestedPage(t *testing.T) {
	papers := &fakeNewspaperRepository{existing: map[string]bool{"/scans/page1.jpg": true}}
	svc := newTestPipeline(t, &fakeAIRepository{}, papers, &fakeArticleRepository{}, &fakeTopicRepository{})

	result, err := svc.ProcessImage(context.Background(), "/scans/page1.jpg")
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Empty(t, papers.created)
}

func TestProcessImageIsolatesArticleFailures(t *testing.T) {
	ai := &fakeAIRepository{
		metadata: &dto.PageMetadata{Year: 1990, Month: 4, Day: 2, PageNumber: 1},
		articles: []dto.OCRArticle{
			{Number: 1, Headline: "Good article", Content: "Body text."},
			{Number: 2, Headline: "Bad article", Content: "Body text."},
		},
		annotateErr: map[string]error{"Bad article": errors.New("model refused")},
	}
	articles := &fakeArticleRepository{}
	svc := newTestPipeline(t, ai, &fakeNewspaperRepository{}, articles, &fakeTopicRepository{})

	result, err := svc.ProcessImage(context.Background(), "/scans/page2.jpg")
	require.NoError(t, err)
	assert.Equal(t, 1, result.ArticlesStored)
	assert.Equal(t, 1, result.ArticlesFailed)
	require.Len(t, articles.created, 1)
	assert.Equal(t, "Good article", articles.created[0].Headline)
}

func TestProcessImageDefaultsMetadataOnFailure(t *testing.T) {
	ai := &fakeAIRepository{
		metadataErr: errors.New("unreadable scan"),
		articles: []dto.OCRArticle{
			{Number: 1, Headline: "Only article", Content: "Body text."},
		},
	}
	papers := &fakeNewspaperRepository{}
	svc := newTestPipeline(t, ai, papers, &fakeArticleRepository{}, &fakeTopicRepository{})

	result, err := svc.ProcessImage(context.Background(), "/scans/page3.jpg")
	require.NoError(t, err)
	assert.Equal(t, "1990-01-01", result.PublicationDate)
	assert.Equal(t, 1, result.PageNumber)
}

func TestProcessImageFailsWithoutArticles(t *testing.T) {
	ai := &fakeAIRepository{
		metadata: &dto.PageMetadata{Year: 1990, Month: 1, Day: 1, PageNumber: 1},
	}
	svc := newTestPipeline(t, ai, &fakeNewspaperRepository{}, &fakeArticleRepository{}, &fakeTopicRepository{})

	_, err := svc.ProcessImage(context.Background(), "/scans/blank.jpg")
	require.Error(t, err)
}

func TestSentimentLabelFallsBackToNeutral(t *testing.T) {
	assert.Equal(t, "neutral", sentimentLabel(&dto.AnnotationResult{SentimentLabel: "ecstatic"}))
	assert.Equal(t, "positive", sentimentLabel(&dto.AnnotationResult{SentimentLabel: "positive"}))
}
