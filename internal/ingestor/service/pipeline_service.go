package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"mediascope/internal/entity"
	"mediascope/internal/ingestor/dto"
	"mediascope/internal/ingestor/repository"
	"mediascope/pkg/common"
	"mediascope/pkg/logger"
	"mediascope/pkg/telegram"

	"github.com/redis/go-redis/v9"
)

// PipelineService consumes page scan tasks and runs the OCR and annotation
// pipeline for each page.
type PipelineService interface {
	ProcessTask(ctx context.Context)
	ProcessImage(ctx context.Context, imagePath string) (*dto.PageResult, error)
}

// NewPipelineService creates a new PipelineService.
func NewPipelineService(
	redisClient *redis.Client,
	aiRepo repository.AIRepository,
	newspaperRepo repository.NewspaperRepository,
	articleRepo repository.ArticleRepository,
	topicRepo repository.TopicRepository,
	notifier telegram.Notifier,
	log *logger.Logger,
) PipelineService {
	return &pipelineService{
		redisClient:   redisClient,
		aiRepo:        aiRepo,
		newspaperRepo: newspaperRepo,
		articleRepo:   articleRepo,
		topicRepo:     topicRepo,
		notifier:      notifier,
		logger:        log,
	}
}

type pipelineService struct {
	redisClient   *redis.Client
	aiRepo        repository.AIRepository
	newspaperRepo repository.NewspaperRepository
	articleRepo   repository.ArticleRepository
	topicRepo     repository.TopicRepository
	notifier      telegram.Notifier
	logger        *logger.Logger
}

// ProcessTask dequeues and processes a single page scan task.
func (s *pipelineService) ProcessTask(ctx context.Context) {
	streams, err := s.redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer,
		Streams:  []string{common.RedisStreamPageScan, ">"},
		Count:    1,
		Block:    2 * time.Second,
		NoAck:    true,
	}).Result()

	if err != nil {
		if err == context.Canceled || err == redis.Nil {
			return
		}
		s.logger.Error("Failed to read from stream", logger.ErrorField(err))
		return
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return
	}

	message := streams[0].Messages[0]

	taskData, ok := message.Values["payload"].(string)
	if !ok {
		s.logger.Error("field 'payload' not found or not a string in stream message", logger.Field("message_id", message.ID))
		return
	}

	var task dto.PageScanTask
	if err := json.Unmarshal([]byte(taskData), &task); err != nil {
		s.logger.Error("Failed to unmarshal task data", logger.ErrorField(err), logger.Field("message_id", message.ID))
		if err := s.redisClient.XAck(ctx, common.RedisStreamPageScan, common.RedisStreamGroup, message.ID).Err(); err != nil {
			s.logger.Error("Failed to acknowledge malformed message", logger.ErrorField(err), logger.Field("message_id", message.ID))
		}
		return
	}

	s.logger.Info("Processing page scan", logger.Field("image_path", task.ImagePath))

	result, err := s.ProcessImage(ctx, task.ImagePath)
	if err != nil {
		s.logger.Error("Page processing failed", logger.ErrorField(err), logger.Field("image_path", task.ImagePath))
		s.notify(fmt.Sprintf("❌ *Page ingestion failed*\nImage: `%s`\nError: %s", task.ImagePath, err.Error()))
		return
	}
	if result == nil {
		// Already ingested.
		return
	}

	s.notify(fmt.Sprintf("📰 *Page ingested*\nImage: `%s`\nDate: %s, page %d\nArticles stored: %d, failed: %d",
		result.ImagePath, result.PublicationDate, result.PageNumber, result.ArticlesStored, result.ArticlesFailed))
}

// ProcessImage runs the full pipeline for one page scan. It returns nil
// without error when the image was already ingested.
func (s *pipelineService) ProcessImage(ctx context.Context, imagePath string) (*dto.PageResult, error) {
	exists, err := s.newspaperRepo.ExistsByImagePath(ctx, imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing page: %w", err)
	}
	if exists {
		s.logger.Info("Page already ingested, skipping", logger.Field("image_path", imagePath))
		return nil, nil
	}

	metadata := s.extractMetadata(ctx, imagePath)
	publicationDate := time.Date(metadata.Year, time.Month(metadata.Month), metadata.Day, 0, 0, 0, 0, time.UTC)

	ocrArticles, err := s.aiRepo.ExtractArticles(ctx, imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to extract articles: %w", err)
	}
	if len(ocrArticles) == 0 {
		return nil, fmt.Errorf("no articles found on page %s", imagePath)
	}

	newspaper := &entity.Newspaper{
		PublicationDate: publicationDate,
		Year:            metadata.Year,
		Month:           metadata.Month,
		Day:             metadata.Day,
		PageNumber:      metadata.PageNumber,
		ImagePath:       imagePath,
		ProcessedAt:     time.Now(),
	}
	if err := s.newspaperRepo.Create(ctx, newspaper); err != nil {
		return nil, fmt.Errorf("failed to store newspaper page: %w", err)
	}

	result := &dto.PageResult{
		ImagePath:       imagePath,
		PublicationDate: publicationDate.Format("2006-01-02"),
		PageNumber:      metadata.PageNumber,
	}

	for _, ocrArticle := range ocrArticles {
		if err := s.storeArticle(ctx, newspaper.ID, ocrArticle); err != nil {
			s.logger.Error("Failed to store article",
				logger.ErrorField(err),
				logger.Field("image_path", imagePath),
				logger.IntField("article_number", ocrArticle.Number),
			)
			result.ArticlesFailed++
			continue
		}
		result.ArticlesStored++
	}

	return result, nil
}

// extractMetadata falls back to January 1 1990, page 1 when the scan yields
// nothing usable.
func (s *pipelineService) extractMetadata(ctx context.Context, imagePath string) *dto.PageMetadata {
	metadata, err := s.aiRepo.ExtractMetadata(ctx, imagePath)
	if err != nil {
		s.logger.Warn("Metadata extraction failed, using defaults",
			logger.ErrorField(err),
			logger.Field("image_path", imagePath),
		)
		return &dto.PageMetadata{Year: 1990, Month: 1, Day: 1, PageNumber: 1}
	}
	return metadata
}

// storeArticle annotates and persists one segmented article.
func (s *pipelineService) storeArticle(ctx context.Context, newspaperID string, ocrArticle dto.OCRArticle) error {
	annotation, err := s.aiRepo.Annotate(ctx, ocrArticle.Headline, ocrArticle.Content)
	if err != nil {
		return fmt.Errorf("failed to annotate article: %w", err)
	}

	article := &entity.Article{
		NewspaperID:    newspaperID,
		ArticleNumber:  ocrArticle.Number,
		Headline:       ocrArticle.Headline,
		Content:        ocrArticle.Content,
		WordCount:      len(strings.Fields(ocrArticle.Content)),
		SentimentScore: annotation.SentimentScore,
		SentimentLabel: sentimentLabel(annotation),
		TopicLabel:     topicLabel(annotation),
	}
	for _, mention := range annotation.Entities {
		article.Entities = append(article.Entities, entity.ArticleEntity{
			EntityText: mention.Text,
			EntityType: mention.Type,
			StartChar:  mention.StartChar,
			EndChar:    mention.EndChar,
		})
	}

	if err := s.articleRepo.Create(ctx, article); err != nil {
		return fmt.Errorf("failed to store article: %w", err)
	}

	if err := s.topicRepo.IncrementArticleCount(ctx, article.TopicLabel); err != nil {
		s.logger.Warn("Failed to update topic count",
			logger.ErrorField(err),
			logger.Field("topic", article.TopicLabel),
		)
	}
	return nil
}

func sentimentLabel(annotation *dto.AnnotationResult) string {
	switch annotation.SentimentLabel {
	case common.SentimentPositive, common.SentimentNeutral, common.SentimentNegative:
		return annotation.SentimentLabel
	}
	return common.SentimentNeutral
}

func topicLabel(annotation *dto.AnnotationResult) string {
	if strings.TrimSpace(annotation.TopicLabel) == "" {
		return common.TopicUncategorized
	}
	return annotation.TopicLabel
}

func (s *pipelineService) notify(text string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendMessage(text); err != nil {
		s.logger.Warn("Failed to send Telegram notification", logger.ErrorField(err))
	}
}
