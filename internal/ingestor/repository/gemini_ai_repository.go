package repository

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mediascope/internal/ingestor/config"
	"mediascope/internal/ingestor/dto"
	"mediascope/pkg/logger"
	"mediascope/pkg/ratelimit"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// AIRepository performs OCR and NLP annotation through a vision model.
type AIRepository interface {
	ExtractMetadata(ctx context.Context, imagePath string) (*dto.PageMetadata, error)
	ExtractArticles(ctx context.Context, imagePath string) ([]dto.OCRArticle, error)
	Annotate(ctx context.Context, headline, content string) (*dto.AnnotationResult, error)
}

// geminiAIRepository is an implementation of AIRepository that uses the
// Google Gemini API.
type geminiAIRepository struct {
	client         *http.Client
	cfg            *config.Config
	logger         *logger.Logger
	tokenLimiter   *ratelimit.TokenLimiter
	requestLimiter *rate.Limiter
	genAiClient    *genai.Client
}

// NewGeminiAIRepository creates a new instance of geminiAIRepository.
func NewGeminiAIRepository(cfg *config.Config, log *logger.Logger, genAiClient *genai.Client) (AIRepository, error) {
	secondsPerRequest := time.Minute / time.Duration(cfg.Gemini.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	tokenLimiter := ratelimit.NewTokenLimiter(cfg.Gemini.MaxTokenPerMinute)

	return &geminiAIRepository{
		client: &http.Client{
			Timeout: 90 * time.Second,
		},
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
		tokenLimiter:   tokenLimiter,
		genAiClient:    genAiClient,
	}, nil
}

// ExtractMetadata reads the publication date and page number off a page scan.
func (r *geminiAIRepository) ExtractMetadata(ctx context.Context, imagePath string) (*dto.PageMetadata, error) {
	image, err := loadImagePart(imagePath)
	if err != nil {
		return nil, err
	}

	text, err := r.executeGeminiAIRequest(ctx, []dto.Part{{Text: BuildMetadataPrompt()}, *image})
	if err != nil {
		return nil, err
	}
	return parsePageMetadata(text), nil
}

// ExtractArticles segments a page scan into numbered articles.
func (r *geminiAIRepository) ExtractArticles(ctx context.Context, imagePath string) ([]dto.OCRArticle, error) {
	image, err := loadImagePart(imagePath)
	if err != nil {
		return nil, err
	}

	text, err := r.executeGeminiAIRequest(ctx, []dto.Part{{Text: BuildArticleExtractionPrompt()}, *image})
	if err != nil {
		return nil, err
	}
	return parseArticleBlocks(text), nil
}

// Annotate extracts named entities, sentiment and a topic label for one
// article.
func (r *geminiAIRepository) Annotate(ctx context.Context, headline, content string) (*dto.AnnotationResult, error) {
	prompt := BuildAnnotationPrompt(headline, content)

	text, err := r.executeGeminiAIRequest(ctx, []dto.Part{{Text: prompt}})
	if err != nil {
		return nil, err
	}

	jsonString := strings.Trim(text, "`json\n`")

	var result dto.AnnotationResult
	if err := json.Unmarshal([]byte(jsonString), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal annotation result from Gemini response: %w", err)
	}
	return &result, nil
}

func (r *geminiAIRepository) executeGeminiAIRequest(ctx context.Context, parts []dto.Part) (string, error) {
	var promptText string
	for _, part := range parts {
		if part.Text != "" {
			promptText += part.Text
		}
	}
	contents := []*genai.Content{
		genai.NewContentFromText(promptText, "user"),
	}
	geminiTokenResp, err := r.genAiClient.Models.CountTokens(ctx, r.cfg.Gemini.Model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to count tokens: %w", err)
	}

	r.logger.Debug("Gemini token count",
		logger.IntField("total_tokens", int(geminiTokenResp.TotalTokens)),
		logger.IntField("remaining", r.tokenLimiter.GetRemaining()),
	)

	if err := r.tokenLimiter.Wait(ctx, int(geminiTokenResp.TotalTokens)); err != nil {
		return "", fmt.Errorf("failed to wait for token limit: %w", err)
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for request limit: %w", err)
	}

	payload := dto.GeminiAPIRequest{
		Contents: []dto.Content{{Parts: parts}},
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		r.logger.Error("Failed to marshal payload", logger.ErrorField(err))
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	apiURL := fmt.Sprintf("%s/%s:generateContent?key=%s", r.cfg.Gemini.BaseURL, r.cfg.Gemini.Model, r.cfg.Gemini.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", apiURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		r.logger.Error("Failed to create new http request", logger.ErrorField(err))
		return "", fmt.Errorf("failed to create new http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("Failed to send request to Gemini API", logger.ErrorField(err))
		return "", fmt.Errorf("failed to send request to Gemini API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		r.logger.Error("Received non-OK response from Gemini API", logger.IntField("status_code", resp.StatusCode))
		return "", fmt.Errorf("received non-OK response from Gemini API: %d - %s", resp.StatusCode, string(body))
	}

	var geminiResp dto.GeminiAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		r.logger.Error("Failed to decode response body", logger.ErrorField(err))
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("invalid response from Gemini API: no content found")
	}
	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}

// loadImagePart reads a page scan and wraps it as inline base64 data.
func loadImagePart(imagePath string) (*dto.Part, error) {
	raw, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", imagePath, err)
	}
	return &dto.Part{
		InlineData: &dto.InlineData{
			MimeType: imageMimeType(imagePath),
			Data:     base64.StdEncoding.EncodeToString(raw),
		},
	}, nil
}

func imageMimeType(imagePath string) string {
	switch strings.ToLower(filepath.Ext(imagePath)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".tif", ".tiff":
		return "image/tiff"
	}
	return "image/jpeg"
}
