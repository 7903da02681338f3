package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"mediascope/internal/ingestor/config"
	"mediascope/internal/ingestor/dto"
	"mediascope/internal/ingestor/repository"
	"mediascope/pkg/common"
	"mediascope/pkg/logger"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
	".tif":  {},
	".tiff": {},
}

// SweeperService periodically sweeps the input folder and enqueues a scan
// task for every new page image.
type SweeperService interface {
	Start() error
	Stop()
	Sweep(ctx context.Context)
}

// NewSweeperService creates a new SweeperService.
func NewSweeperService(
	cfg *config.Config,
	redisClient *redis.Client,
	newspaperRepo repository.NewspaperRepository,
	log *logger.Logger,
) SweeperService {
	return &sweeperService{
		cfg:           cfg,
		redisClient:   redisClient,
		newspaperRepo: newspaperRepo,
		logger:        log,
		cron:          cron.New(),
		enqueued:      make(map[string]struct{}),
	}
}

type sweeperService struct {
	cfg           *config.Config
	redisClient   *redis.Client
	newspaperRepo repository.NewspaperRepository
	logger        *logger.Logger
	cron          *cron.Cron

	mu       sync.Mutex
	enqueued map[string]struct{}
}

// Start schedules the folder sweep and runs one sweep immediately.
func (s *sweeperService) Start() error {
	_, err := s.cron.AddFunc(s.cfg.Ingestor.SweepSchedule, func() {
		s.Sweep(context.Background())
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("Input folder sweeper started",
		logger.Field("folder", s.cfg.Ingestor.InputFolder),
		logger.Field("schedule", s.cfg.Ingestor.SweepSchedule),
	)
	s.Sweep(context.Background())
	return nil
}

// Stop halts the sweep schedule.
func (s *sweeperService) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("Input folder sweeper stopped")
}

// Sweep enqueues a page scan task for every image not yet ingested.
func (s *sweeperService) Sweep(ctx context.Context) {
	entries, err := os.ReadDir(s.cfg.Ingestor.InputFolder)
	if err != nil {
		s.logger.Error("Failed to read input folder", logger.ErrorField(err), logger.Field("folder", s.cfg.Ingestor.InputFolder))
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))]; !ok {
			continue
		}
		imagePath := filepath.Join(s.cfg.Ingestor.InputFolder, entry.Name())

		if s.alreadyEnqueued(imagePath) {
			continue
		}
		exists, err := s.newspaperRepo.ExistsByImagePath(ctx, imagePath)
		if err != nil {
			s.logger.Error("Failed to check for existing page", logger.ErrorField(err), logger.Field("image_path", imagePath))
			continue
		}
		if exists {
			s.markEnqueued(imagePath)
			continue
		}

		if err := s.publishTask(ctx, imagePath); err != nil {
			s.logger.Error("Failed to enqueue page scan", logger.ErrorField(err), logger.Field("image_path", imagePath))
			continue
		}
		s.markEnqueued(imagePath)
		s.logger.Info("Page scan enqueued", logger.Field("image_path", imagePath))
	}
}

func (s *sweeperService) publishTask(ctx context.Context, imagePath string) error {
	taskPayload, err := json.Marshal(dto.PageScanTask{ImagePath: imagePath})
	if err != nil {
		return err
	}
	return s.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: common.RedisStreamPageScan,
		Values: map[string]interface{}{"payload": taskPayload},
		MaxLen: s.cfg.Redis.StreamMaxLen,
	}).Err()
}

func (s *sweeperService) alreadyEnqueued(imagePath string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.enqueued[imagePath]
	return ok
}

func (s *sweeperService) markEnqueued(imagePath string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enqueued[imagePath] = struct{}{}
}
