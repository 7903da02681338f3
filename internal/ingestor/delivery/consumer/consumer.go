package consumer

import (
	"context"
	"sync"
	"time"

	"mediascope/internal/ingestor/config"
	"mediascope/internal/ingestor/service"
	"mediascope/pkg/common"
	"mediascope/pkg/logger"
	"mediascope/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// RedisConsumer manages the consumption of page scan tasks from a Redis
// stream.
type RedisConsumer struct {
	cfg             *config.Config
	redisClient     *redis.Client
	pipelineService service.PipelineService
	logger          *logger.Logger
	stopChan        chan struct{}
	wg              sync.WaitGroup
}

// NewRedisConsumer creates a new RedisConsumer.
func NewRedisConsumer(
	cfg *config.Config,
	redisClient *redis.Client,
	pipelineService service.PipelineService,
	log *logger.Logger,
) *RedisConsumer {
	return &RedisConsumer{
		cfg:             cfg,
		redisClient:     redisClient,
		pipelineService: pipelineService,
		logger:          log,
		stopChan:        make(chan struct{}),
	}
}

// Start creates the consumer group and begins the task processing loop.
func (c *RedisConsumer) Start(ctx context.Context) {
	if err := c.redisClient.XGroupCreateMkStream(ctx, common.RedisStreamPageScan, common.RedisStreamGroup, "0").Err(); err != nil {
		// BUSYGROUP means the group already exists.
		if err.Error() != "BUSYGROUP Consumer Group name already exists" {
			c.logger.Error("Failed to create consumer group", logger.ErrorField(err))
		}
	}

	c.logger.Info("Redis consumer started")
	c.RegisterStreamHandler(ctx, c.pipelineService.ProcessTask, common.RedisStreamPageScan, c.cfg.Ingestor.RedisStreamPageScanTimeout)
}

func (c *RedisConsumer) RegisterStreamHandler(ctx context.Context, fn func(ctx context.Context), streamName string, timeout time.Duration) {
	c.logger.Info("Registering stream handler", logger.Field("stream", streamName))
	c.wg.Add(1)
	utils.GoSafe(func() {
		defer c.wg.Done()
		for {
			select {
			case <-ctx.Done():
				c.logger.Info("Redis consumer stopping due to context cancellation")
				return
			case <-c.stopChan:
				c.logger.Info("Redis consumer stopping")
				return
			default:
				ctxTimeout, cancel := context.WithTimeout(ctx, timeout)
				fn(ctxTimeout)
				cancel()
			}
		}
	})
}

// Stop gracefully shuts down the consumer.
func (c *RedisConsumer) Stop() {
	close(c.stopChan)
	c.wg.Wait()
	c.logger.Info("Redis consumer stopped")
}
