package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"school-api/internal/config"
	interfaces "school-api/internal/interfaces/infrastructure"
	serviceInterfaces "school-api/internal/interfaces/service"
	"school-api/pkg/logger"

	"github.com/go-redis/redis/v8"
)

const (
	AuditQueueKey         = "queue:audit"
	DefaultDequeueTimeout = 2 * time.Second
	DefaultJobTimeout     = 30 * time.Second
	WorkerSleepDuration   = 50 * time.Millisecond
)

// RedisQueue is the Redis-backed audit queue. Jobs survive a process restart,
// and multiple instances may share the same list.
type RedisQueue struct {
	client redis.UniversalClient

	workers int
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
	mu      sync.RWMutex

	auditService serviceInterfaces.AuditService
}

func NewRedisQueue(cfg *config.CacheConfig, workers int) interfaces.QueueService {
	ctx, cancel := context.WithCancel(context.Background())

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	queue := &RedisQueue{
		client:  rdb,
		workers: workers,
		ctx:     ctx,
		cancel:  cancel,
		started: false,
	}

	return queue
}

func (rq *RedisQueue) SetAuditService(service interface{}) {
	rq.mu.Lock()
	defer rq.mu.Unlock()

	if auditService, ok := service.(serviceInterfaces.AuditService); ok {
		rq.auditService = auditService
	} else {
		logger.Error("Invalid service type provided to SetAuditService")
	}
}

func (rq *RedisQueue) StartWorkers() {
	rq.mu.Lock()
	defer rq.mu.Unlock()

	if rq.started {
		return
	}

	if rq.auditService == nil {
		logger.Warn("Audit service not set, workers cannot process jobs")
		return
	}

	logger.Info("Starting %d Redis audit queue workers", rq.workers)

	for i := 0; i < rq.workers; i++ {
		rq.wg.Add(1)
		go rq.auditWorker(i)
	}

	rq.started = true
	logger.Info("Redis audit queue workers started successfully")
}

func (rq *RedisQueue) StopWorkers() {
	rq.mu.Lock()
	defer rq.mu.Unlock()

	if !rq.started {
		return
	}

	logger.Info("Stopping Redis audit queue workers...")
	rq.cancel()
	rq.wg.Wait()
	rq.started = false
	logger.Info("Redis audit queue workers stopped")
}

func (rq *RedisQueue) EnqueueAudit(ctx context.Context, job interfaces.AuditJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal audit job: %w", err)
	}

	if err := rq.client.LPush(ctx, AuditQueueKey, data).Err(); err != nil {
		return fmt.Errorf("failed to enqueue audit job: %w", err)
	}

	logger.Debug("Enqueued audit job: %s for %s %s", job.Action, job.EntityType, job.EntityID)
	return nil
}

func (rq *RedisQueue) DequeueAudit(ctx context.Context) (*interfaces.AuditJob, error) {
	result, err := rq.client.BRPop(ctx, DefaultDequeueTimeout, AuditQueueKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		if err == context.DeadlineExceeded {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to dequeue audit job: %w", err)
	}

	if len(result) != 2 {
		return nil, fmt.Errorf("unexpected Redis BRPOP result format")
	}

	var job interfaces.AuditJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal audit job: %w", err)
	}

	return &job, nil
}

func (rq *RedisQueue) auditWorker(workerID int) {
	defer rq.wg.Done()

	logger.Info("Redis audit worker %d started", workerID)

	for {
		select {
		case <-rq.ctx.Done():
			logger.Info("Redis audit worker %d stopped", workerID)
			return
		default:
			ctx, cancel := context.WithTimeout(context.Background(), DefaultDequeueTimeout)
			job, err := rq.DequeueAudit(ctx)
			cancel()

			if err != nil {
				logger.Error("Redis audit worker %d error: %v", workerID, err)
				time.Sleep(WorkerSleepDuration)
				continue
			}

			if job != nil {
				rq.processAuditJob(workerID, job)
			} else {
				time.Sleep(WorkerSleepDuration)
			}
		}
	}
}

func (rq *RedisQueue) processAuditJob(workerID int, job *interfaces.AuditJob) {
	logger.Debug("Redis worker %d processing audit job: %s for %s %s",
		workerID, job.Action, job.EntityType, job.EntityID)

	ctx, cancel := context.WithTimeout(context.Background(), DefaultJobTimeout)
	defer cancel()

	if err := rq.auditService.ProcessAuditJob(ctx, *job); err != nil {
		logger.Error("Redis worker %d failed to process audit job: %v", workerID, err)
	}
}

var _ interfaces.QueueService = (*RedisQueue)(nil)
