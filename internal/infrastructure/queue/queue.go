package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	interfaces "school-api/internal/interfaces/infrastructure"
	serviceInterfaces "school-api/internal/interfaces/service"
	"school-api/pkg/logger"
)

// Queue is the in-memory audit queue. Jobs record committed engine decisions
// and are drained by a worker pool off the request path; a full buffer fails
// the enqueue, never the request that produced the job.
type Queue struct {
	auditQueue chan interfaces.AuditJob

	workers int
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
	mu      sync.RWMutex

	auditService serviceInterfaces.AuditService
}

func NewInMemoryQueue(bufferSize, workers int) interfaces.QueueService {
	ctx, cancel := context.WithCancel(context.Background())

	queue := &Queue{
		auditQueue: make(chan interfaces.AuditJob, bufferSize),
		workers:    workers,
		ctx:        ctx,
		cancel:     cancel,
		started:    false,
	}

	return queue
}

func (q *Queue) SetAuditService(service interface{}) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if auditService, ok := service.(serviceInterfaces.AuditService); ok {
		q.auditService = auditService
	} else {
		logger.Error("Invalid service type provided to SetAuditService")
	}
}

func (q *Queue) StartWorkers() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.started {
		return
	}

	if q.auditService == nil {
		logger.Warn("Audit service not set, workers cannot process jobs")
		return
	}

	logger.Info("Starting %d audit queue workers", q.workers)

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.auditWorker(i)
	}

	q.started = true
	logger.Info("Audit queue workers started successfully")
}

func (q *Queue) StopWorkers() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.started {
		return
	}

	logger.Info("Stopping audit queue workers...")
	q.cancel()
	q.wg.Wait()
	q.started = false
	logger.Info("Audit queue workers stopped")
}

func (q *Queue) EnqueueAudit(ctx context.Context, job interfaces.AuditJob) error {
	select {
	case q.auditQueue <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fmt.Errorf("audit queue is full")
	}
}

func (q *Queue) DequeueAudit(ctx context.Context) (*interfaces.AuditJob, error) {
	select {
	case job := <-q.auditQueue:
		return &job, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (q *Queue) auditWorker(workerID int) {
	defer q.wg.Done()

	logger.Info("Audit worker %d started", workerID)

	for {
		select {
		case <-q.ctx.Done():
			logger.Info("Audit worker %d stopped", workerID)
			return
		default:
			ctx, cancel := context.WithTimeout(q.ctx, 5*time.Second)
			job, err := q.DequeueAudit(ctx)
			cancel()

			if err != nil {
				if err == context.DeadlineExceeded {
					continue
				}
				logger.Error("Audit worker %d error: %v", workerID, err)
				continue
			}

			if job != nil {
				q.processAuditJob(workerID, job)
			}
		}
	}
}

func (q *Queue) processAuditJob(workerID int, job *interfaces.AuditJob) {
	logger.Debug("Worker %d processing audit job: %s for %s %s",
		workerID, job.Action, job.EntityType, job.EntityID)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := q.auditService.ProcessAuditJob(ctx, *job); err != nil {
		logger.Error("Worker %d failed to process audit job: %v", workerID, err)
	}
}

var _ interfaces.QueueService = (*Queue)(nil)
