package task

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"
	"github.com/rakshit-singh2/fundraising-backend/internal/config"
	"github.com/rakshit-singh2/fundraising-backend/internal/logger"
	"github.com/rakshit-singh2/fundraising-backend/internal/logic"
	"github.com/rakshit-singh2/fundraising-backend/internal/metrics"
)

const (
	defaultReconcileInterval = 60 * time.Second
	defaultReconcileWorkers  = 4
)

// FundingReconcileJob 关闭已达到目标金额但仍处于募资中的项目
type FundingReconcileJob struct {
	projects *logic.ProjectLogic
	interval time.Duration
	workers  int
}

// NewFundingReconcileJob 创建募资对账任务
func NewFundingReconcileJob(projects *logic.ProjectLogic, cfg config.TaskConfig) *FundingReconcileJob {
	job := &FundingReconcileJob{
		projects: projects,
		interval: time.Duration(cfg.Interval) * time.Second,
		workers:  cfg.Workers,
	}
	if job.interval <= 0 {
		job.interval = defaultReconcileInterval
	}
	if job.workers <= 0 {
		job.workers = defaultReconcileWorkers
	}
	return job
}

// GetName 获取任务名称
func (j *FundingReconcileJob) GetName() string {
	return "funding_reconcile"
}

// GetSchedule 获取调度配置
func (j *FundingReconcileJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(j.interval)
}

// Execute 执行任务
func (j *FundingReconcileJob) Execute() {
	closed, err := j.Run(context.Background())
	if err != nil {
		logger.Error("Funding reconcile failed: %v", err)
		return
	}
	logger.Info("Funding reconcile completed. Closed %d projects", closed)
}

// Run 扫描一轮并返回本轮关闭的项目数
func (j *FundingReconcileJob) Run(ctx context.Context) (int, error) {
	projects, err := j.projects.GetFundedOpenProjects(ctx)
	if err != nil {
		return 0, err
	}
	if len(projects) == 0 {
		return 0, nil
	}

	pool, err := ants.NewPool(j.workers)
	if err != nil {
		return 0, fmt.Errorf("failed to create pool: %w", err)
	}
	defer pool.Release()

	var (
		wg     sync.WaitGroup
		closed atomic.Int64
	)
	for _, project := range projects {
		id := project.Id
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()

			ok, err := j.projects.CloseIfFunded(ctx, id)
			if err != nil {
				logger.Error("Failed to close project %s: %v", id, err)
				return
			}
			if ok {
				closed.Add(1)
				metrics.ProjectsClosed.WithLabelValues(metrics.CloseReasonReconcile).Inc()
				logger.Info("Project %s reached target amount and is now CLOSED", id)
			}
		})
		if err != nil {
			wg.Done()
			logger.Error("Failed to submit task to pool: %v", err)
		}
	}
	wg.Wait()

	return int(closed.Load()), nil
}
