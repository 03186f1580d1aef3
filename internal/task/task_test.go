package task

import (
	"context"
	"testing"

	"github.com/rakshit-singh2/fundraising-backend/internal/config"
	"github.com/rakshit-singh2/fundraising-backend/internal/database"
	"github.com/rakshit-singh2/fundraising-backend/internal/keystore"
	"github.com/rakshit-singh2/fundraising-backend/internal/logic"
	"github.com/rakshit-singh2/fundraising-backend/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProjectLogic(t *testing.T) (*gorm.DB, *logic.ProjectLogic) {
	t.Helper()

	db, err := database.Init(config.DatabaseConfig{Driver: "sqlite", LogLevel: "silent"})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db, logic.NewProjectLogic(db, keystore.NewGenerator())
}

func createProject(t *testing.T, projects *logic.ProjectLogic, name, address string) *model.ProjectModel {
	t.Helper()
	p, err := projects.CreateProject(context.Background(), logic.CreateProjectParams{
		Name:            name,
		TargetAmount:    decimal.NewFromInt(100),
		TokenSupply:     decimal.NewFromInt(10),
		ReceiverAddress: address,
	})
	require.NoError(t, err)
	return p
}

func TestFundingReconcileJob_Run(t *testing.T) {
	db, projects := newProjectLogic(t)
	ctx := context.Background()

	funded := createProject(t, projects, "funded", "0x1111111111111111111111111111111111111111")
	over := createProject(t, projects, "over", "0x2222222222222222222222222222222222222222")
	pending := createProject(t, projects, "pending", "0x3333333333333333333333333333333333333333")

	// 模拟计数已达标但状态未更新的项目
	for id, raised := range map[string]int64{funded.Id: 100, over.Id: 150, pending.Id: 99} {
		require.NoError(t, db.Model(&model.ProjectModel{}).Where("id = ?", id).
			Update("amount_raised", decimal.NewFromInt(raised)).Error)
	}

	job := NewFundingReconcileJob(projects, config.TaskConfig{Interval: 1, Workers: 2})
	closed, err := job.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, closed)

	want := map[string]model.ProjectStatus{
		funded.Id:  model.ProjectStatusClosed,
		over.Id:    model.ProjectStatusClosed,
		pending.Id: model.ProjectStatusOpen,
	}
	for id, status := range want {
		p, err := projects.GetProject(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, status, p.Status, p.Name)
	}

	closed, err = job.Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, closed)
}

func TestNewFundingReconcileJob_Defaults(t *testing.T) {
	job := NewFundingReconcileJob(nil, config.TaskConfig{})
	assert.Equal(t, defaultReconcileInterval, job.interval)
	assert.Equal(t, defaultReconcileWorkers, job.workers)
	assert.Equal(t, "funding_reconcile", job.GetName())
}

func TestManager_RegistersJobs(t *testing.T) {
	_, projects := newProjectLogic(t)

	m, err := NewManager(projects, &config.Config{Task: config.TaskConfig{Interval: 3600, Workers: 1}})
	require.NoError(t, err)
	require.NoError(t, m.Start())
	defer m.Stop()

	assert.Equal(t, []string{"funding_reconcile"}, m.Jobs())
}
