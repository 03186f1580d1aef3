package logic

import (
	"context"
	"errors"
	"fmt"

	"github.com/rakshit-singh2/fundraising-backend/internal/logger"
	"github.com/rakshit-singh2/fundraising-backend/internal/metrics"
	"github.com/rakshit-singh2/fundraising-backend/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvestmentLogic 投资记录业务逻辑
type InvestmentLogic struct {
	db *gorm.DB
}

// NewInvestmentLogic 创建投资记录业务逻辑
func NewInvestmentLogic(db *gorm.DB) *InvestmentLogic {
	return &InvestmentLogic{db: db}
}

// CreateInvestmentParams 创建投资参数
type CreateInvestmentParams struct {
	InvestorAddress string
	GivenAmount     decimal.Decimal // 认购金额
	ActualAmount    decimal.Decimal // 实际到账金额，计入募资目标
	ProjectId       string
}

// InvestmentWithProject 附带项目名称的投资记录
type InvestmentWithProject struct {
	model.InvestmentModel
	ProjectName string `json:"projectName"`
}

// CreateInvestment 创建投资记录并累加项目募资金额
//
// 投资记录写入、项目计数累加和达标关闭在同一事务内完成。计数累加带
// status = OPEN 条件，项目在并发中被关闭时本次投资整体回滚。
func (i *InvestmentLogic) CreateInvestment(ctx context.Context, params CreateInvestmentParams) (*model.InvestmentModel, error) {
	if err := i.validateInvestment(params); err != nil {
		return nil, err
	}

	// 开始事务
	tx := i.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("开启事务失败: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	// 检查项目是否存在且处于募资中
	var project model.ProjectModel
	if err := tx.Where("id = ? AND status = ?", params.ProjectId, model.ProjectStatusOpen).
		First(&project).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.InvestmentsRejected.Inc()
			return nil, ErrProjectNotOpen
		}
		return nil, fmt.Errorf("获取项目失败: %w", err)
	}

	investment := &model.InvestmentModel{
		InvestorAddress: params.InvestorAddress,
		InvestedAmount:  params.GivenAmount,
		ActualAmount:    params.ActualAmount,
		ProjectId:       project.Id,
		OnSale:          false,
	}
	if err := tx.Create(investment).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("创建投资记录失败: %w", err)
	}

	// 累加募资金额
	res := tx.Model(&model.ProjectModel{}).
		Where("id = ? AND status = ?", project.Id, model.ProjectStatusOpen).
		Updates(map[string]interface{}{
			"amount_raised": gorm.Expr("amount_raised + ?", params.ActualAmount),
			"total_raised":  gorm.Expr("total_raised + ?", params.GivenAmount),
		})
	if res.Error != nil {
		tx.Rollback()
		return nil, fmt.Errorf("更新项目募资金额失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		metrics.InvestmentsRejected.Inc()
		return nil, ErrProjectNotOpen
	}

	// 检查是否达到目标金额
	closed, err := closeIfFunded(tx, project.Id)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	// 提交事务
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("提交事务失败: %w", err)
	}

	metrics.InvestmentsAccepted.Inc()
	logger.Info("Investment %s accepted: project=%s investor=%s given=%s actual=%s",
		investment.Id, project.Id, investment.InvestorAddress, params.GivenAmount, params.ActualAmount)
	if closed {
		metrics.ProjectsClosed.WithLabelValues(metrics.CloseReasonInvestment).Inc()
		logger.Info("Project %s reached target amount %s and is now CLOSED", project.Id, project.TargetAmount)
	}

	return investment, nil
}

// GetProjectInvestments 获取项目的全部投资记录
func (i *InvestmentLogic) GetProjectInvestments(ctx context.Context, projectId string) ([]model.InvestmentModel, error) {
	db := i.db.WithContext(ctx)

	var count int64
	if err := db.Model(&model.ProjectModel{}).Where("id = ?", projectId).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("查询项目失败: %w", err)
	}
	if count == 0 {
		return nil, ErrProjectNotFound
	}

	investments := make([]model.InvestmentModel, 0)
	if err := db.Where("project_id = ?", projectId).
		Order("created_at ASC").
		Find(&investments).Error; err != nil {
		return nil, fmt.Errorf("获取投资记录失败: %w", err)
	}
	return investments, nil
}

// GetInvestorInvestments 获取投资人的全部投资记录，并附带项目名称
func (i *InvestmentLogic) GetInvestorInvestments(ctx context.Context, investorAddress string) ([]InvestmentWithProject, error) {
	db := i.db.WithContext(ctx)

	var investments []model.InvestmentModel
	if err := db.Where("investor_address = ?", investorAddress).
		Order("created_at ASC").
		Find(&investments).Error; err != nil {
		return nil, fmt.Errorf("获取投资记录失败: %w", err)
	}
	if len(investments) == 0 {
		return nil, ErrInvestmentNotFound
	}

	projectIds := make([]string, 0, len(investments))
	seen := make(map[string]struct{}, len(investments))
	for _, inv := range investments {
		if _, ok := seen[inv.ProjectId]; ok {
			continue
		}
		seen[inv.ProjectId] = struct{}{}
		projectIds = append(projectIds, inv.ProjectId)
	}

	var projects []model.ProjectModel
	if err := db.Select("id", "name").Where("id IN ?", projectIds).Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("获取项目失败: %w", err)
	}
	names := make(map[string]string, len(projects))
	for _, p := range projects {
		names[p.Id] = p.Name
	}

	result := make([]InvestmentWithProject, len(investments))
	for idx, inv := range investments {
		name, ok := names[inv.ProjectId]
		if !ok {
			name = ProjectNotFoundLabel
		}
		result[idx] = InvestmentWithProject{InvestmentModel: inv, ProjectName: name}
	}
	return result, nil
}

// GetInvestments 获取所有投资记录
func (i *InvestmentLogic) GetInvestments(ctx context.Context) ([]model.InvestmentModel, error) {
	investments := make([]model.InvestmentModel, 0)
	if err := i.db.WithContext(ctx).Order("created_at ASC").Find(&investments).Error; err != nil {
		return nil, fmt.Errorf("获取投资记录失败: %w", err)
	}
	return investments, nil
}

// validateInvestment 验证投资数据
func (i *InvestmentLogic) validateInvestment(params CreateInvestmentParams) error {
	if params.InvestorAddress == "" || params.ProjectId == "" {
		return ErrMissingField
	}
	if params.GivenAmount.IsNegative() || params.ActualAmount.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}
