package logic

import (
	"context"
	"errors"
	"fmt"

	"github.com/rakshit-singh2/fundraising-backend/internal/keystore"
	"github.com/rakshit-singh2/fundraising-backend/internal/logger"
	"github.com/rakshit-singh2/fundraising-backend/internal/metrics"
	"github.com/rakshit-singh2/fundraising-backend/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProjectLogic 项目业务逻辑
type ProjectLogic struct {
	db   *gorm.DB
	keys keystore.Generator
}

// NewProjectLogic 创建项目业务逻辑
func NewProjectLogic(db *gorm.DB, keys keystore.Generator) *ProjectLogic {
	return &ProjectLogic{db: db, keys: keys}
}

// CreateProjectParams 创建项目参数
type CreateProjectParams struct {
	Name            string
	TargetAmount    decimal.Decimal
	TokenSupply     decimal.Decimal
	MinimumBuy      decimal.Decimal
	MaximumBuy      decimal.Decimal
	Vesting         int64
	ReceiverAddress string
}

// CreateProject 创建项目
func (p *ProjectLogic) CreateProject(ctx context.Context, params CreateProjectParams) (*model.ProjectModel, error) {
	if len(params.ReceiverAddress) != model.PayoutAddressLength {
		return nil, ErrInvalidAddress
	}

	db := p.db.WithContext(ctx)

	// 名称与收款地址均需唯一
	var count int64
	if err := db.Model(&model.ProjectModel{}).
		Where("name = ? OR receiver_address = ?", params.Name, params.ReceiverAddress).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("查询项目失败: %w", err)
	}
	if count > 0 {
		return nil, ErrProjectExists
	}

	keys, err := p.keys.Generate()
	if err != nil {
		return nil, fmt.Errorf("生成托管密钥失败: %w", err)
	}

	project := &model.ProjectModel{
		Name:             params.Name,
		TargetAmount:     params.TargetAmount,
		TokenSupply:      params.TokenSupply,
		MinimumBuy:       params.MinimumBuy,
		MaximumBuy:       params.MaximumBuy,
		Vesting:          params.Vesting,
		ReceiverAddress:  params.ReceiverAddress,
		AmountRaised:     decimal.Zero,
		TotalRaised:      decimal.Zero,
		Status:           model.ProjectStatusOpen,
		TokenAddress:     model.UnassignedTokenAddress,
		PublicKey:        keys.PublicKey,
		PrivateKey:       keys.PrivateKey,
		CustodialAddress: keys.Address,
	}

	if err := db.Create(project).Error; err != nil {
		// 并发创建时由唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrProjectExists
		}
		return nil, fmt.Errorf("创建项目失败: %w", err)
	}

	metrics.ProjectsCreated.Inc()
	logger.Info("Project %s created (name=%s, target=%s, supply=%s)",
		project.Id, project.Name, project.TargetAmount, project.TokenSupply)

	return project, nil
}

// GetProjectByName 根据名称获取项目
func (p *ProjectLogic) GetProjectByName(ctx context.Context, name string) (*model.ProjectModel, error) {
	return p.first(ctx, "name = ?", name)
}

// GetProjectByAddress 根据收款地址获取项目
func (p *ProjectLogic) GetProjectByAddress(ctx context.Context, address string) (*model.ProjectModel, error) {
	return p.first(ctx, "receiver_address = ?", address)
}

// GetProject 根据ID获取项目
func (p *ProjectLogic) GetProject(ctx context.Context, id string) (*model.ProjectModel, error) {
	return p.first(ctx, "id = ?", id)
}

// GetProjects 获取所有项目
func (p *ProjectLogic) GetProjects(ctx context.Context) ([]model.ProjectModel, error) {
	projects := make([]model.ProjectModel, 0)
	if err := p.db.WithContext(ctx).Order("created_at ASC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("获取项目列表失败: %w", err)
	}
	return projects, nil
}

// AssignToken 为募资中的项目分配代币地址
func (p *ProjectLogic) AssignToken(ctx context.Context, projectId, tokenAddress string) (*model.ProjectModel, error) {
	if projectId == "" || tokenAddress == "" {
		return nil, ErrMissingField
	}

	var project model.ProjectModel
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND status = ?", projectId, model.ProjectStatusOpen).
			First(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return fmt.Errorf("获取项目失败: %w", err)
		}

		// 同一代币地址只关联一个项目
		var existing model.TokenModel
		if err := tx.Where("token_address = ?", tokenAddress).Limit(1).Find(&existing).Error; err != nil {
			return fmt.Errorf("查询代币关联失败: %w", err)
		}
		if existing.Id != "" && existing.ProjectId != project.Id {
			return ErrTokenAssigned
		}

		if err := tx.Model(&project).Update("token_address", tokenAddress).Error; err != nil {
			return fmt.Errorf("更新代币地址失败: %w", err)
		}
		project.TokenAddress = tokenAddress

		// 项目更换代币时移除旧关联
		if err := tx.Where("project_id = ? AND token_address <> ?", project.Id, tokenAddress).
			Delete(&model.TokenModel{}).Error; err != nil {
			return fmt.Errorf("移除旧代币关联失败: %w", err)
		}
		if existing.Id == "" {
			token := model.TokenModel{TokenAddress: tokenAddress, ProjectId: project.Id}
			if err := tx.Create(&token).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrTokenAssigned
				}
				return fmt.Errorf("保存代币关联失败: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Token %s assigned to project %s", tokenAddress, project.Id)
	return &project, nil
}

// Withdraw 项目方提取资金，清零认购累计金额
func (p *ProjectLogic) Withdraw(ctx context.Context, projectId string) (*model.ProjectModel, error) {
	var (
		project   model.ProjectModel
		withdrawn decimal.Decimal
	)
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND status = ?", projectId, model.ProjectStatusOpen).
			First(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return fmt.Errorf("获取项目失败: %w", err)
		}

		res := tx.Model(&model.ProjectModel{}).
			Where("id = ? AND status = ?", projectId, model.ProjectStatusOpen).
			Update("total_raised", decimal.Zero)
		if res.Error != nil {
			return fmt.Errorf("更新项目失败: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrProjectNotFound
		}

		withdrawn = project.TotalRaised
		project.TotalRaised = decimal.Zero
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Project %s withdrew %s", project.Id, withdrawn)
	return &project, nil
}

// GetFundedOpenProjects 获取已达到目标但仍处于募资中的项目
func (p *ProjectLogic) GetFundedOpenProjects(ctx context.Context) ([]model.ProjectModel, error) {
	var projects []model.ProjectModel
	if err := p.db.WithContext(ctx).
		Where("status = ? AND amount_raised >= target_amount", model.ProjectStatusOpen).
		Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("获取待关闭项目失败: %w", err)
	}
	return projects, nil
}

// CloseIfFunded 达到目标金额时关闭项目，返回是否发生了状态变更
func (p *ProjectLogic) CloseIfFunded(ctx context.Context, projectId string) (bool, error) {
	return closeIfFunded(p.db.WithContext(ctx), projectId)
}

// closeIfFunded 在给定的连接或事务中执行 OPEN -> CLOSED 状态变更
func closeIfFunded(tx *gorm.DB, projectId string) (bool, error) {
	var project model.ProjectModel
	if err := tx.Where("id = ?", projectId).First(&project).Error; err != nil {
		return false, fmt.Errorf("获取项目失败: %w", err)
	}
	if project.Status != model.ProjectStatusOpen || !project.ReachedTarget() {
		return false, nil
	}

	res := tx.Model(&model.ProjectModel{}).
		Where("id = ? AND status = ?", projectId, model.ProjectStatusOpen).
		Update("status", model.ProjectStatusClosed)
	if res.Error != nil {
		return false, fmt.Errorf("关闭项目失败: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (p *ProjectLogic) first(ctx context.Context, query string, args ...interface{}) (*model.ProjectModel, error) {
	var project model.ProjectModel
	if err := p.db.WithContext(ctx).Where(query, args...).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("获取项目详情失败: %w", err)
	}
	return &project, nil
}
