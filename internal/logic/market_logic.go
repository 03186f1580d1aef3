package logic

import (
	"context"
	"fmt"

	"github.com/rakshit-singh2/fundraising-backend/internal/logger"
	"github.com/rakshit-singh2/fundraising-backend/internal/metrics"
	"github.com/rakshit-singh2/fundraising-backend/internal/model"
	"gorm.io/gorm"
)

// MarketLogic 二级市场业务逻辑，按 (投资人, 项目) 整体挂售与转让
type MarketLogic struct {
	db *gorm.DB
}

// NewMarketLogic 创建二级市场业务逻辑
func NewMarketLogic(db *gorm.DB) *MarketLogic {
	return &MarketLogic{db: db}
}

// GetOnSaleInvestments 获取项目中正在挂售的投资记录
func (m *MarketLogic) GetOnSaleInvestments(ctx context.Context, projectId string) ([]model.InvestmentModel, error) {
	var investments []model.InvestmentModel
	if err := m.db.WithContext(ctx).
		Where("project_id = ? AND on_sale = ?", projectId, true).
		Order("created_at ASC").
		Find(&investments).Error; err != nil {
		return nil, fmt.Errorf("获取挂售记录失败: %w", err)
	}
	if len(investments) == 0 {
		return nil, ErrNoStakesOnSale
	}
	return investments, nil
}

// SellStakes 将投资人在项目中的全部投资记录标记为挂售，返回受影响的记录数
func (m *MarketLogic) SellStakes(ctx context.Context, investorAddress, projectId string) (int64, error) {
	if investorAddress == "" || projectId == "" {
		return 0, ErrMissingField
	}

	res := m.db.WithContext(ctx).Model(&model.InvestmentModel{}).
		Where("investor_address = ? AND project_id = ?", investorAddress, projectId).
		Update("on_sale", true)
	if res.Error != nil {
		return 0, fmt.Errorf("挂售失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, ErrInvestmentNotFound
	}

	metrics.StakesListed.Add(float64(res.RowsAffected))
	logger.Info("Investor %s listed %d stake(s) of project %s for sale",
		investorAddress, res.RowsAffected, projectId)
	return res.RowsAffected, nil
}

// BuyStakes 将挂售中的投资记录整体转让给新投资人，返回受影响的记录数
//
// 不支持部分转让：同一 (投资人, 项目) 下挂售的记录在一条 UPDATE 中一起转移。
func (m *MarketLogic) BuyStakes(ctx context.Context, investorAddress, projectId, newInvestorAddress string) (int64, error) {
	if investorAddress == "" || projectId == "" || newInvestorAddress == "" {
		return 0, ErrMissingField
	}

	res := m.db.WithContext(ctx).Model(&model.InvestmentModel{}).
		Where("investor_address = ? AND project_id = ? AND on_sale = ?", investorAddress, projectId, true).
		Updates(map[string]interface{}{
			"on_sale":          false,
			"investor_address": newInvestorAddress,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("转让失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, ErrInvestmentNotFound
	}

	metrics.StakesTransferred.Add(float64(res.RowsAffected))
	logger.Info("Transferred %d stake(s) of project %s from %s to %s",
		res.RowsAffected, projectId, investorAddress, newInvestorAddress)
	return res.RowsAffected, nil
}
