package logic

import (
	"context"
	"fmt"

	"github.com/rakshit-singh2/fundraising-backend/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultReturnsPrecision 代币分配默认保留的小数位数
const DefaultReturnsPrecision int32 = 18

// ReturnsLogic 收益计算
type ReturnsLogic struct {
	db        *gorm.DB
	precision int32
}

// NewReturnsLogic 创建收益计算逻辑，precision 为分配结果保留的小数位数
func NewReturnsLogic(db *gorm.DB, precision int32) *ReturnsLogic {
	if precision < 0 {
		precision = DefaultReturnsPrecision
	}
	return &ReturnsLogic{db: db, precision: precision}
}

// InvestorAmount 按投资人汇总的金额或代币数量
type InvestorAmount struct {
	Address string          `json:"address"`
	Amount  decimal.Decimal `json:"amount"`
}

type investorTotalRow struct {
	InvestorAddress string
	Total           decimal.Decimal
}

// GetInvestorTotals 按投资人汇总项目的认购金额
func (r *ReturnsLogic) GetInvestorTotals(ctx context.Context, projectId string) ([]InvestorAmount, error) {
	if _, err := r.getProject(ctx, projectId); err != nil {
		return nil, err
	}
	return r.investorTotals(ctx, projectId)
}

// GetInvestorReturns 计算每个投资人应得的代币数量
//
// allocation = tokenSupply * investorTotal / targetAmount。每项结果按 precision
// 向零截断，全体截断产生的余数补给分配最多的投资人（并列时取地址最小者）。
func (r *ReturnsLogic) GetInvestorReturns(ctx context.Context, projectId string) ([]InvestorAmount, error) {
	project, err := r.getProject(ctx, projectId)
	if err != nil {
		return nil, err
	}
	if project.TargetAmount.IsZero() {
		return nil, ErrZeroTarget
	}

	totals, err := r.investorTotals(ctx, projectId)
	if err != nil {
		return nil, err
	}
	return Allocate(totals, project.TokenSupply, project.TargetAmount, r.precision), nil
}

// Allocate 按认购金额线性分配代币供应量，totals 需按地址排序
func Allocate(totals []InvestorAmount, tokenSupply, targetAmount decimal.Decimal, precision int32) []InvestorAmount {
	result := make([]InvestorAmount, len(totals))
	if len(totals) == 0 {
		return result
	}

	groupTotal := decimal.Zero
	allocated := decimal.Zero
	largest := 0
	for i, t := range totals {
		share, _ := tokenSupply.Mul(t.Amount).QuoRem(targetAmount, precision)
		result[i] = InvestorAmount{Address: t.Address, Amount: share}
		groupTotal = groupTotal.Add(t.Amount)
		allocated = allocated.Add(share)
		if share.GreaterThan(result[largest].Amount) {
			largest = i
		}
	}

	groupShare, _ := tokenSupply.Mul(groupTotal).QuoRem(targetAmount, precision)
	if remainder := groupShare.Sub(allocated); remainder.IsPositive() {
		result[largest].Amount = result[largest].Amount.Add(remainder)
	}
	return result
}

func (r *ReturnsLogic) investorTotals(ctx context.Context, projectId string) ([]InvestorAmount, error) {
	var rows []investorTotalRow
	if err := r.db.WithContext(ctx).Model(&model.InvestmentModel{}).
		Select("investor_address, SUM(invested_amount) AS total").
		Where("project_id = ?", projectId).
		Group("investor_address").
		Order("investor_address ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("汇总投资金额失败: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoInvestments
	}

	totals := make([]InvestorAmount, len(rows))
	for i, row := range rows {
		totals[i] = InvestorAmount{Address: row.InvestorAddress, Amount: row.Total}
	}
	return totals, nil
}

func (r *ReturnsLogic) getProject(ctx context.Context, projectId string) (*model.ProjectModel, error) {
	var project model.ProjectModel
	if err := r.db.WithContext(ctx).Where("id = ?", projectId).Limit(1).Find(&project).Error; err != nil {
		return nil, fmt.Errorf("获取项目失败: %w", err)
	}
	if project.Id == "" {
		return nil, ErrProjectNotFound
	}
	return &project, nil
}
