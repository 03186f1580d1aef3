package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvestmentModel 投资记录
type InvestmentModel struct {
	Id        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	InvestorAddress string          `json:"investorAddress" gorm:"index:idx_investment_investor_project;not null"`
	InvestedAmount  decimal.Decimal `json:"investedAmount" gorm:"type:decimal(38,18);not null"` // 认购金额
	ActualAmount    decimal.Decimal `json:"actualAmount" gorm:"type:decimal(38,18);not null"`   // 实际到账金额
	ProjectId       string          `json:"projectID" gorm:"type:varchar(36);index:idx_investment_investor_project;not null"`
	OnSale          bool            `json:"onSale" gorm:"not null;default:false"`
}

// TableName 自定义表名
func (InvestmentModel) TableName() string {
	return "investment"
}

// BeforeCreate 生成主键
func (i *InvestmentModel) BeforeCreate(tx *gorm.DB) error {
	if i.Id == "" {
		i.Id = uuid.NewString()
	}
	return nil
}
