package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UnassignedTokenAddress 项目尚未分配代币时的占位地址
const UnassignedTokenAddress = "0x0x0000000000000000000000000000000000000000"

// PayoutAddressLength 收款地址长度
const PayoutAddressLength = 42

// ProjectModel 众筹项目模型
type ProjectModel struct {
	Id        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// 基本信息
	Name    string `json:"name" gorm:"uniqueIndex;not null"`
	Vesting int64  `json:"vesting" gorm:"default:0"`

	// 众筹信息
	TargetAmount decimal.Decimal `json:"targetAmount" gorm:"type:decimal(38,18);not null"`
	TokenSupply  decimal.Decimal `json:"tokenSupply" gorm:"type:decimal(38,18);not null"`
	MinimumBuy   decimal.Decimal `json:"minimumBuy" gorm:"type:decimal(38,18);not null;default:0"`
	MaximumBuy   decimal.Decimal `json:"maximumBuy" gorm:"type:decimal(38,18);not null;default:0"`
	AmountRaised decimal.Decimal `json:"amountRaised" gorm:"type:decimal(38,18);not null;default:0"` // 实际到账金额累计
	TotalRaised  decimal.Decimal `json:"totalRaised" gorm:"type:decimal(38,18);not null;default:0"`  // 认购金额累计，提现后清零

	// 状态
	Status ProjectStatus `json:"status" gorm:"type:varchar(16);index;not null;default:'OPEN'"`

	// 收款与代币
	ReceiverAddress string `json:"receiverAddress" gorm:"type:varchar(42);uniqueIndex;not null"`
	TokenAddress    string `json:"tokenAddress" gorm:"type:varchar(64);not null"`

	// 托管密钥对
	PublicKey        string `json:"publicKey"`
	CustodialAddress string `json:"custodialAddress" gorm:"type:varchar(42)"`
	PrivateKey       string `json:"-"`
}

// ProjectStatus 项目状态
type ProjectStatus string

const (
	ProjectStatusOpen   ProjectStatus = "OPEN"   // 募资中
	ProjectStatusClosed ProjectStatus = "CLOSED" // 已达成目标
	ProjectStatusBlock  ProjectStatus = "BLOCK"  // 已冻结
)

// TableName 自定义表名
func (ProjectModel) TableName() string {
	return "project"
}

// BeforeCreate 生成主键并补齐默认值
func (p *ProjectModel) BeforeCreate(tx *gorm.DB) error {
	if p.Id == "" {
		p.Id = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = ProjectStatusOpen
	}
	if p.TokenAddress == "" {
		p.TokenAddress = UnassignedTokenAddress
	}
	return nil
}

// ReachedTarget 募资金额是否已达到目标
func (p *ProjectModel) ReachedTarget() bool {
	return p.AmountRaised.GreaterThanOrEqual(p.TargetAmount)
}
