package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenModel 代币与项目的关联
type TokenModel struct {
	Id        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	TokenAddress string `json:"tokenAddress" gorm:"type:varchar(64);uniqueIndex;not null"`
	ProjectId    string `json:"projectID" gorm:"type:varchar(36);index;not null"`
}

// TableName 自定义表名
func (TokenModel) TableName() string {
	return "token"
}

// BeforeCreate 生成主键
func (t *TokenModel) BeforeCreate(tx *gorm.DB) error {
	if t.Id == "" {
		t.Id = uuid.NewString()
	}
	return nil
}

// AllModels 需要自动迁移的模型
func AllModels() []interface{} {
	return []interface{}{
		&ProjectModel{},
		&InvestmentModel{},
		&TokenModel{},
	}
}
