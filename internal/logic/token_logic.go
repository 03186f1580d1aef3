package logic

import (
	"context"
	"errors"
	"fmt"

	"github.com/rakshit-singh2/fundraising-backend/internal/model"
	"gorm.io/gorm"
)

// TokenLogic 代币关联查询
type TokenLogic struct {
	db *gorm.DB
}

// NewTokenLogic 创建代币业务逻辑
func NewTokenLogic(db *gorm.DB) *TokenLogic {
	return &TokenLogic{db: db}
}

// GetTokenByAddress 根据代币地址获取关联
func (t *TokenLogic) GetTokenByAddress(ctx context.Context, tokenAddress string) (*model.TokenModel, error) {
	var token model.TokenModel
	if err := t.db.WithContext(ctx).Where("token_address = ?", tokenAddress).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("获取代币失败: %w", err)
	}
	return &token, nil
}
