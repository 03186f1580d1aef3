package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// 请求模型，金额字段接受 JSON 数字或字符串

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Name            string          `json:"name" binding:"required"`
	TargetAmount    decimal.Decimal `json:"targetAmount"`
	TokenSupply     decimal.Decimal `json:"tokenSupply"`
	MinimumBuy      decimal.Decimal `json:"minimumBuy"`
	MaximumBuy      decimal.Decimal `json:"maximumBuy"`
	Vesting         int64           `json:"vesting"`
	ReceiverAddress string          `json:"receiverAddress"`
}

// AssignTokenRequest 分配代币请求
type AssignTokenRequest struct {
	ProjectID    string `json:"projectID" binding:"required,uuid"`
	TokenAddress string `json:"tokenAddress" binding:"required"`
}

// CreateInvestmentRequest 创建投资请求
type CreateInvestmentRequest struct {
	InvestorAddress string          `json:"investorAddress" binding:"required"`
	GivenAmount     decimal.Decimal `json:"givenAmount"`
	ActualAmount    decimal.Decimal `json:"actualAmount"`
	ProjectID       string          `json:"projectID" binding:"required,uuid"`
}

// SellStakesQuery 挂售请求参数
type SellStakesQuery struct {
	InvestorAddress string `form:"investorAddress" binding:"required"`
	ProjectID       string `form:"projectID" binding:"required,uuid"`
}

// BuyStakesQuery 购买挂售份额请求参数
type BuyStakesQuery struct {
	SellStakesQuery
	NewInvestorAddress string `form:"newInvestorAddress" binding:"required"`
}

// idParam 读取并校验路径中的 UUID 参数
func idParam(c *gin.Context, name string) (string, error) {
	raw := c.Param(name)
	if _, err := uuid.Parse(raw); err != nil {
		return "", fmt.Errorf("%s must be a valid id", name)
	}
	return raw, nil
}
