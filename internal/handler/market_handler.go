package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rakshit-singh2/fundraising-backend/internal/logic"
	"gorm.io/gorm"
)

// MarketHandler 二级市场处理器
type MarketHandler struct {
	errorWriter
	marketLogic *logic.MarketLogic
}

// NewMarketHandler 创建二级市场处理器
func NewMarketHandler(db *gorm.DB, exposeErrors bool) *MarketHandler {
	return &MarketHandler{
		errorWriter: errorWriter{exposeErrors: exposeErrors},
		marketLogic: logic.NewMarketLogic(db),
	}
}

// SellStakes 挂售投资份额
func (h *MarketHandler) SellStakes(c *gin.Context) {
	var q SellStakesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, err)
		return
	}

	count, err := h.marketLogic.SellStakes(c.Request.Context(), q.InvestorAddress, q.ProjectID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	SuccessResponse(c, "Stakes listed for sale", gin.H{"count": count})
}

// GetOnSaleInvestmentByProject 获取项目中挂售的投资记录
func (h *MarketHandler) GetOnSaleInvestmentByProject(c *gin.Context) {
	id, err := idParam(c, "projectID")
	if err != nil {
		h.badRequest(c, err)
		return
	}

	investments, err := h.marketLogic.GetOnSaleInvestments(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	SuccessResponse(c, "", gin.H{"investments": investments})
}

// BuyStakes 购买挂售中的投资份额
func (h *MarketHandler) BuyStakes(c *gin.Context) {
	var q BuyStakesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, err)
		return
	}

	count, err := h.marketLogic.BuyStakes(c.Request.Context(), q.InvestorAddress, q.ProjectID, q.NewInvestorAddress)
	if err != nil {
		h.writeError(c, err)
		return
	}
	SuccessResponse(c, "Stakes transferred", gin.H{"count": count})
}
