package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rakshit-singh2/fundraising-backend/internal/logic"
	"gorm.io/gorm"
)

// InvestmentHandler 投资记录处理器
type InvestmentHandler struct {
	errorWriter
	investmentLogic *logic.InvestmentLogic
}

// NewInvestmentHandler 创建投资记录处理器
func NewInvestmentHandler(db *gorm.DB, exposeErrors bool) *InvestmentHandler {
	return &InvestmentHandler{
		errorWriter:     errorWriter{exposeErrors: exposeErrors},
		investmentLogic: logic.NewInvestmentLogic(db),
	}
}

// CreateInvestment 创建投资记录
func (h *InvestmentHandler) CreateInvestment(c *gin.Context) {
	var req CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	investment, err := h.investmentLogic.CreateInvestment(c.Request.Context(), logic.CreateInvestmentParams{
		InvestorAddress: req.InvestorAddress,
		GivenAmount:     req.GivenAmount,
		ActualAmount:    req.ActualAmount,
		ProjectId:       req.ProjectID,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	SuccessResponse(c, "Investment Listed Successfully", gin.H{"investment": investment})
}

// GetInvestmentByProject 获取项目的投资记录
func (h *InvestmentHandler) GetInvestmentByProject(c *gin.Context) {
	id, err := idParam(c, "projectId")
	if err != nil {
		h.badRequest(c, err)
		return
	}

	investments, err := h.investmentLogic.GetProjectInvestments(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	SuccessResponse(c, "", gin.H{"investment": investments})
}

// GetInvestmentByAddress 获取投资人的投资记录
func (h *InvestmentHandler) GetInvestmentByAddress(c *gin.Context) {
	investments, err := h.investmentLogic.GetInvestorInvestments(c.Request.Context(), c.Param("address"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	SuccessResponse(c, "", gin.H{"investment": investments})
}

// GetAllInvestment 获取所有投资记录
func (h *InvestmentHandler) GetAllInvestment(c *gin.Context) {
	investments, err := h.investmentLogic.GetInvestments(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	SuccessResponse(c, "", gin.H{"investments": investments})
}
