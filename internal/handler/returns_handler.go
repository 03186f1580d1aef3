package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rakshit-singh2/fundraising-backend/internal/logic"
	"gorm.io/gorm"
)

// ReturnsHandler 收益查询处理器
type ReturnsHandler struct {
	errorWriter
	returnsLogic *logic.ReturnsLogic
}

// NewReturnsHandler 创建收益查询处理器
func NewReturnsHandler(db *gorm.DB, precision int32, exposeErrors bool) *ReturnsHandler {
	return &ReturnsHandler{
		errorWriter:  errorWriter{exposeErrors: exposeErrors},
		returnsLogic: logic.NewReturnsLogic(db, precision),
	}
}

// InvestorsOnProject 按投资人汇总项目认购金额
func (h *ReturnsHandler) InvestorsOnProject(c *gin.Context) {
	h.respond(c, h.returnsLogic.GetInvestorTotals)
}

// InvestorsReturns 按投资人计算代币分配
func (h *ReturnsHandler) InvestorsReturns(c *gin.Context) {
	h.respond(c, h.returnsLogic.GetInvestorReturns)
}

type investorQuery func(ctx context.Context, projectId string) ([]logic.InvestorAmount, error)

func (h *ReturnsHandler) respond(c *gin.Context, query investorQuery) {
	id, err := idParam(c, "projectID")
	if err != nil {
		h.badRequest(c, err)
		return
	}

	investments, err := query(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	SuccessResponse(c, "", gin.H{
		"projectID":   id,
		"investments": investments,
	})
}
