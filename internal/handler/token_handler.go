package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rakshit-singh2/fundraising-backend/internal/logic"
	"gorm.io/gorm"
)

// TokenHandler 代币关联查询处理器
type TokenHandler struct {
	errorWriter
	tokenLogic *logic.TokenLogic
}

// NewTokenHandler 创建代币处理器
func NewTokenHandler(db *gorm.DB, exposeErrors bool) *TokenHandler {
	return &TokenHandler{
		errorWriter: errorWriter{exposeErrors: exposeErrors},
		tokenLogic:  logic.NewTokenLogic(db),
	}
}

// GetTokenByAddress 根据代币地址查询关联项目
func (h *TokenHandler) GetTokenByAddress(c *gin.Context) {
	token, err := h.tokenLogic.GetTokenByAddress(c.Request.Context(), c.Param("address"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	SuccessResponse(c, "", gin.H{"token": token})
}
