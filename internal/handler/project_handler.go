package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rakshit-singh2/fundraising-backend/internal/keystore"
	"github.com/rakshit-singh2/fundraising-backend/internal/logic"
	"gorm.io/gorm"
)

// ProjectHandler 项目处理器
type ProjectHandler struct {
	errorWriter
	projectLogic *logic.ProjectLogic
}

// NewProjectHandler 创建项目处理器
func NewProjectHandler(db *gorm.DB, keys keystore.Generator, exposeErrors bool) *ProjectHandler {
	return &ProjectHandler{
		errorWriter:  errorWriter{exposeErrors: exposeErrors},
		projectLogic: logic.NewProjectLogic(db, keys),
	}
}

// CreateProject 创建项目
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	project, err := h.projectLogic.CreateProject(c.Request.Context(), logic.CreateProjectParams{
		Name:            req.Name,
		TargetAmount:    req.TargetAmount,
		TokenSupply:     req.TokenSupply,
		MinimumBuy:      req.MinimumBuy,
		MaximumBuy:      req.MaximumBuy,
		Vesting:         req.Vesting,
		ReceiverAddress: req.ReceiverAddress,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	SuccessResponse(c, "Project Listed Successfully", gin.H{"project": project})
}

// GetProjectByName 根据名称获取项目
func (h *ProjectHandler) GetProjectByName(c *gin.Context) {
	project, err := h.projectLogic.GetProjectByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	SuccessResponse(c, "", gin.H{"project": project})
}

// GetProjectByAddress 根据收款地址获取项目
func (h *ProjectHandler) GetProjectByAddress(c *gin.Context) {
	project, err := h.projectLogic.GetProjectByAddress(c.Request.Context(), c.Param("address"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	SuccessResponse(c, "", gin.H{"project": project})
}

// GetProjectById 获取单个项目详情
func (h *ProjectHandler) GetProjectById(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		h.badRequest(c, err)
		return
	}

	project, err := h.projectLogic.GetProject(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	SuccessResponse(c, "", gin.H{"project": project})
}

// GetProjects 获取项目列表
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	projects, err := h.projectLogic.GetProjects(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	SuccessResponse(c, "", gin.H{"projects": projects})
}

// AssignToken 为项目分配代币地址
func (h *ProjectHandler) AssignToken(c *gin.Context) {
	var req AssignTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	project, err := h.projectLogic.AssignToken(c.Request.Context(), req.ProjectID, req.TokenAddress)
	if err != nil {
		h.writeError(c, err)
		return
	}
	SuccessResponse(c, "Token assigned successfully", gin.H{"project": project})
}

// Withdraw 项目方提取资金
func (h *ProjectHandler) Withdraw(c *gin.Context) {
	id, err := idParam(c, "projectID")
	if err != nil {
		h.badRequest(c, err)
		return
	}

	project, err := h.projectLogic.Withdraw(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	SuccessResponse(c, "Withdrawal successful", gin.H{"project": project})
}
