package api

import (
	"time"

	"ledgerboard/aggregator"
	"ledgerboard/models"
	"ledgerboard/store"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BudgetHandler 预算管理
type BudgetHandler struct {
	st *store.Store
}

func NewBudgetHandler(st *store.Store) *BudgetHandler {
	return &BudgetHandler{st: st}
}

type BudgetRequest struct {
	CategoryID string              `json:"category_id" binding:"required"`
	Amount     decimal.Decimal     `json:"amount"`
	Period     models.BudgetPeriod `json:"period" binding:"required"`
	StartDate  time.Time           `json:"start_date"`
	AccountID  *string             `json:"account_id"` // 为空表示所有账户
}

func (r *BudgetRequest) toModel(id string) models.Budget {
	return models.Budget{
		ID:         id,
		CategoryID: r.CategoryID,
		Amount:     r.Amount,
		Period:     r.Period,
		StartDate:  r.StartDate,
		AccountID:  r.AccountID,
	}
}

// List 预算列表
// @Summary 获取预算列表
// @Tags 预算
// @Produce json
// @Success 200 {object} Response{data=[]models.Budget} "获取成功"
// @Router /api/v1/budgets [get]
func (h *BudgetHandler) List(c *gin.Context) {
	Success(c, h.st.Snapshot().Budgets)
}

// Get 单个预算的当前进度
// @Summary 获取预算详情
// @Tags 预算
// @Produce json
// @Param id path string true "预算ID"
// @Success 200 {object} Response{data=aggregator.BudgetProgress} "获取成功"
// @Failure 404 {object} Response "预算不存在"
// @Router /api/v1/budgets/{id} [get]
func (h *BudgetHandler) Get(c *gin.Context) {
	snap := h.st.Snapshot()
	idx := snap.Index()
	b, ok := idx.Budget(c.Param("id"))
	if !ok {
		NotFound(c, "预算不存在")
		return
	}
	p := aggregator.EvaluateBudget(b, snap.Transactions, h.st.Now())
	p.CategoryName = idx.CategoryName(b.CategoryID)
	p.AccountName = idx.ScopeName(b.AccountID)
	Success(c, p)
}

// Progress 所有预算的当前进度
// @Summary 获取预算进度
// @Description 按预算周期（周/月/年）统计当前周期内该类别的支出
// @Tags 预算
// @Produce json
// @Success 200 {object} Response{data=[]aggregator.BudgetProgress} "获取成功"
// @Router /api/v1/budgets/progress [get]
func (h *BudgetHandler) Progress(c *gin.Context) {
	Success(c, aggregator.EvaluateBudgets(h.st.Snapshot(), h.st.Now()))
}

// Create 创建预算
// @Summary 创建预算
// @Tags 预算
// @Accept json
// @Produce json
// @Param request body BudgetRequest true "预算信息"
// @Success 200 {object} Response{data=models.Budget} "创建成功"
// @Failure 400 {object} Response "参数错误"
// @Router /api/v1/budgets [post]
func (h *BudgetHandler) Create(c *gin.Context) {
	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	b, err := h.st.AddBudget(c.Request.Context(), req.toModel(""))
	if err != nil {
		respondError(c, err, "创建预算失败")
		return
	}
	SuccessWithMessage(c, "创建成功", b)
}

// Update 更新预算
// @Summary 更新预算
// @Tags 预算
// @Accept json
// @Produce json
// @Param id path string true "预算ID"
// @Param request body BudgetRequest true "预算信息"
// @Success 200 {object} Response{data=models.Budget} "更新成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 404 {object} Response "预算不存在"
// @Router /api/v1/budgets/{id} [put]
func (h *BudgetHandler) Update(c *gin.Context) {
	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	b, err := h.st.UpdateBudget(c.Request.Context(), req.toModel(c.Param("id")))
	if err != nil {
		respondError(c, err, "更新预算失败")
		return
	}
	SuccessWithMessage(c, "更新成功", b)
}

// Delete 删除预算
// @Summary 删除预算
// @Tags 预算
// @Produce json
// @Param id path string true "预算ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "预算不存在"
// @Router /api/v1/budgets/{id} [delete]
func (h *BudgetHandler) Delete(c *gin.Context) {
	if err := h.st.DeleteBudget(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "删除预算失败")
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}
