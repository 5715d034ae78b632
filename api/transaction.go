package api

import (
	"time"

	"ledgerboard/aggregator"
	"ledgerboard/models"
	"ledgerboard/store"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TransactionHandler 交易记录
type TransactionHandler struct {
	st *store.Store
}

func NewTransactionHandler(st *store.Store) *TransactionHandler {
	return &TransactionHandler{st: st}
}

type TransactionRequest struct {
	AccountID       string                 `json:"account_id" binding:"required"`
	CategoryID      string                 `json:"category_id"`
	Amount          decimal.Decimal        `json:"amount"`
	Description     string                 `json:"description" binding:"omitempty,max=255"`
	Date            time.Time              `json:"date"` // 为空时取当前时间
	Type            models.TransactionType `json:"type" binding:"required"`
	Tags            []string               `json:"tags"`
	TargetAccountID *string                `json:"target_account_id"`
}

func (r *TransactionRequest) toModel(id string) models.Transaction {
	return models.Transaction{
		ID:              id,
		AccountID:       r.AccountID,
		CategoryID:      r.CategoryID,
		Amount:          r.Amount,
		Description:     r.Description,
		Date:            r.Date,
		Type:            r.Type,
		Tags:            r.Tags,
		TargetAccountID: r.TargetAccountID,
	}
}

// List 交易列表，按日期倒序
// @Summary 获取交易列表
// @Description 支持按描述搜索、账户、类别、类型和日期筛选，按日期倒序分页返回
// @Tags 交易
// @Produce json
// @Param search query string false "描述关键字"
// @Param account_ids query string false "账户ID，逗号分隔"
// @Param category_ids query string false "类别ID，逗号分隔"
// @Param types query string false "交易类型，逗号分隔，默认全部"
// @Param start_date query string false "开始日期 (2024-01-01)"
// @Param end_date query string false "结束日期 (2024-01-31)"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} Response{data=api.Page[models.Transaction]} "获取成功"
// @Failure 400 {object} Response "参数错误"
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	period, err := queryDateRange(c, h.st.Now())
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	filter, err := queryFilter(c, period)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	page, pageSize := queryPage(c)

	txs := aggregator.SortByDateDesc(aggregator.FilterTransactions(h.st.Snapshot().Transactions, filter))
	Success(c, newPage(txs, page, pageSize))
}

// Get 交易详情
// @Summary 获取交易详情
// @Tags 交易
// @Produce json
// @Param id path string true "交易ID"
// @Success 200 {object} Response{data=models.Transaction} "获取成功"
// @Failure 404 {object} Response "交易不存在"
// @Router /api/v1/transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	t, ok := h.st.Snapshot().Index().Transaction(c.Param("id"))
	if !ok {
		NotFound(c, "交易不存在")
		return
	}
	Success(c, t)
}

// Create 记一笔
// @Summary 创建交易
// @Description 转账必须指定不同于来源账户的目标账户
// @Tags 交易
// @Accept json
// @Produce json
// @Param request body TransactionRequest true "交易信息"
// @Success 200 {object} Response{data=models.Transaction} "创建成功"
// @Failure 400 {object} Response "参数错误"
// @Router /api/v1/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	t, err := h.st.AddTransaction(c.Request.Context(), req.toModel(""))
	if err != nil {
		respondError(c, err, "创建交易失败")
		return
	}
	SuccessWithMessage(c, "创建成功", t)
}

// Update 更新交易
// @Summary 更新交易
// @Tags 交易
// @Accept json
// @Produce json
// @Param id path string true "交易ID"
// @Param request body TransactionRequest true "交易信息"
// @Success 200 {object} Response{data=models.Transaction} "更新成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 404 {object} Response "交易不存在"
// @Router /api/v1/transactions/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	t, err := h.st.UpdateTransaction(c.Request.Context(), req.toModel(c.Param("id")))
	if err != nil {
		respondError(c, err, "更新交易失败")
		return
	}
	SuccessWithMessage(c, "更新成功", t)
}

// Delete 删除交易
// @Summary 删除交易
// @Tags 交易
// @Produce json
// @Param id path string true "交易ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "交易不存在"
// @Router /api/v1/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	if err := h.st.DeleteTransaction(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "删除交易失败")
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}
