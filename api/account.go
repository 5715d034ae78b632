package api

import (
	"ledgerboard/aggregator"
	"ledgerboard/models"
	"ledgerboard/store"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AccountHandler 账户管理
type AccountHandler struct {
	st *store.Store
}

func NewAccountHandler(st *store.Store) *AccountHandler {
	return &AccountHandler{st: st}
}

type AccountRequest struct {
	Name           string             `json:"name" binding:"required,max=100"`
	Type           models.AccountType `json:"type" binding:"required"`
	Currency       string             `json:"currency" binding:"omitempty,len=3"`
	Icon           string             `json:"icon" binding:"omitempty,max=50"`
	Color          string             `json:"color" binding:"omitempty,max=20"`
	InitialBalance decimal.Decimal    `json:"initial_balance"`
}

func (r *AccountRequest) toModel(id string) models.Account {
	return models.Account{
		ID:             id,
		Name:           r.Name,
		Type:           r.Type,
		Currency:       r.Currency,
		Icon:           r.Icon,
		Color:          r.Color,
		InitialBalance: r.InitialBalance,
	}
}

// List 账户列表及当前余额
// @Summary 获取账户列表
// @Description 返回所有账户及其当前余额（初始余额 + 交易变动）
// @Tags 账户
// @Produce json
// @Success 200 {object} Response{data=[]aggregator.AccountSummary} "获取成功"
// @Router /api/v1/accounts [get]
func (h *AccountHandler) List(c *gin.Context) {
	snap := h.st.Snapshot()
	balances := aggregator.Balances(snap.Accounts, snap.Transactions)
	list := make([]aggregator.AccountSummary, 0, len(snap.Accounts))
	for _, a := range snap.Accounts {
		list = append(list, aggregator.AccountSummary{Account: a, Balance: balances[a.ID]})
	}
	Success(c, list)
}

// Get 账户详情
// @Summary 获取账户详情
// @Tags 账户
// @Produce json
// @Param id path string true "账户ID"
// @Success 200 {object} Response{data=aggregator.AccountSummary} "获取成功"
// @Failure 404 {object} Response "账户不存在"
// @Router /api/v1/accounts/{id} [get]
func (h *AccountHandler) Get(c *gin.Context) {
	snap := h.st.Snapshot()
	a, ok := snap.Index().Account(c.Param("id"))
	if !ok {
		NotFound(c, "账户不存在")
		return
	}
	Success(c, aggregator.AccountSummary{Account: a, Balance: aggregator.DisplayedBalance(a, snap.Transactions)})
}

// Create 创建账户
// @Summary 创建账户
// @Tags 账户
// @Accept json
// @Produce json
// @Param request body AccountRequest true "账户信息"
// @Success 200 {object} Response{data=models.Account} "创建成功"
// @Failure 400 {object} Response "参数错误"
// @Router /api/v1/accounts [post]
func (h *AccountHandler) Create(c *gin.Context) {
	var req AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	a, err := h.st.AddAccount(c.Request.Context(), req.toModel(""))
	if err != nil {
		respondError(c, err, "创建账户失败")
		return
	}
	SuccessWithMessage(c, "创建成功", a)
}

// Update 更新账户
// @Summary 更新账户
// @Tags 账户
// @Accept json
// @Produce json
// @Param id path string true "账户ID"
// @Param request body AccountRequest true "账户信息"
// @Success 200 {object} Response{data=models.Account} "更新成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 404 {object} Response "账户不存在"
// @Router /api/v1/accounts/{id} [put]
func (h *AccountHandler) Update(c *gin.Context) {
	var req AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	a, err := h.st.UpdateAccount(c.Request.Context(), req.toModel(c.Param("id")))
	if err != nil {
		respondError(c, err, "更新账户失败")
		return
	}
	SuccessWithMessage(c, "更新成功", a)
}

// Delete 删除账户，关联交易保留
// @Summary 删除账户
// @Tags 账户
// @Produce json
// @Param id path string true "账户ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "账户不存在"
// @Router /api/v1/accounts/{id} [delete]
func (h *AccountHandler) Delete(c *gin.Context) {
	if err := h.st.DeleteAccount(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "删除账户失败")
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}

// Balance 账户余额
// @Summary 获取账户余额
// @Description 返回初始余额、交易变动和当前余额
// @Tags 账户
// @Produce json
// @Param id path string true "账户ID"
// @Success 200 {object} Response "获取成功"
// @Failure 404 {object} Response "账户不存在"
// @Router /api/v1/accounts/{id}/balance [get]
func (h *AccountHandler) Balance(c *gin.Context) {
	snap := h.st.Snapshot()
	a, ok := snap.Index().Account(c.Param("id"))
	if !ok {
		NotFound(c, "账户不存在")
		return
	}
	change := aggregator.AccountBalance(a.ID, snap.Transactions)
	Success(c, gin.H{
		"account_id":      a.ID,
		"currency":        a.Currency,
		"initial_balance": a.InitialBalance,
		"change":          change,
		"balance":         a.InitialBalance.Add(change),
	})
}

// TotalBalance 所有账户余额合计
// @Summary 获取总余额
// @Tags 账户
// @Produce json
// @Success 200 {object} Response "获取成功"
// @Router /api/v1/balance/total [get]
func (h *AccountHandler) TotalBalance(c *gin.Context) {
	snap := h.st.Snapshot()
	Success(c, gin.H{
		"total_balance": aggregator.TotalBalance(snap.Accounts, snap.Transactions),
		"account_count": len(snap.Accounts),
	})
}
