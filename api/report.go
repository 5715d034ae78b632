package api

import (
	"ledgerboard/aggregator"
	"ledgerboard/models"
	"ledgerboard/store"

	"github.com/gin-gonic/gin"
)

// ReportHandler 收支报表
type ReportHandler struct {
	st *store.Store
}

func NewReportHandler(st *store.Store) *ReportHandler {
	return &ReportHandler{st: st}
}

// filtered 按请求参数筛选交易
func (h *ReportHandler) filtered(c *gin.Context) (*aggregator.Snapshot, models.DateRange, []models.Transaction, bool) {
	snap := h.st.Snapshot()
	period, filter, err := reportQuery(c, h.st.Now())
	if err != nil {
		BadRequest(c, err.Error())
		return nil, models.DateRange{}, nil, false
	}
	return snap, period, aggregator.FilterTransactions(snap.Transactions, filter), true
}

// Summary 收支汇总
// @Summary 获取收支汇总
// @Description 统计筛选范围内的收入、支出、转账与净额，默认本月
// @Tags 报表
// @Produce json
// @Param start_date query string false "开始日期 (2024-01-01)"
// @Param end_date query string false "结束日期 (2024-01-31)"
// @Param range query string false "预设范围 this_month/last_month/this_week/this_year"
// @Param account_ids query string false "账户ID，逗号分隔"
// @Param category_ids query string false "类别ID，逗号分隔"
// @Param types query string false "交易类型，逗号分隔，默认全部"
// @Success 200 {object} Response{data=aggregator.Summary} "获取成功"
// @Failure 400 {object} Response "参数错误"
// @Router /api/v1/reports/summary [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	_, period, txs, ok := h.filtered(c)
	if !ok {
		return
	}
	Success(c, gin.H{
		"period":  period,
		"summary": aggregator.Summarize(txs),
	})
}

// Monthly 按月收支
// @Summary 获取按月收支
// @Description 区间内每个自然月一条，没有交易的月份为 0，转账不计入
// @Tags 报表
// @Produce json
// @Param start_date query string false "开始日期 (2024-01-01)"
// @Param end_date query string false "结束日期 (2024-06-30)"
// @Param range query string false "预设范围"
// @Param account_ids query string false "账户ID，逗号分隔"
// @Param category_ids query string false "类别ID，逗号分隔"
// @Param types query string false "交易类型，逗号分隔"
// @Success 200 {object} Response{data=[]aggregator.MonthBucket} "获取成功"
// @Failure 400 {object} Response "参数错误"
// @Router /api/v1/reports/monthly [get]
func (h *ReportHandler) Monthly(c *gin.Context) {
	_, period, txs, ok := h.filtered(c)
	if !ok {
		return
	}
	Success(c, aggregator.MonthlyBuckets(txs, period))
}

// Categories 类别分布
// @Summary 获取类别分布
// @Description 按类别汇总金额并计算占比，金额从大到小排列
// @Tags 报表
// @Produce json
// @Param start_date query string false "开始日期"
// @Param end_date query string false "结束日期"
// @Param range query string false "预设范围"
// @Param account_ids query string false "账户ID，逗号分隔"
// @Param category_ids query string false "类别ID，逗号分隔"
// @Param types query string false "交易类型，逗号分隔"
// @Success 200 {object} Response{data=[]aggregator.CategoryShare} "获取成功"
// @Failure 400 {object} Response "参数错误"
// @Router /api/v1/reports/categories [get]
func (h *ReportHandler) Categories(c *gin.Context) {
	snap, _, txs, ok := h.filtered(c)
	if !ok {
		return
	}
	Success(c, aggregator.CategoryDistribution(txs, snap.Index()))
}

// BalanceEvolution 账户余额曲线
// @Summary 获取余额变化
// @Description 每 15 天一个采样点，余额按采样点之前的全部交易计算；account_ids 只限定返回的账户
// @Tags 报表
// @Produce json
// @Param start_date query string false "开始日期"
// @Param end_date query string false "结束日期"
// @Param range query string false "预设范围"
// @Param account_ids query string false "账户ID，逗号分隔"
// @Success 200 {object} Response{data=[]aggregator.AccountSeries} "获取成功"
// @Failure 400 {object} Response "参数错误"
// @Router /api/v1/reports/balance-evolution [get]
func (h *ReportHandler) BalanceEvolution(c *gin.Context) {
	snap := h.st.Snapshot()
	period, filter, err := reportQuery(c, h.st.Now())
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	accounts := snap.Accounts
	if len(filter.AccountIDs) > 0 {
		accounts = make([]models.Account, 0, len(filter.AccountIDs))
		for _, id := range filter.AccountIDs {
			if a, ok := snap.Index().Account(id); ok {
				accounts = append(accounts, a)
			}
		}
	}
	Success(c, aggregator.BalanceEvolution(accounts, snap.Transactions, period))
}
