package api

import (
	"ledgerboard/aggregator"
	"ledgerboard/store"

	"github.com/gin-gonic/gin"
)

// DashboardHandler 首页概览
type DashboardHandler struct {
	st *store.Store
}

func NewDashboardHandler(st *store.Store) *DashboardHandler {
	return &DashboardHandler{st: st}
}

// Get 首页概览
// @Summary 获取首页概览
// @Description 总余额、各账户余额、本月收支和最近 5 笔交易
// @Tags 首页
// @Produce json
// @Success 200 {object} Response{data=aggregator.Dashboard} "获取成功"
// @Router /api/v1/dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	Success(c, aggregator.BuildDashboard(h.st.Snapshot(), h.st.Now()))
}
