package api

import (
	"ledgerboard/aggregator"
	"ledgerboard/models"
	"ledgerboard/store"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 收支类别管理
type CategoryHandler struct {
	st *store.Store
}

func NewCategoryHandler(st *store.Store) *CategoryHandler {
	return &CategoryHandler{st: st}
}

type CategoryRequest struct {
	Name     string              `json:"name" binding:"required,min=1,max=50"`
	Type     models.CategoryType `json:"type" binding:"required"`
	Color    string              `json:"color" binding:"omitempty,max=20"` // 颜色代码，如 #ef4444
	Icon     string              `json:"icon" binding:"omitempty,max=50"`
	ParentID *string             `json:"parent_id"`
}

func (r *CategoryRequest) toModel(id string) models.Category {
	return models.Category{
		ID:       id,
		Name:     r.Name,
		Type:     r.Type,
		Color:    r.Color,
		Icon:     r.Icon,
		ParentID: r.ParentID,
	}
}

// CategoryDetail 类别及其子类别
type CategoryDetail struct {
	models.Category
	Children []models.Category `json:"children"`
}

// List 类别列表
// @Summary 获取类别列表
// @Description 获取所有类别，可按收支类型筛选
// @Tags 类别
// @Produce json
// @Param type query string false "类别类型 income/expense"
// @Success 200 {object} Response{data=[]models.Category} "获取成功"
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	typ := models.CategoryType(c.Query("type"))
	snap := h.st.Snapshot()
	list := make([]models.Category, 0, len(snap.Categories))
	for _, cat := range snap.Categories {
		if typ == "" || cat.Type == typ {
			list = append(list, cat)
		}
	}
	Success(c, list)
}

// Get 类别详情，包含子类别
// @Summary 获取类别详情
// @Tags 类别
// @Produce json
// @Param id path string true "类别ID"
// @Success 200 {object} Response{data=CategoryDetail} "获取成功"
// @Failure 404 {object} Response "类别不存在"
// @Router /api/v1/categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	idx := h.st.Snapshot().Index()
	cat, ok := idx.Category(c.Param("id"))
	if !ok {
		NotFound(c, "类别不存在")
		return
	}
	Success(c, CategoryDetail{Category: cat, Children: idx.Children(cat.ID)})
}

// Create 创建类别
// @Summary 创建类别
// @Description 父类别必须是顶级类别
// @Tags 类别
// @Accept json
// @Produce json
// @Param request body CategoryRequest true "类别信息"
// @Success 200 {object} Response{data=models.Category} "创建成功"
// @Failure 400 {object} Response "参数错误"
// @Router /api/v1/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	cat, err := h.st.AddCategory(c.Request.Context(), req.toModel(""))
	if err != nil {
		respondError(c, err, "创建类别失败")
		return
	}
	SuccessWithMessage(c, "创建成功", cat)
}

// Update 更新类别
// @Summary 更新类别
// @Tags 类别
// @Accept json
// @Produce json
// @Param id path string true "类别ID"
// @Param request body CategoryRequest true "类别信息"
// @Success 200 {object} Response{data=models.Category} "更新成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 404 {object} Response "类别不存在"
// @Router /api/v1/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	cat, err := h.st.UpdateCategory(c.Request.Context(), req.toModel(c.Param("id")))
	if err != nil {
		respondError(c, err, "更新类别失败")
		return
	}
	SuccessWithMessage(c, "更新成功", cat)
}

// Delete 删除类别
// @Summary 删除类别
// @Tags 类别
// @Produce json
// @Param id path string true "类别ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "类别不存在"
// @Router /api/v1/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.st.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "删除类别失败")
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}

// Total 类别金额合计
// @Summary 获取类别合计
// @Description 不传日期时统计全部交易，结束日期包含当天
// @Tags 类别
// @Produce json
// @Param id path string true "类别ID"
// @Param start_date query string false "开始日期 (2024-01-01)"
// @Param end_date query string false "结束日期 (2024-01-31)"
// @Param range query string false "预设范围 this_month/last_month/this_week/this_year"
// @Success 200 {object} Response "获取成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 404 {object} Response "类别不存在"
// @Router /api/v1/categories/{id}/total [get]
func (h *CategoryHandler) Total(c *gin.Context) {
	snap := h.st.Snapshot()
	cat, ok := snap.Index().Category(c.Param("id"))
	if !ok {
		NotFound(c, "类别不存在")
		return
	}
	period, err := queryDateRange(c, h.st.Now())
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, gin.H{
		"category_id": cat.ID,
		"name":        cat.Name,
		"period":      period,
		"total":       aggregator.CategoryTotal(cat.ID, snap.Transactions, period),
	})
}
