package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ledgerboard/aggregator"
	"ledgerboard/models"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// splitList 解析逗号分隔的查询参数
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// queryTypes 未指定时包含全部三种交易类型
func queryTypes(c *gin.Context) ([]models.TransactionType, error) {
	raw := splitList(c.Query("types"))
	if len(raw) == 0 {
		return models.AllTransactionTypes(), nil
	}
	out := make([]models.TransactionType, 0, len(raw))
	for _, r := range raw {
		t := models.TransactionType(r)
		if !t.Valid() {
			return nil, fmt.Errorf("无效的交易类型: %s", r)
		}
		out = append(out, t)
	}
	return out, nil
}

// queryDateRange 优先读取 start_date/end_date，其次 range 预设，都没有时返回 nil
// 结束日期包含当天
func queryDateRange(c *gin.Context, now time.Time) (*models.DateRange, error) {
	startStr, endStr := c.Query("start_date"), c.Query("end_date")
	if startStr != "" || endStr != "" {
		if startStr == "" || endStr == "" {
			return nil, errors.New("请同时提供开始日期和结束日期")
		}
		start, err := time.ParseInLocation(dateLayout, startStr, now.Location())
		if err != nil {
			return nil, errors.New("开始日期格式错误，应为: 2006-01-02")
		}
		end, err := time.ParseInLocation(dateLayout, endStr, now.Location())
		if err != nil {
			return nil, errors.New("结束日期格式错误，应为: 2006-01-02")
		}
		r := models.DayRange(start, end)
		if err := r.Validate(); err != nil {
			return nil, err
		}
		return &r, nil
	}

	if name, ok := c.GetQuery("range"); ok {
		r, found := aggregator.PresetRange(name, now)
		if !found {
			return nil, fmt.Errorf("未知的时间范围: %s", name)
		}
		return &r, nil
	}
	return nil, nil
}

// reportQuery 报表的时间范围和筛选条件，未指定时间时默认本月
func reportQuery(c *gin.Context, now time.Time) (models.DateRange, aggregator.Filter, error) {
	r, err := queryDateRange(c, now)
	if err != nil {
		return models.DateRange{}, aggregator.Filter{}, err
	}
	if r == nil {
		month := aggregator.MonthWindow(now)
		r = &month
	}
	f, err := queryFilter(c, r)
	return *r, f, err
}

func queryFilter(c *gin.Context, r *models.DateRange) (aggregator.Filter, error) {
	types, err := queryTypes(c)
	if err != nil {
		return aggregator.Filter{}, err
	}
	return aggregator.Filter{
		DateRange:   r,
		AccountIDs:  splitList(c.Query("account_ids")),
		CategoryIDs: splitList(c.Query("category_ids")),
		Types:       types,
		Search:      c.Query("search"),
	}, nil
}

// queryPage 解析分页参数，page_size 最大 100
func queryPage(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
