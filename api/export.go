package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"ledgerboard/aggregator"
	"ledgerboard/models"
	"ledgerboard/store"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 导出处理器
type ExportHandler struct {
	st *store.Store
}

// NewExportHandler 创建导出处理器
func NewExportHandler(st *store.Store) *ExportHandler {
	return &ExportHandler{st: st}
}

var exportHeaders = []string{"ID", "日期", "类型", "账户", "目标账户", "类别", "描述", "金额", "标签"}

// exportRows 筛选后的交易，按日期倒序，已解析为展示用的列
func (h *ExportHandler) exportRows(c *gin.Context) (models.DateRange, []models.Transaction, [][]string, bool) {
	snap := h.st.Snapshot()
	period, filter, err := reportQuery(c, h.st.Now())
	if err != nil {
		BadRequest(c, err.Error())
		return models.DateRange{}, nil, nil, false
	}

	txs := aggregator.SortByDateDesc(aggregator.FilterTransactions(snap.Transactions, filter))
	idx := snap.Index()
	rows := make([][]string, 0, len(txs))
	for i := range txs {
		t := &txs[i]
		target := ""
		if id := t.Target(); id != "" {
			target = idx.AccountName(id)
		}
		rows = append(rows, []string{
			t.ID,
			t.Date.Format("2006-01-02 15:04:05"),
			string(t.Type),
			idx.AccountName(t.AccountID),
			target,
			idx.CategoryName(t.CategoryID),
			t.Description,
			aggregator.FormatMoney(t.Amount),
			strings.Join(t.Tags, ";"),
		})
	}
	return period, txs, rows, true
}

func exportFilename(prefix, ext string, period models.DateRange) string {
	return fmt.Sprintf("%s_%s_%s.%s", prefix, period.Start.Format(dateLayout), period.End.Format(dateLayout), ext)
}

// ExportCSV 导出交易记录为 CSV
// @Summary 导出交易记录
// @Description 按报表筛选条件导出交易记录为 CSV 文件，默认本月
// @Tags 导出
// @Produce text/csv
// @Param start_date query string false "开始日期 (2024-01-01)"
// @Param end_date query string false "结束日期 (2024-12-31)"
// @Param range query string false "预设范围"
// @Param account_ids query string false "账户ID，逗号分隔"
// @Param category_ids query string false "类别ID，逗号分隔"
// @Param types query string false "交易类型，逗号分隔"
// @Success 200 {file} file "CSV 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	period, _, rows, ok := h.exportRows(c)
	if !ok {
		return
	}

	buf := new(bytes.Buffer)
	// 添加 BOM 以支持 Excel 中文显示
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)
	if err := writer.Write(exportHeaders); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}
	if err := writer.WriteAll(rows); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}

	filename := exportFilename("transactions", "csv", period)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportJSON 导出交易记录为 JSON
// @Summary 导出交易记录为 JSON
// @Description 按报表筛选条件导出交易记录及汇总
// @Tags 导出
// @Produce json
// @Param start_date query string false "开始日期 (2024-01-01)"
// @Param end_date query string false "结束日期 (2024-12-31)"
// @Param range query string false "预设范围"
// @Param account_ids query string false "账户ID，逗号分隔"
// @Param category_ids query string false "类别ID，逗号分隔"
// @Param types query string false "交易类型，逗号分隔"
// @Success 200 {object} Response "导出成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/export/json [get]
func (h *ExportHandler) ExportJSON(c *gin.Context) {
	period, txs, _, ok := h.exportRows(c)
	if !ok {
		return
	}

	Success(c, gin.H{
		"start_date":   period.Start.Format(dateLayout),
		"end_date":     period.End.Format(dateLayout),
		"summary":      aggregator.Summarize(txs),
		"transactions": txs,
	})
}

// ExportExcel 导出 Excel
// @Summary 导出交易记录为 Excel
// @Description 按报表筛选条件导出交易记录为 Excel 文件，末行为收支合计
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param start_date query string false "开始日期 (YYYY-MM-DD)"
// @Param end_date query string false "结束日期 (YYYY-MM-DD)"
// @Param range query string false "预设范围"
// @Param account_ids query string false "账户ID，逗号分隔"
// @Param category_ids query string false "类别ID，逗号分隔"
// @Param types query string false "交易类型，逗号分隔"
// @Success 200 {file} file "Excel文件"
// @Failure 400 {object} Response "参数错误"
// @Router /api/v1/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	period, txs, rows, ok := h.exportRows(c)
	if !ok {
		return
	}

	f, err := buildWorkbook(txs, rows)
	if err != nil {
		InternalError(c, "生成 Excel 失败")
		return
	}
	defer f.Close()

	filename := exportFilename("交易记录", "xlsx", period)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "生成 Excel 失败")
		return
	}
}

const sheetName = "交易记录"

func cellBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
}

// buildWorkbook 写入表头、数据和合计行
func buildWorkbook(txs []models.Transaction, rows [][]string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		f.Close()
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    cellBorder(),
	})
	if err != nil {
		f.Close()
		return nil, err
	}
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    cellBorder(),
	})
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    cellBorder(),
	})

	widths := map[string]float64{"A": 30, "B": 20, "C": 10, "D": 18, "E": 18, "F": 16, "G": 30, "H": 14, "I": 20}
	for col, w := range widths {
		f.SetColWidth(sheetName, col, col, w)
	}

	last := string(rune('A' + len(exportHeaders) - 1))
	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}
	f.SetCellStyle(sheetName, "A1", last+"1", headerStyle)

	for i, row := range rows {
		r := i + 2
		for j, v := range row {
			cell := fmt.Sprintf("%c%d", 'A'+j, r)
			if j == 7 {
				// 金额列写数值，便于在表格中求和
				f.SetCellValue(sheetName, cell, txs[i].Amount.InexactFloat64())
				continue
			}
			f.SetCellValue(sheetName, cell, v)
		}
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", r), fmt.Sprintf("%s%d", last, r), dataStyle)
	}

	// 汇总行
	sum := aggregator.Summarize(txs)
	summaryRow := len(rows) + 2
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "合计")
	f.MergeCell(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("G%d", summaryRow))
	f.SetCellValue(sheetName, fmt.Sprintf("H%d", summaryRow), sum.Net.InexactFloat64())
	f.SetCellValue(sheetName, fmt.Sprintf("I%d", summaryRow), fmt.Sprintf("收入 %s / 支出 %s / 共 %d 条",
		aggregator.FormatMoney(sum.Income), aggregator.FormatMoney(sum.Expense), sum.Count))
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("%s%d", last, summaryRow), summaryStyle)

	return f, nil
}
