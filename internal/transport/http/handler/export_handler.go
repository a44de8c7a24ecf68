package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"telco-admin/internal/domain"
	"telco-admin/internal/export"
	"telco-admin/internal/service"
	httpez "telco-admin/internal/transport/http/ez"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// LineLister 导出线路所需的读取接口
type LineLister interface {
	ListDetailed(ctx context.Context, companyID uint) ([]domain.Line, error)
}

// ExportModule 挂在 /admin/v1/exports
type ExportModule struct {
	periods *service.PeriodService
	lines   LineLister
	log     *zap.Logger
}

func NewExportModule(periods *service.PeriodService, lines LineLister, l *zap.Logger) *ExportModule {
	return &ExportModule{periods: periods, lines: lines, log: l}
}

func (m *ExportModule) MountAdmin(admin *gin.RouterGroup) {
	g := admin.Group("/exports")

	g.GET("/periods.xlsx", func(c *gin.Context) {
		companyID, err := optionalID(c, "companyId")
		if err != nil {
			httpez.Fail(c, m.log, err)
			return
		}
		periods, err := m.periods.List(c, domain.PeriodFilter{CompanyID: companyID})
		if err != nil {
			httpez.Fail(c, m.log, err)
			return
		}
		m.send(c, "periodos", export.PeriodSheet(periods))
	})

	g.GET("/lines.xlsx", func(c *gin.Context) {
		companyID, err := optionalID(c, "companyId")
		if err != nil {
			httpez.Fail(c, m.log, err)
			return
		}
		lines, err := m.lines.ListDetailed(c, companyID)
		if err != nil {
			httpez.Fail(c, m.log, err)
			return
		}
		m.send(c, "lineas", export.LineSheet(lines))
	})
}

func (m *ExportModule) send(c *gin.Context, prefix string, sheet export.Sheet) {
	f, err := export.Build(sheet)
	if err != nil {
		httpez.Fail(c, m.log, fmt.Errorf("build %s workbook: %w", prefix, err))
		return
	}
	defer func(f *excelize.File) { _ = f.Close() }(f)

	name := fmt.Sprintf("%s_%s.xlsx", prefix, time.Now().Format("2006-01-02"))
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		m.log.Error("write workbook failed", zap.String("file", name), zap.Error(err))
		return
	}
	m.log.Info("workbook exported", zap.String("file", name), zap.Int("rows", len(sheet.Rows)))
}

// optionalID 查询参数可省略（0 = 不过滤）
func optionalID(c *gin.Context, name string) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, httpez.BadRequest(name + " inválido: " + raw)
	}
	return uint(v), nil
}
