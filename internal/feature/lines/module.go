// Package lines 电话线路
package lines

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"telco-admin/internal/domain"
	"telco-admin/internal/repo"
	httpez "telco-admin/internal/transport/http/ez"
)

type Module struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewModule(db *gorm.DB, l *zap.Logger) *Module { return &Module{db: db, log: l} }

func (m *Module) MountAPI(api *gin.RouterGroup) {
	httpez.Crud[domain.Line](httpez.CrudConfig[domain.Line]{
		EZ:            httpez.New(api, m.log),
		DB:            m.db,
		Path:          "/lines",
		Resource:      "línea",
		Preloads:      []string{"Company", "Employee", "Plan", "Plan.Telco"},
		SearchColumns: []string{"number", "notes"},
		OrderBy:       "number ASC",
		Hooks: httpez.CrudHooks[domain.Line]{
			BeforeCreate: checkLine,
			BeforeUpdate: checkLine,
			ScopeList: func(c *gin.Context, q *gorm.DB) *gorm.DB {
				if id := c.Query("companyId"); id != "" {
					q = q.Where("company_id = ?", id)
				}
				if id := c.Query("employeeId"); id != "" {
					q = q.Where("employee_id = ?", id)
				}
				if st := c.Query("status"); st != "" {
					q = q.Where("status = ?", st)
				}
				return q
			},
		},
	})
}

// NormalizeNumber 去掉空格、横线与括号，保留前导 +
func NormalizeNumber(s string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(s) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func checkLine(c *gin.Context, tx *gorm.DB, m *domain.Line) error {
	m.Number = NormalizeNumber(m.Number)
	if len(strings.TrimPrefix(m.Number, "+")) < 8 {
		return domain.Invalid("número de línea inválido")
	}
	if m.Status == "" {
		m.Status = domain.LineActive
	}
	if err := repo.RequireUnique(c, tx, &domain.Line{}, "number", m.Number, m.ID, "ya existe una línea con el número %s"); err != nil {
		return err
	}
	if err := repo.RequireRef(c, tx, &domain.Company{}, m.CompanyID, "la empresa"); err != nil {
		return err
	}
	if err := repo.RequireRef(c, tx, &domain.Plan{}, m.PlanID, "el plan"); err != nil {
		return err
	}
	if m.EmployeeID == nil || *m.EmployeeID == 0 {
		m.EmployeeID = nil
		return nil
	}
	// 使用人必须属于同一家公司
	var e domain.Employee
	if err := tx.WithContext(c).Select("id", "company_id").Where("id = ?", *m.EmployeeID).Limit(1).Find(&e).Error; err != nil {
		return fmt.Errorf("load employee %d: %w", *m.EmployeeID, err)
	}
	if e.ID == 0 {
		return domain.Invalid("el empleado %d no existe", *m.EmployeeID)
	}
	if e.CompanyID != m.CompanyID {
		return domain.Invalid("el empleado %d no pertenece a la empresa %d", e.ID, m.CompanyID)
	}
	return nil
}
