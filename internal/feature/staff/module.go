// Package staff 公司员工
package staff

import (
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
	httpez.Crud[domain.Employee](httpez.CrudConfig[domain.Employee]{
		EZ:            httpez.New(api, m.log),
		DB:            m.db,
		Path:          "/employees",
		Resource:      "empleado",
		Preloads:      []string{"Company", "Position"},
		SearchColumns: []string{"first_name", "last_name", "cui", "email"},
		OrderBy:       "last_name ASC, first_name ASC",
		Hooks: httpez.CrudHooks[domain.Employee]{
			BeforeCreate: checkEmployee,
			BeforeUpdate: checkEmployee,
			BeforeDelete: func(c *gin.Context, tx *gorm.DB, id uint) error {
				return repo.BlockDelete(c, tx, "el empleado", id,
					repo.Ref{Model: &domain.Line{}, Column: "employee_id", Label: "líneas"},
				)
			},
			ScopeList: func(c *gin.Context, q *gorm.DB) *gorm.DB {
				if id := c.Query("companyId"); id != "" {
					q = q.Where("company_id = ?", id)
				}
				if id := c.Query("positionId"); id != "" {
					q = q.Where("position_id = ?", id)
				}
				return q
			},
		},
	})
}

func checkEmployee(c *gin.Context, tx *gorm.DB, m *domain.Employee) error {
	m.FirstName = strings.TrimSpace(m.FirstName)
	m.LastName = strings.TrimSpace(m.LastName)
	m.CUI = strings.TrimSpace(m.CUI)
	if m.FirstName == "" || m.LastName == "" {
		return domain.Invalid("nombre y apellido del empleado son obligatorios")
	}
	if err := repo.RequireRef(c, tx, &domain.Company{}, m.CompanyID, "la empresa"); err != nil {
		return err
	}
	m.PositionID = repo.NilIfZero(m.PositionID)
	return repo.RequireOptionalRef(c, tx, &domain.Position{}, m.PositionID, "el puesto")
}
