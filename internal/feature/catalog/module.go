// Package catalog 运营商、套餐、顾问、职位；列表走 redis 读穿缓存
package catalog

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"telco-admin/internal/core/cache"
	"telco-admin/internal/domain"
	"telco-admin/internal/repo"
	httpez "telco-admin/internal/transport/http/ez"
)

type Module struct {
	db    *gorm.DB
	cache *cache.Cache
	log   *zap.Logger
}

// NewModule c 可为 nil（不缓存）
func NewModule(db *gorm.DB, c *cache.Cache, l *zap.Logger) *Module {
	return &Module{db: db, cache: c, log: l}
}

func (m *Module) Priority() int { return 30 }

func (m *Module) MountAPI(api *gin.RouterGroup) {
	ez := httpez.New(api, m.log)

	httpez.Crud[domain.Telco](httpez.CrudConfig[domain.Telco]{
		EZ:            ez,
		DB:            m.db,
		Path:          "/telcos",
		Resource:      "operador",
		SearchColumns: []string{"name"},
		OrderBy:       "name ASC",
		Cache:         m.cache,
		Hooks: httpez.CrudHooks[domain.Telco]{
			BeforeCreate: checkTelco,
			BeforeUpdate: checkTelco,
			BeforeDelete: func(c *gin.Context, tx *gorm.DB, id uint) error {
				return repo.BlockDelete(c, tx, "el operador", id,
					repo.Ref{Model: &domain.Plan{}, Column: "telco_id", Label: "planes"},
					repo.Ref{Model: &domain.Advisor{}, Column: "telco_id", Label: "asesores"},
				)
			},
		},
	})

	httpez.Crud[domain.Plan](httpez.CrudConfig[domain.Plan]{
		EZ:            ez,
		DB:            m.db,
		Path:          "/plans",
		Resource:      "plan",
		Preloads:      []string{"Telco"},
		SearchColumns: []string{"name", "description"},
		OrderBy:       "name ASC",
		Cache:         m.cache,
		Hooks: httpez.CrudHooks[domain.Plan]{
			BeforeCreate: checkPlan,
			BeforeUpdate: checkPlan,
			BeforeDelete: func(c *gin.Context, tx *gorm.DB, id uint) error {
				return repo.BlockDelete(c, tx, "el plan", id,
					repo.Ref{Model: &domain.Line{}, Column: "plan_id", Label: "líneas"},
				)
			},
			ScopeList: func(c *gin.Context, q *gorm.DB) *gorm.DB {
				if id := c.Query("telcoId"); id != "" {
					q = q.Where("telco_id = ?", id)
				}
				return q
			},
		},
	})

	httpez.Crud[domain.Advisor](httpez.CrudConfig[domain.Advisor]{
		EZ:            ez,
		DB:            m.db,
		Path:          "/advisors",
		Resource:      "asesor",
		Preloads:      []string{"Telco"},
		SearchColumns: []string{"full_name", "email"},
		OrderBy:       "full_name ASC",
		Cache:         m.cache,
		Hooks: httpez.CrudHooks[domain.Advisor]{
			BeforeCreate: checkAdvisor,
			BeforeUpdate: checkAdvisor,
			BeforeDelete: func(c *gin.Context, tx *gorm.DB, id uint) error {
				return repo.BlockDelete(c, tx, "el asesor", id,
					repo.Ref{Model: &domain.Company{}, Column: "sales_advisor_id", Label: "empresas (ventas)"},
					repo.Ref{Model: &domain.Company{}, Column: "post_sale_advisor_id", Label: "empresas (postventa)"},
				)
			},
			ScopeList: func(c *gin.Context, q *gorm.DB) *gorm.DB {
				if kind := c.Query("kind"); kind != "" {
					q = q.Where("kind = ?", kind)
				}
				if id := c.Query("telcoId"); id != "" {
					q = q.Where("telco_id = ?", id)
				}
				return q
			},
		},
	})

	httpez.Crud[domain.Position](httpez.CrudConfig[domain.Position]{
		EZ:            ez,
		DB:            m.db,
		Path:          "/positions",
		Resource:      "puesto",
		SearchColumns: []string{"name"},
		OrderBy:       "name ASC",
		Cache:         m.cache,
		Hooks: httpez.CrudHooks[domain.Position]{
			BeforeCreate: checkPosition,
			BeforeUpdate: checkPosition,
			BeforeDelete: func(c *gin.Context, tx *gorm.DB, id uint) error {
				return repo.BlockDelete(c, tx, "el puesto", id,
					repo.Ref{Model: &domain.Employee{}, Column: "position_id", Label: "empleados"},
				)
			},
		},
	})
}

func checkTelco(c *gin.Context, tx *gorm.DB, m *domain.Telco) error {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return domain.Invalid("el nombre del operador es obligatorio")
	}
	return repo.RequireUnique(c, tx, &domain.Telco{}, "name", m.Name, m.ID, "ya existe un operador llamado %s")
}

func checkPlan(c *gin.Context, tx *gorm.DB, m *domain.Plan) error {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return domain.Invalid("el nombre del plan es obligatorio")
	}
	return repo.RequireRef(c, tx, &domain.Telco{}, m.TelcoID, "el operador")
}

func checkAdvisor(c *gin.Context, tx *gorm.DB, m *domain.Advisor) error {
	m.FullName = strings.TrimSpace(m.FullName)
	if m.FullName == "" {
		return domain.Invalid("el nombre del asesor es obligatorio")
	}
	if m.Kind != domain.AdvisorSales && m.Kind != domain.AdvisorPostSale {
		return domain.Invalid("tipo de asesor inválido: %q", m.Kind)
	}
	return repo.RequireRef(c, tx, &domain.Telco{}, m.TelcoID, "el operador")
}

func checkPosition(c *gin.Context, tx *gorm.DB, m *domain.Position) error {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return domain.Invalid("el nombre del puesto es obligatorio")
	}
	return repo.RequireUnique(c, tx, &domain.Position{}, "name", m.Name, m.ID, "ya existe un puesto llamado %s")
}
