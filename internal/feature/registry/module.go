// Package registry 公司与法人代表（任期引用的主数据）
package registry

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

func NewModule(db *gorm.DB, l *zap.Logger) *Module {
	return &Module{db: db, log: l}
}

func (m *Module) Priority() int { return 20 }

func (m *Module) MountAPI(api *gin.RouterGroup) {
	ez := httpez.New(api, m.log)

	httpez.Crud[domain.Company](httpez.CrudConfig[domain.Company]{
		EZ:            ez,
		DB:            m.db,
		Path:          "/companies",
		Resource:      "empresa",
		Preloads:      []string{"SalesAdvisor", "PostSaleAdvisor"},
		SearchColumns: []string{"name", "tax_id"},
		OrderBy:       "name ASC",
		Hooks: httpez.CrudHooks[domain.Company]{
			BeforeCreate: checkCompany,
			BeforeUpdate: checkCompany,
			BeforeDelete: func(c *gin.Context, tx *gorm.DB, id uint) error {
				return repo.BlockDelete(c, tx, "la empresa", id,
					repo.Ref{Model: &domain.Employee{}, Column: "company_id", Label: "empleados"},
					repo.Ref{Model: &domain.Line{}, Column: "company_id", Label: "líneas"},
					repo.Ref{Model: &domain.RepresentationPeriod{}, Column: "company_id", Label: "períodos de representación"},
				)
			},
		},
	})

	httpez.Crud[domain.LegalRepresentative](httpez.CrudConfig[domain.LegalRepresentative]{
		EZ:            ez,
		DB:            m.db,
		Path:          "/legal-representatives",
		Resource:      "representante legal",
		SearchColumns: []string{"first_name", "last_name", "cui"},
		OrderBy:       "last_name ASC, first_name ASC",
		Hooks: httpez.CrudHooks[domain.LegalRepresentative]{
			BeforeCreate: checkRepresentative,
			BeforeUpdate: checkRepresentative,
			BeforeDelete: func(c *gin.Context, tx *gorm.DB, id uint) error {
				return repo.BlockDelete(c, tx, "el representante legal", id,
					repo.Ref{Model: &domain.RepresentationPeriod{}, Column: "legal_representative_id", Label: "períodos de representación"},
				)
			},
		},
	})
}

func checkCompany(c *gin.Context, tx *gorm.DB, m *domain.Company) error {
	m.Name = strings.TrimSpace(m.Name)
	m.TaxID = strings.ToUpper(strings.TrimSpace(m.TaxID))
	if m.Name == "" || m.TaxID == "" {
		return domain.Invalid("el nombre y el NIT de la empresa son obligatorios")
	}
	if err := repo.RequireUnique(c, tx, &domain.Company{}, "tax_id", m.TaxID, m.ID, "ya existe una empresa con el NIT %s"); err != nil {
		return err
	}
	m.SalesAdvisorID = repo.NilIfZero(m.SalesAdvisorID)
	m.PostSaleAdvisorID = repo.NilIfZero(m.PostSaleAdvisorID)
	if err := checkAdvisor(c, tx, m.SalesAdvisorID, domain.AdvisorSales, "el asesor de ventas"); err != nil {
		return err
	}
	return checkAdvisor(c, tx, m.PostSaleAdvisorID, domain.AdvisorPostSale, "el asesor de postventa")
}

// checkAdvisor 可空；存在时类型必须匹配
func checkAdvisor(c *gin.Context, tx *gorm.DB, id *uint, kind domain.AdvisorKind, label string) error {
	if id == nil || *id == 0 {
		return nil
	}
	var a domain.Advisor
	err := tx.WithContext(c).Select("id", "kind").Where("id = ?", *id).Limit(1).Find(&a).Error
	if err != nil {
		return fmt.Errorf("load advisor %d: %w", *id, err)
	}
	if a.ID == 0 {
		return domain.Invalid("%s %d no existe", label, *id)
	}
	if a.Kind != kind {
		return domain.Invalid("%s %d no es de tipo %s", label, *id, kind)
	}
	return nil
}

func checkRepresentative(c *gin.Context, tx *gorm.DB, m *domain.LegalRepresentative) error {
	m.FirstName = strings.TrimSpace(m.FirstName)
	m.LastName = strings.TrimSpace(m.LastName)
	m.CUI = strings.TrimSpace(m.CUI)
	if m.FirstName == "" || m.LastName == "" || m.CUI == "" {
		return domain.Invalid("nombre, apellido y CUI del representante son obligatorios")
	}
	return repo.RequireUnique(c, tx, &domain.LegalRepresentative{}, "cui", m.CUI, m.ID,
		"ya existe un representante legal con el CUI %s")
}
