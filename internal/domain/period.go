package domain

import (
	"context"

	"gorm.io/gorm"
)

// RepresentationPeriod 法人代表在某公司任职的一段时间
// EndDate 为空表示仍在任（IsActive 由 EndDate 推导，不接受外部写入）
type RepresentationPeriod struct {
	Model
	LegalRepresentativeID uint                 `gorm:"not null;index:idx_period_pair,priority:1" json:"legalRepresentativeId"`
	LegalRepresentative   *LegalRepresentative `json:"legalRepresentative,omitempty"`
	CompanyID             uint                 `gorm:"not null;index:idx_period_pair,priority:2;index:idx_period_company_active,priority:1" json:"companyId"`
	Company               *Company             `json:"company,omitempty"`
	StartDate             Date                 `gorm:"not null" json:"startDate"`
	EndDate               *Date                `json:"endDate"`
	IsActive              bool                 `gorm:"not null;index:idx_period_company_active,priority:2" json:"isActive"`
	Notes                 string               `gorm:"type:text" json:"notes"`
}

func (RepresentationPeriod) TableName() string { return "representation_periods" }

// BeforeSave 每条写路径都重新计算 IsActive
func (p *RepresentationPeriod) BeforeSave(*gorm.DB) error {
	p.IsActive = p.EndDate == nil
	return nil
}

// Open 是否仍在任
func (p RepresentationPeriod) Open() bool { return p.EndDate == nil }

// PeriodFilter 列表筛选条件（零值表示不过滤）
type PeriodFilter struct {
	LegalRepresentativeID uint
	CompanyID             uint
	Active                *bool
}

// PeriodRepository 任期存储
type PeriodRepository interface {
	// WithTx 在同一事务内执行 fn
	WithTx(ctx context.Context, fn func(tx PeriodRepository) error) error
	// LockRepresentative 行锁住代表人记录，返回是否存在
	LockRepresentative(ctx context.Context, id uint) (bool, error)
	CompanyExists(ctx context.Context, id uint) (bool, error)

	FindByID(ctx context.Context, id uint) (*RepresentationPeriod, error)
	FindDetailed(ctx context.Context, id uint) (*RepresentationPeriod, error)
	ListByPair(ctx context.Context, representativeID, companyID uint) ([]RepresentationPeriod, error)
	List(ctx context.Context, f PeriodFilter) ([]RepresentationPeriod, error)

	Save(ctx context.Context, p *RepresentationPeriod) error
	Delete(ctx context.Context, id uint) error
}
