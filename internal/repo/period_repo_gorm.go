package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"telco-admin/internal/domain"
)

type PeriodRepo struct{ db *gorm.DB }

func NewPeriodRepo(db *gorm.DB) *PeriodRepo { return &PeriodRepo{db: db} }

var _ domain.PeriodRepository = (*PeriodRepo)(nil)

func (r *PeriodRepo) WithTx(ctx context.Context, fn func(tx domain.PeriodRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PeriodRepo{db: tx})
	})
}

// LockRepresentative 对代表人行加 FOR UPDATE（SQLite 方言会忽略该子句，其本身串行写）
func (r *PeriodRepo) LockRepresentative(ctx context.Context, id uint) (bool, error) {
	var rep domain.LegalRepresentative
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&rep, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lock representative %d: %w", id, err)
	}
	return true, nil
}

func (r *PeriodRepo) CompanyExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Company{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check company %d: %w", id, err)
	}
	return count > 0, nil
}

func (r *PeriodRepo) FindByID(ctx context.Context, id uint) (*domain.RepresentationPeriod, error) {
	var p domain.RepresentationPeriod
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("período", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find period %d: %w", id, err)
	}
	return &p, nil
}

// FindDetailed 带出代表人和公司
func (r *PeriodRepo) FindDetailed(ctx context.Context, id uint) (*domain.RepresentationPeriod, error) {
	var p domain.RepresentationPeriod
	err := r.detailed(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("período", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find period %d: %w", id, err)
	}
	return &p, nil
}

func (r *PeriodRepo) ListByPair(ctx context.Context, representativeID, companyID uint) ([]domain.RepresentationPeriod, error) {
	var out []domain.RepresentationPeriod
	err := r.db.WithContext(ctx).
		Where("legal_representative_id = ? AND company_id = ?", representativeID, companyID).
		Order("start_date ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list periods of pair (%d,%d): %w", representativeID, companyID, err)
	}
	return out, nil
}

func (r *PeriodRepo) List(ctx context.Context, f domain.PeriodFilter) ([]domain.RepresentationPeriod, error) {
	q := r.detailed(ctx)
	if f.LegalRepresentativeID != 0 {
		q = q.Where("legal_representative_id = ?", f.LegalRepresentativeID)
	}
	if f.CompanyID != 0 {
		q = q.Where("company_id = ?", f.CompanyID)
	}
	if f.Active != nil {
		q = q.Where("is_active = ?", *f.Active)
	}
	out := make([]domain.RepresentationPeriod, 0)
	if err := q.Order("start_date DESC").Order("id DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}
	return out, nil
}

// Save 关联对象不随任期写入
func (r *PeriodRepo) Save(ctx context.Context, p *domain.RepresentationPeriod) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error; err != nil {
		return fmt.Errorf("save period: %w", err)
	}
	return nil
}

func (r *PeriodRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.RepresentationPeriod{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete period %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("período", id)
	}
	return nil
}

func (r *PeriodRepo) detailed(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("LegalRepresentative").Preload("Company")
}
