package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"telco-admin/internal/domain"
)

type LineRepo struct{ db *gorm.DB }

func NewLineRepo(db *gorm.DB) *LineRepo { return &LineRepo{db: db} }

// ListDetailed 导出用：带出公司、使用人、套餐及运营商；companyID 为 0 时不过滤
func (r *LineRepo) ListDetailed(ctx context.Context, companyID uint) ([]domain.Line, error) {
	q := r.db.WithContext(ctx).
		Preload("Company").
		Preload("Employee").
		Preload("Plan.Telco")
	if companyID != 0 {
		q = q.Where("company_id = ?", companyID)
	}
	out := make([]domain.Line, 0)
	if err := q.Order("company_id ASC").Order("number ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list lines: %w", err)
	}
	return out, nil
}
