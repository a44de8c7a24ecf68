// Package service 业务编排层：任期（法人代表 ↔ 公司）的生命周期与查询
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"telco-admin/internal/domain"
)

var periodOps = prometheus.NewCounterVec(
	prometheus.CounterOpts{Name: "representation_period_operations_total", Help: "Period mutations by outcome"},
	[]string{"op", "result"},
)

// RegisterMetrics 任期操作计数器注册到 reg，由 main 调用一次
func RegisterMetrics(reg prometheus.Registerer) error { return reg.Register(periodOps) }

func observe(op string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrOverlap),
		errors.Is(err, domain.ErrAlreadyEnded), errors.Is(err, domain.ErrNotFound):
		result = "rejected"
	default:
		result = "error"
	}
	periodOps.WithLabelValues(op, result).Inc()
}

// CreatePeriodInput POST /periods
type CreatePeriodInput struct {
	LegalRepresentativeID uint         `json:"legalRepresentativeId"`
	CompanyID             uint         `json:"companyId"`
	StartDate             *domain.Date `json:"startDate"`
	EndDate               *domain.Date `json:"endDate"`
	Notes                 string       `json:"notes"`
}

// EndPeriodInput PUT /periods/:id/end
type EndPeriodInput struct {
	EndDate *domain.Date `json:"endDate"`
	Notes   string       `json:"notes"`
}

// UpdatePeriodInput PUT /periods/:id（未传的字段保持不变；endDate 传 null 表示重新开放）
type UpdatePeriodInput struct {
	StartDate *domain.Date        `json:"startDate"`
	EndDate   domain.OptionalDate `json:"endDate"`
	Notes     *string             `json:"notes"`
}

type PeriodService struct {
	repo domain.PeriodRepository
	log  *zap.Logger
}

func NewPeriodService(repo domain.PeriodRepository, l *zap.Logger) *PeriodService {
	return &PeriodService{repo: repo, log: l.Named("period_service")}
}

// Create 校验并新建任期；代表人行锁保证「校验 + 写入」原子
func (s *PeriodService) Create(ctx context.Context, in CreatePeriodInput) (*domain.RepresentationPeriod, error) {
	p, err := s.create(ctx, in)
	observe("create", err)
	if err != nil {
		return nil, err
	}
	s.log.Info("period created",
		zap.Uint("id", p.ID),
		zap.Uint("representative_id", p.LegalRepresentativeID),
		zap.Uint("company_id", p.CompanyID),
		zap.Stringer("start", p.StartDate),
	)
	return s.repo.FindDetailed(ctx, p.ID)
}

func (s *PeriodService) create(ctx context.Context, in CreatePeriodInput) (*domain.RepresentationPeriod, error) {
	if in.LegalRepresentativeID == 0 {
		return nil, domain.Invalid("el representante legal es obligatorio")
	}
	if in.CompanyID == 0 {
		return nil, domain.Invalid("la empresa es obligatoria")
	}
	if in.StartDate == nil || in.StartDate.IsZero() {
		return nil, domain.Invalid("la fecha de inicio es obligatoria")
	}

	p := &domain.RepresentationPeriod{
		LegalRepresentativeID: in.LegalRepresentativeID,
		CompanyID:             in.CompanyID,
		StartDate:             *in.StartDate,
		EndDate:               cloneDate(in.EndDate),
		Notes:                 strings.TrimSpace(in.Notes),
	}
	err := s.repo.WithTx(ctx, func(tx domain.PeriodRepository) error {
		ok, err := tx.LockRepresentative(ctx, p.LegalRepresentativeID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.Invalid("el representante legal %d no existe", p.LegalRepresentativeID)
		}
		ok, err = tx.CompanyExists(ctx, p.CompanyID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.Invalid("la empresa %d no existe", p.CompanyID)
		}
		siblings, err := tx.ListByPair(ctx, p.LegalRepresentativeID, p.CompanyID)
		if err != nil {
			return err
		}
		if err := ValidateNewPeriod(*p, siblings); err != nil {
			return err
		}
		return tx.Save(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// End 结束一个在任的任期
func (s *PeriodService) End(ctx context.Context, id uint, in EndPeriodInput) (*domain.RepresentationPeriod, error) {
	err := s.end(ctx, id, in)
	observe("end", err)
	if err != nil {
		return nil, err
	}
	s.log.Info("period ended", zap.Uint("id", id), zap.Stringer("end", *in.EndDate))
	return s.repo.FindDetailed(ctx, id)
}

func (s *PeriodService) end(ctx context.Context, id uint, in EndPeriodInput) error {
	if in.EndDate == nil || in.EndDate.IsZero() {
		return domain.Invalid("la fecha de fin es obligatoria")
	}
	return s.repo.WithTx(ctx, func(tx domain.PeriodRepository) error {
		p, err := lockPeriod(ctx, tx, id)
		if err != nil {
			return err
		}
		if !p.Open() {
			return &domain.AlreadyEndedError{ID: p.ID}
		}
		if !in.EndDate.After(p.StartDate) {
			return domain.Invalid("la fecha de fin debe ser posterior a la fecha de inicio")
		}
		p.EndDate = cloneDate(in.EndDate)
		p.Notes = appendNotes(p.Notes, in.Notes)
		return tx.Save(ctx, p)
	})
}

// Update 部分更新；日期变化时对同组其他任期重新做重叠校验
func (s *PeriodService) Update(ctx context.Context, id uint, in UpdatePeriodInput) (*domain.RepresentationPeriod, error) {
	err := s.update(ctx, id, in)
	observe("update", err)
	if err != nil {
		return nil, err
	}
	s.log.Info("period updated", zap.Uint("id", id))
	return s.repo.FindDetailed(ctx, id)
}

func (s *PeriodService) update(ctx context.Context, id uint, in UpdatePeriodInput) error {
	return s.repo.WithTx(ctx, func(tx domain.PeriodRepository) error {
		p, err := lockPeriod(ctx, tx, id)
		if err != nil {
			return err
		}

		datesChanged := false
		if in.StartDate != nil {
			if in.StartDate.IsZero() {
				return domain.Invalid("la fecha de inicio es obligatoria")
			}
			if !in.StartDate.Equal(p.StartDate) {
				p.StartDate = *in.StartDate
				datesChanged = true
			}
		}
		if in.EndDate.Set && !sameDate(in.EndDate.Date, p.EndDate) {
			p.EndDate = cloneDate(in.EndDate.Date)
			datesChanged = true
		}
		if in.Notes != nil {
			p.Notes = strings.TrimSpace(*in.Notes)
		}

		if datesChanged {
			siblings, err := tx.ListByPair(ctx, p.LegalRepresentativeID, p.CompanyID)
			if err != nil {
				return err
			}
			if err := ValidateNewPeriod(*p, siblings); err != nil {
				return err
			}
		}
		return tx.Save(ctx, p)
	})
}

// Delete 直接删除，不影响其他任期
func (s *PeriodService) Delete(ctx context.Context, id uint) error {
	err := s.repo.Delete(ctx, id)
	observe("delete", err)
	if err != nil {
		return err
	}
	s.log.Info("period deleted", zap.Uint("id", id))
	return nil
}

func (s *PeriodService) Get(ctx context.Context, id uint) (*domain.RepresentationPeriod, error) {
	return s.repo.FindDetailed(ctx, id)
}

func (s *PeriodService) List(ctx context.Context, f domain.PeriodFilter) ([]domain.RepresentationPeriod, error) {
	return s.repo.List(ctx, f)
}

// ActiveForCompany 公司当前在任的代表人
func (s *PeriodService) ActiveForCompany(ctx context.Context, companyID uint) ([]domain.RepresentationPeriod, error) {
	active := true
	return s.repo.List(ctx, domain.PeriodFilter{CompanyID: companyID, Active: &active})
}

// HistoryForCompany 公司全部任期，按开始日期倒序
func (s *PeriodService) HistoryForCompany(ctx context.Context, companyID uint) ([]domain.RepresentationPeriod, error) {
	return s.repo.List(ctx, domain.PeriodFilter{CompanyID: companyID})
}

// ActiveForRepresentative 代表人当前在任的公司
func (s *PeriodService) ActiveForRepresentative(ctx context.Context, representativeID uint) ([]domain.RepresentationPeriod, error) {
	active := true
	return s.repo.List(ctx, domain.PeriodFilter{LegalRepresentativeID: representativeID, Active: &active})
}

// lockPeriod 先读任期拿到代表人，锁代表人行后再重读一次
func lockPeriod(ctx context.Context, tx domain.PeriodRepository, id uint) (*domain.RepresentationPeriod, error) {
	p, err := tx.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := tx.LockRepresentative(ctx, p.LegalRepresentativeID); err != nil {
		return nil, err
	}
	return tx.FindByID(ctx, id)
}

func cloneDate(d *domain.Date) *domain.Date {
	if d == nil || d.IsZero() {
		return nil
	}
	c := *d
	return &c
}

func sameDate(a, b *domain.Date) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func appendNotes(existing, extra string) string {
	extra = strings.TrimSpace(extra)
	switch {
	case extra == "":
		return existing
	case existing == "":
		return extra
	default:
		return existing + "\n" + extra
	}
}
