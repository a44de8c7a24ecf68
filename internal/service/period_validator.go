package service

import "telco-admin/internal/domain"

// ValidateNewPeriod 判断候选任期能否写入
//
// existing 为同一 (代表人, 公司) 的已有任期；编辑时候选自身（相同 ID）会被跳过。
// 区间两端均为闭区间，未结束的任期视为延伸到无穷远：
// 候选开始日等于已有任期结束日即算重叠，次日开始则不算。
func ValidateNewPeriod(candidate domain.RepresentationPeriod, existing []domain.RepresentationPeriod) error {
	if candidate.StartDate.IsZero() {
		return domain.Invalid("la fecha de inicio es obligatoria")
	}
	if candidate.EndDate != nil && !candidate.EndDate.After(candidate.StartDate) {
		return domain.Invalid("la fecha de fin debe ser posterior a la fecha de inicio")
	}
	for _, p := range existing {
		if candidate.ID != 0 && p.ID == candidate.ID {
			continue
		}
		if p.LegalRepresentativeID != candidate.LegalRepresentativeID || p.CompanyID != candidate.CompanyID {
			continue
		}
		if overlaps(candidate, p) {
			return &domain.OverlapError{Conflict: p}
		}
	}
	return nil
}

// overlaps a.start <= b.end && a.end >= b.start（nil 结束日 = +∞）
func overlaps(a, b domain.RepresentationPeriod) bool {
	if b.EndDate != nil && a.StartDate.After(*b.EndDate) {
		return false
	}
	if a.EndDate != nil && a.EndDate.Before(b.StartDate) {
		return false
	}
	return true
}
