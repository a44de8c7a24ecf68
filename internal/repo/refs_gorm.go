package repo

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"telco-admin/internal/domain"
)

// Exists 按主键判断记录是否存在（model 传指针，如 &domain.Company{}）
func Exists(ctx context.Context, db *gorm.DB, model any, id uint) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}
	return count > 0, nil
}

// CountRefs 统计 model 表中 column = id 的行数（删除前检查引用）
func CountRefs(ctx context.Context, db *gorm.DB, model any, column string, id uint) (int64, error) {
	var count int64
	if err := db.WithContext(ctx).Model(model).Where(column+" = ?", id).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count refs on %s: %w", column, err)
	}
	return count, nil
}

// RequireRef 外键存在性校验，不存在时返回 ValidationError
func RequireRef(ctx context.Context, db *gorm.DB, model any, id uint, label string) error {
	if id == 0 {
		return domain.Invalid("%s es obligatorio", label)
	}
	ok, err := Exists(ctx, db, model, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.Invalid("%s %d no existe", label, id)
	}
	return nil
}

// RequireOptionalRef 可空外键：nil 直接通过
func RequireOptionalRef(ctx context.Context, db *gorm.DB, model any, id *uint, label string) error {
	if id == nil || *id == 0 {
		return nil
	}
	return RequireRef(ctx, db, model, *id, label)
}

// Ref 删除前需要检查的引用：model 表中 column = id 的行
type Ref struct {
	Model  any
	Column string
	Label  string // 复数名词，例 "empleados"
}

// BlockDelete 存在任一引用时拒绝删除
func BlockDelete(ctx context.Context, db *gorm.DB, what string, id uint, refs ...Ref) error {
	var found []string
	for _, r := range refs {
		n, err := CountRefs(ctx, db, r.Model, r.Column, id)
		if err != nil {
			return err
		}
		if n > 0 {
			found = append(found, fmt.Sprintf("%d %s", n, r.Label))
		}
	}
	if len(found) == 0 {
		return nil
	}
	return domain.Invalid("no se puede eliminar %s %d: tiene %s asociados", what, id, strings.Join(found, ", "))
}

// RequireUnique column = value 不能被除 selfID 以外的行占用
func RequireUnique(ctx context.Context, db *gorm.DB, model any, column, value string, selfID uint, msg string) error {
	var count int64
	q := db.WithContext(ctx).Model(model).Where(column+" = ?", value)
	if selfID != 0 {
		q = q.Where("id <> ?", selfID)
	}
	if err := q.Count(&count).Error; err != nil {
		return fmt.Errorf("unique check on %s: %w", column, err)
	}
	if count > 0 {
		return domain.Invalid(msg, value)
	}
	return nil
}

// NilIfZero 可空外键传 0 视为未设置
func NilIfZero(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	return id
}
