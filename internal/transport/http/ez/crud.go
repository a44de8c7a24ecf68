package ez

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"telco-admin/internal/core/cache"
	"telco-admin/internal/domain"
	resp "telco-admin/internal/transport/http/response"
)

// Entity 带自增主键的模型（domain.Model 已实现）
type Entity[T any] interface {
	*T
	GetID() uint
	SetID(uint)
	ClearMeta()
}

// CrudHooks 写操作的钩子都在事务内执行
type CrudHooks[T any] struct {
	BeforeCreate func(c *gin.Context, tx *gorm.DB, m *T) error
	BeforeUpdate func(c *gin.Context, tx *gorm.DB, m *T) error
	BeforeDelete func(c *gin.Context, tx *gorm.DB, id uint) error
	ScopeList    func(c *gin.Context, q *gorm.DB) *gorm.DB // 自定义筛选
}

type CrudConfig[T any] struct {
	EZ       EZ
	DB       *gorm.DB
	Path     string // 例 "/companies"
	Resource string // 404 文案里的资源名，例 "empresa"
	New      func() *T

	Hooks CrudHooks[T]

	AllowCreate bool
	AllowList   bool
	AllowGet    bool
	AllowUpdate bool
	AllowDelete bool

	Preloads      []string // 读接口带出的关联
	SearchColumns []string // ?q= 模糊匹配的列
	OrderBy       string   // 为空按 id DESC

	Cache *cache.Cache // 列表缓存（可空）
}

func (cfg *CrudConfig[T]) preloaded(q *gorm.DB) *gorm.DB {
	for _, p := range cfg.Preloads {
		q = q.Preload(p)
	}
	return q
}

// cachePrefix 列表缓存键前缀，分隔符不能是 glob 元字符（SCAN MATCH 会当通配符）
func (cfg *CrudConfig[T]) cachePrefix() string { return "crud:" + cfg.Path + "|" }

func (cfg *CrudConfig[T]) invalidate(c *gin.Context) {
	if err := cfg.Cache.InvalidatePrefix(c, cfg.cachePrefix()); err != nil {
		cfg.EZ.log.Warn("cache invalidate failed", zap.String("path", cfg.Path), zap.Error(err))
	}
}

// Crud 注册 POST/GET/GET :id/PUT :id/DELETE :id
func Crud[T any, PT Entity[T]](cfg CrudConfig[T]) {
	// 默认放开所有操作
	if !cfg.AllowCreate && !cfg.AllowGet && !cfg.AllowList && !cfg.AllowUpdate && !cfg.AllowDelete {
		cfg.AllowCreate, cfg.AllowList, cfg.AllowGet, cfg.AllowUpdate, cfg.AllowDelete = true, true, true, true, true
	}
	if cfg.New == nil {
		cfg.New = func() *T { return new(T) }
	}
	if cfg.Resource == "" {
		cfg.Resource = strings.TrimPrefix(cfg.Path, "/")
	}
	g := cfg.EZ.g

	load := func(ctx context.Context, id uint) (*T, error) {
		m := cfg.New()
		err := cfg.preloaded(cfg.DB.WithContext(ctx)).First(m, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound(cfg.Resource, id)
		}
		if err != nil {
			return nil, fmt.Errorf("get %s %d: %w", cfg.Resource, id, err)
		}
		return m, nil
	}

	// Create
	if cfg.AllowCreate {
		g.POST(cfg.Path, func(c *gin.Context) {
			m := cfg.New()
			if err := c.ShouldBindJSON(m); err != nil {
				Fail(c, cfg.EZ.log, BadRequest(bindMessage(err)))
				return
			}
			PT(m).ClearMeta()
			err := cfg.DB.WithContext(c).Transaction(func(tx *gorm.DB) error {
				if cfg.Hooks.BeforeCreate != nil {
					if err := cfg.Hooks.BeforeCreate(c, tx, m); err != nil {
						return err
					}
				}
				if err := tx.Omit(clause.Associations).Create(m).Error; err != nil {
					return fmt.Errorf("create %s: %w", cfg.Resource, err)
				}
				return nil
			})
			if err != nil {
				Fail(c, cfg.EZ.log, err)
				return
			}
			cfg.invalidate(c)
			out, err := load(c, PT(m).GetID())
			if err != nil {
				Fail(c, cfg.EZ.log, err)
				return
			}
			c.JSON(http.StatusCreated, out)
		})
	}

	// List
	if cfg.AllowList {
		g.GET(cfg.Path, func(c *gin.Context) {
			page := atoiDefault(c.Query("page"), 1)
			size := atoiDefault(c.Query("size"), 20)
			if size > 100 {
				size = 100
			}
			query := c.Request.URL.Query()
			query.Set("page", fmt.Sprint(page))
			query.Set("size", fmt.Sprint(size))
			key := cfg.cachePrefix() + query.Encode()

			out, err := cache.GetOrLoadJSON(cfg.Cache, c, key, 0, func(ctx context.Context) (*resp.Page[T], error) {
				p, err := cfg.list(c, ctx, page, size)
				if err != nil {
					return nil, err
				}
				return &p, nil
			})
			if err != nil {
				Fail(c, cfg.EZ.log, err)
				return
			}
			c.JSON(http.StatusOK, out)
		})
	}

	// Get
	if cfg.AllowGet {
		g.GET(cfg.Path+"/:id", func(c *gin.Context) {
			id, err := ParseID(c, "id")
			if err != nil {
				Fail(c, cfg.EZ.log, err)
				return
			}
			m, err := load(c, id)
			if err != nil {
				Fail(c, cfg.EZ.log, err)
				return
			}
			c.JSON(http.StatusOK, m)
		})
	}

	// Update（整体替换；id 与 createdAt 不可改）
	if cfg.AllowUpdate {
		g.PUT(cfg.Path+"/:id", func(c *gin.Context) {
			id, err := ParseID(c, "id")
			if err != nil {
				Fail(c, cfg.EZ.log, err)
				return
			}
			in := cfg.New()
			if err := c.ShouldBindJSON(in); err != nil {
				Fail(c, cfg.EZ.log, BadRequest(bindMessage(err)))
				return
			}
			PT(in).ClearMeta()
			PT(in).SetID(id)

			err = cfg.DB.WithContext(c).Transaction(func(tx *gorm.DB) error {
				var count int64
				if err := tx.Model(cfg.New()).Where("id = ?", id).Count(&count).Error; err != nil {
					return fmt.Errorf("check %s %d: %w", cfg.Resource, id, err)
				}
				if count == 0 {
					return domain.NotFound(cfg.Resource, id)
				}
				if cfg.Hooks.BeforeUpdate != nil {
					if err := cfg.Hooks.BeforeUpdate(c, tx, in); err != nil {
						return err
					}
				}
				if err := tx.Omit(clause.Associations, "CreatedAt").Save(in).Error; err != nil {
					return fmt.Errorf("update %s %d: %w", cfg.Resource, id, err)
				}
				return nil
			})
			if err != nil {
				Fail(c, cfg.EZ.log, err)
				return
			}
			cfg.invalidate(c)
			out, err := load(c, id)
			if err != nil {
				Fail(c, cfg.EZ.log, err)
				return
			}
			c.JSON(http.StatusOK, out)
		})
	}

	// Delete
	if cfg.AllowDelete {
		g.DELETE(cfg.Path+"/:id", func(c *gin.Context) {
			id, err := ParseID(c, "id")
			if err != nil {
				Fail(c, cfg.EZ.log, err)
				return
			}
			err = cfg.DB.WithContext(c).Transaction(func(tx *gorm.DB) error {
				if cfg.Hooks.BeforeDelete != nil {
					if err := cfg.Hooks.BeforeDelete(c, tx, id); err != nil {
						return err
					}
				}
				res := tx.Delete(cfg.New(), id)
				if res.Error != nil {
					return fmt.Errorf("delete %s %d: %w", cfg.Resource, id, res.Error)
				}
				if res.RowsAffected == 0 {
					return domain.NotFound(cfg.Resource, id)
				}
				return nil
			})
			if err != nil {
				Fail(c, cfg.EZ.log, err)
				return
			}
			cfg.invalidate(c)
			c.JSON(http.StatusOK, resp.Message(fmt.Sprintf("%s %d eliminado correctamente", cfg.Resource, id)))
		})
	}
}

func (cfg *CrudConfig[T]) list(c *gin.Context, ctx context.Context, page, size int) (resp.Page[T], error) {
	q := cfg.DB.WithContext(ctx).Model(cfg.New())
	if cfg.Hooks.ScopeList != nil {
		q = cfg.Hooks.ScopeList(c, q)
	}
	if s := strings.TrimSpace(c.Query("q")); s != "" && len(cfg.SearchColumns) > 0 {
		like := "%" + strings.ToLower(s) + "%"
		conds := make([]string, 0, len(cfg.SearchColumns))
		args := make([]any, 0, len(cfg.SearchColumns))
		for _, col := range cfg.SearchColumns {
			conds = append(conds, "LOWER("+col+") LIKE ?")
			args = append(args, like)
		}
		q = q.Where(strings.Join(conds, " OR "), args...)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return resp.Page[T]{}, fmt.Errorf("count %s: %w", cfg.Resource, err)
	}

	if cfg.OrderBy != "" {
		q = q.Order(cfg.OrderBy)
	} else {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: true})
	}
	items := make([]T, 0)
	if err := cfg.preloaded(q).Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return resp.Page[T]{}, fmt.Errorf("list %s: %w", cfg.Resource, err)
	}
	return resp.Page[T]{List: items, Total: total, Page: page, Size: size}, nil
}
