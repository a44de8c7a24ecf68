// Package handler 任期接口（/api/v1/periods...）与后台导出
package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"telco-admin/internal/domain"
	"telco-admin/internal/service"
	httpez "telco-admin/internal/transport/http/ez"
	resp "telco-admin/internal/transport/http/response"
)

type PeriodModule struct {
	svc *service.PeriodService
	log *zap.Logger
}

func NewPeriodModule(svc *service.PeriodService, l *zap.Logger) *PeriodModule {
	return &PeriodModule{svc: svc, log: l}
}

// Priority 先于通用 CRUD 模块挂载
func (m *PeriodModule) Priority() int { return 10 }

type listPeriodsQ struct {
	CompanyID             uint  `form:"companyId"`
	LegalRepresentativeID uint  `form:"legalRepresentativeId"`
	Active                *bool `form:"active"`
}

func (m *PeriodModule) MountAPI(api *gin.RouterGroup) {
	ez := httpez.New(api, m.log)

	httpez.RegisterAction(ez, httpez.Action[service.CreatePeriodInput, *domain.RepresentationPeriod]{
		Method: http.MethodPost,
		Path:   "/periods",
		Binder: httpez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.CreatePeriodInput) (*domain.RepresentationPeriod, error) {
			return m.svc.Create(c, *in)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[listPeriodsQ, []domain.RepresentationPeriod]{
		Method: http.MethodGet,
		Path:   "/periods",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *listPeriodsQ) ([]domain.RepresentationPeriod, error) {
			return m.svc.List(c, domain.PeriodFilter{
				LegalRepresentativeID: in.LegalRepresentativeID,
				CompanyID:             in.CompanyID,
				Active:                in.Active,
			})
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, *domain.RepresentationPeriod]{
		Method: http.MethodGet,
		Path:   "/periods/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.RepresentationPeriod, error) {
			id, err := httpez.ParseID(c, "id")
			if err != nil {
				return nil, err
			}
			return m.svc.Get(c, id)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[service.EndPeriodInput, *domain.RepresentationPeriod]{
		Method: http.MethodPut,
		Path:   "/periods/:id/end",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *service.EndPeriodInput) (*domain.RepresentationPeriod, error) {
			id, err := httpez.ParseID(c, "id")
			if err != nil {
				return nil, err
			}
			return m.svc.End(c, id, *in)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[service.UpdatePeriodInput, *domain.RepresentationPeriod]{
		Method: http.MethodPut,
		Path:   "/periods/:id",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *service.UpdatePeriodInput) (*domain.RepresentationPeriod, error) {
			id, err := httpez.ParseID(c, "id")
			if err != nil {
				return nil, err
			}
			return m.svc.Update(c, id, *in)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, resp.MessageBody]{
		Method: http.MethodDelete,
		Path:   "/periods/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (resp.MessageBody, error) {
			id, err := httpez.ParseID(c, "id")
			if err != nil {
				return resp.MessageBody{}, err
			}
			if err := m.svc.Delete(c, id); err != nil {
				return resp.MessageBody{}, err
			}
			return resp.Message(fmt.Sprintf("período %d eliminado correctamente", id)), nil
		},
	})

	m.query(ez, "/periods/company/:id/active", m.svc.ActiveForCompany)
	m.query(ez, "/periods/company/:id/history", m.svc.HistoryForCompany)
	m.query(ez, "/periods/representative/:id/active", m.svc.ActiveForRepresentative)
}

// query 形如 GET /xxx/:id 返回任期数组的只读接口
func (m *PeriodModule) query(ez httpez.EZ, path string, fn func(ctx context.Context, id uint) ([]domain.RepresentationPeriod, error)) {
	httpez.RegisterAction(ez, httpez.Action[struct{}, []domain.RepresentationPeriod]{
		Method: http.MethodGet,
		Path:   path,
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.RepresentationPeriod, error) {
			id, err := httpez.ParseID(c, "id")
			if err != nil {
				return nil, err
			}
			return fn(c, id)
		},
	})
}
