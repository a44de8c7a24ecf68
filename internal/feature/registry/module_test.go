package registry

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"telco-admin/internal/domain"
	"telco-admin/internal/testutil/apitest"
	"telco-admin/internal/testutil/testdb"
)

type companyJSON struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	TaxID        string `json:"taxId"`
	SalesAdvisor *struct {
		FullName string `json:"fullName"`
	} `json:"salesAdvisor"`
}

func setup(t *testing.T) (*gin.Engine, func(v any)) {
	db := testdb.Open(t)
	r := apitest.Engine(NewModule(db, zaptest.NewLogger(t)).MountAPI)
	return r, func(v any) { require.NoError(t, db.Create(v).Error) }
}

func TestCompanies_CRUD(t *testing.T) {
	r, seed := setup(t)
	seed(&domain.Telco{Model: domain.Model{ID: 1}, Name: "Tigo"})
	seed(&domain.Advisor{Model: domain.Model{ID: 5}, FullName: "Ana Ventas", Kind: domain.AdvisorSales, TelcoID: 1})
	seed(&domain.Advisor{Model: domain.Model{ID: 6}, FullName: "Luis Soporte", Kind: domain.AdvisorPostSale, TelcoID: 1})

	id := apitest.Created(t, apitest.Do(t, r, http.MethodPost, "/api/v1/companies",
		`{"name":" Acme ","taxId":"nit-1","salesAdvisorId":5,"postSaleAdvisorId":6}`))

	w := apitest.Do(t, r, http.MethodGet, fmt.Sprintf("/api/v1/companies/%d", id), "")
	require.Equal(t, http.StatusOK, w.Code)
	got := apitest.Decode[companyJSON](t, w)
	assert.Equal(t, "Acme", got.Name)
	assert.Equal(t, "NIT-1", got.TaxID)
	require.NotNil(t, got.SalesAdvisor)
	assert.Equal(t, "Ana Ventas", got.SalesAdvisor.FullName)

	w = apitest.Do(t, r, http.MethodPost, "/api/v1/companies", `{"name":"Otra","taxId":"NIT-1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, apitest.ErrorMsg(t, w), "NIT-1")

	w = apitest.Do(t, r, http.MethodPost, "/api/v1/companies", `{"name":"Otra","taxId":"NIT-2","salesAdvisorId":6}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "post-sales advisor cannot be the sales advisor")

	w = apitest.Do(t, r, http.MethodPost, "/api/v1/companies", `{"name":"Otra"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = apitest.Do(t, r, http.MethodPut, fmt.Sprintf("/api/v1/companies/%d", id), `{"name":"Acme SA","taxId":"NIT-1"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got = apitest.Decode[companyJSON](t, w)
	assert.Equal(t, "Acme SA", got.Name)
	assert.Nil(t, got.SalesAdvisor)

	w = apitest.Do(t, r, http.MethodPut, "/api/v1/companies/999", `{"name":"X","taxId":"NIT-9"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = apitest.Do(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/companies/%d", id), "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = apitest.Do(t, r, http.MethodGet, fmt.Sprintf("/api/v1/companies/%d", id), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompanies_ListSearchAndPaging(t *testing.T) {
	r, seed := setup(t)
	for i, name := range []string{"Banco Uno", "Constructora Dos", "Banco Tres"} {
		seed(&domain.Company{Name: name, TaxID: fmt.Sprintf("NIT-%d", i)})
	}

	w := apitest.Do(t, r, http.MethodGet, "/api/v1/companies?q=banco&size=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	page := apitest.Decode[struct {
		List  []companyJSON `json:"list"`
		Total int64         `json:"total"`
		Page  int           `json:"page"`
		Size  int           `json:"size"`
	}](t, w)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 1, page.Size)
	require.Len(t, page.List, 1)
	assert.Equal(t, "Banco Tres", page.List[0].Name)

	w = apitest.Do(t, r, http.MethodGet, "/api/v1/companies?q=nada", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"list":[],"total":0,"page":1,"size":20}`, w.Body.String())
}

func TestDeleteBlockedByReferences(t *testing.T) {
	r, seed := setup(t)
	seed(&domain.Company{Model: domain.Model{ID: 10}, Name: "Acme", TaxID: "NIT-10"})
	seed(&domain.LegalRepresentative{Model: domain.Model{ID: 1}, FirstName: "Ana", LastName: "López", CUI: "111"})
	seed(&domain.Employee{FirstName: "Eva", LastName: "Ruiz", CompanyID: 10})
	seed(&domain.RepresentationPeriod{LegalRepresentativeID: 1, CompanyID: 10, StartDate: domain.NewDate(2024, 1, 1)})

	w := apitest.Do(t, r, http.MethodDelete, "/api/v1/companies/10", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	msg := apitest.ErrorMsg(t, w)
	assert.Contains(t, msg, "1 empleados")
	assert.Contains(t, msg, "1 períodos de representación")

	w = apitest.Do(t, r, http.MethodDelete, "/api/v1/legal-representatives/1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, apitest.ErrorMsg(t, w), "períodos de representación")

	w = apitest.Do(t, r, http.MethodDelete, "/api/v1/legal-representatives/77", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRepresentatives_UniqueCUI(t *testing.T) {
	r, _ := setup(t)

	id := apitest.Created(t, apitest.Do(t, r, http.MethodPost, "/api/v1/legal-representatives",
		`{"firstName":"Ana","lastName":"López","cui":"2500123450101","birthDate":"1980-02-29"}`))

	w := apitest.Do(t, r, http.MethodGet, fmt.Sprintf("/api/v1/legal-representatives/%d", id), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"birthDate":"1980-02-29"`)

	w = apitest.Do(t, r, http.MethodPost, "/api/v1/legal-representatives",
		`{"firstName":"Otro","lastName":"Más","cui":"2500123450101"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = apitest.Do(t, r, http.MethodPut, fmt.Sprintf("/api/v1/legal-representatives/%d", id),
		`{"firstName":"Ana María","lastName":"López","cui":"2500123450101"}`)
	assert.Equal(t, http.StatusOK, w.Code, "own CUI does not conflict with itself")
}
