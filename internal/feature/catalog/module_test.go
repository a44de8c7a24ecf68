package catalog

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"telco-admin/internal/domain"
	"telco-admin/internal/testutil/apitest"
	"telco-admin/internal/testutil/testdb"
)

func TestCatalog_PlansRequireExistingTelco(t *testing.T) {
	db := testdb.Open(t)
	r := apitest.Engine(NewModule(db, nil, zaptest.NewLogger(t)).MountAPI)

	w := apitest.Do(t, r, http.MethodPost, "/api/v1/plans", `{"name":"Corporativo 10","telcoId":3,"monthlyFee":150.5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, apitest.ErrorMsg(t, w), "no existe")

	telcoID := apitest.Created(t, apitest.Do(t, r, http.MethodPost, "/api/v1/telcos", `{"name":"Claro"}`))
	w = apitest.Do(t, r, http.MethodPost, "/api/v1/telcos", `{"name":"Claro"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	planID := apitest.Created(t, apitest.Do(t, r, http.MethodPost, "/api/v1/plans",
		fmt.Sprintf(`{"name":"Corporativo 10","telcoId":%d,"monthlyFee":150.5,"dataGb":10}`, telcoID)))

	w = apitest.Do(t, r, http.MethodGet, fmt.Sprintf("/api/v1/plans/%d", planID), "")
	require.Equal(t, http.StatusOK, w.Code)
	plan := apitest.Decode[struct {
		MonthlyFee float64 `json:"monthlyFee"`
		DataGB     float64 `json:"dataGb"`
		Telco      *struct {
			Name string `json:"name"`
		} `json:"telco"`
	}](t, w)
	assert.Equal(t, 150.5, plan.MonthlyFee)
	assert.Equal(t, 10.0, plan.DataGB)
	require.NotNil(t, plan.Telco)
	assert.Equal(t, "Claro", plan.Telco.Name)

	w = apitest.Do(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/telcos/%d", telcoID), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, apitest.ErrorMsg(t, w), "1 planes")

	w = apitest.Do(t, r, http.MethodGet, fmt.Sprintf("/api/v1/plans?telcoId=%d", telcoID), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = apitest.Do(t, r, http.MethodPost, "/api/v1/plans", fmt.Sprintf(`{"name":"Negativo","telcoId":%d,"monthlyFee":-1}`, telcoID))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalog_Advisors(t *testing.T) {
	db := testdb.Open(t)
	require.NoError(t, db.Create(&domain.Telco{Model: domain.Model{ID: 1}, Name: "Tigo"}).Error)
	r := apitest.Engine(NewModule(db, nil, zaptest.NewLogger(t)).MountAPI)

	w := apitest.Do(t, r, http.MethodPost, "/api/v1/advisors", `{"fullName":"Ana","kind":"gerente","telcoId":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	apitest.Created(t, apitest.Do(t, r, http.MethodPost, "/api/v1/advisors", `{"fullName":"Ana","kind":"sales","telcoId":1}`))
	apitest.Created(t, apitest.Do(t, r, http.MethodPost, "/api/v1/advisors", `{"fullName":"Beto","kind":"post_sales","telcoId":1}`))

	w = apitest.Do(t, r, http.MethodGet, "/api/v1/advisors?kind=post_sales", "")
	require.Equal(t, http.StatusOK, w.Code)
	page := apitest.Decode[struct {
		List []struct {
			FullName string `json:"fullName"`
		} `json:"list"`
		Total int64 `json:"total"`
	}](t, w)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, "Beto", page.List[0].FullName)
}

func TestCatalog_PositionsDeleteBlockedByEmployees(t *testing.T) {
	db := testdb.Open(t)
	r := apitest.Engine(NewModule(db, nil, zaptest.NewLogger(t)).MountAPI)

	posID := apitest.Created(t, apitest.Do(t, r, http.MethodPost, "/api/v1/positions", `{"name":"Gerente"}`))
	require.NoError(t, db.Create(&domain.Company{Model: domain.Model{ID: 10}, Name: "Acme", TaxID: "NIT-10"}).Error)
	require.NoError(t, db.Create(&domain.Employee{FirstName: "Eva", LastName: "Ruiz", CompanyID: 10, PositionID: &posID}).Error)

	w := apitest.Do(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/positions/%d", posID), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = apitest.Do(t, r, http.MethodDelete, "/api/v1/positions/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
