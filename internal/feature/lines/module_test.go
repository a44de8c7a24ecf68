package lines

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

func TestNormalizeNumber(t *testing.T) {
	tests := map[string]string{
		"+502 5555-1234":  "+50255551234",
		"(502) 5555 1234": "50255551234",
		" 5555-1234 ":     "55551234",
		"55+55":           "5555",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeNumber(in), in)
	}
}

func TestLines(t *testing.T) {
	db := testdb.Open(t)
	for _, v := range []any{
		&domain.Telco{Model: domain.Model{ID: 1}, Name: "Tigo"},
		&domain.Plan{Model: domain.Model{ID: 2}, Name: "Corporativo", TelcoID: 1},
		&domain.Company{Model: domain.Model{ID: 10}, Name: "Acme", TaxID: "NIT-10"},
		&domain.Company{Model: domain.Model{ID: 11}, Name: "Beta", TaxID: "NIT-11"},
		&domain.Employee{Model: domain.Model{ID: 20}, FirstName: "Eva", LastName: "Ruiz", CompanyID: 10},
	} {
		require.NoError(t, db.Create(v).Error)
	}
	r := apitest.Engine(NewModule(db, zaptest.NewLogger(t)).MountAPI)

	id := apitest.Created(t, apitest.Do(t, r, http.MethodPost, "/api/v1/lines",
		`{"number":"+502 5555-1234","companyId":10,"planId":2,"employeeId":20,"activationDate":"2024-03-01"}`))

	w := apitest.Do(t, r, http.MethodGet, fmt.Sprintf("/api/v1/lines/%d", id), "")
	require.Equal(t, http.StatusOK, w.Code)
	line := apitest.Decode[struct {
		Number         string `json:"number"`
		Status         string `json:"status"`
		ActivationDate string `json:"activationDate"`
		Plan           *struct {
			Telco *struct {
				Name string `json:"name"`
			} `json:"telco"`
		} `json:"plan"`
		Employee *struct {
			FirstName string `json:"firstName"`
		} `json:"employee"`
	}](t, w)
	assert.Equal(t, "+50255551234", line.Number)
	assert.Equal(t, "active", line.Status)
	assert.Equal(t, "2024-03-01", line.ActivationDate)
	require.NotNil(t, line.Plan)
	require.NotNil(t, line.Plan.Telco)
	assert.Equal(t, "Tigo", line.Plan.Telco.Name)
	require.NotNil(t, line.Employee)

	tests := []struct {
		name string
		body string
	}{
		{"duplicate number", `{"number":"+50255551234","companyId":10,"planId":2}`},
		{"employee of another company", `{"number":"+50255550000","companyId":11,"planId":2,"employeeId":20}`},
		{"unknown plan", `{"number":"+50255550001","companyId":10,"planId":9}`},
		{"bad status", `{"number":"+50255550002","companyId":10,"planId":2,"status":"lost"}`},
		{"short number", `{"number":"123","companyId":10,"planId":2}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := apitest.Do(t, r, http.MethodPost, "/api/v1/lines", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}

	w = apitest.Do(t, r, http.MethodPut, fmt.Sprintf("/api/v1/lines/%d", id),
		`{"number":"+50255551234","companyId":10,"planId":2,"status":"suspended"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"suspended"`)

	w = apitest.Do(t, r, http.MethodGet, "/api/v1/lines?companyId=10&status=suspended", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
}
