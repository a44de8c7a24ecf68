package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"telco-admin/internal/domain"
)

func TestPeriodSheet(t *testing.T) {
	end := domain.NewDate(2024, 5, 31)
	s := PeriodSheet([]domain.RepresentationPeriod{
		{
			Model:               domain.Model{ID: 3},
			StartDate:           domain.NewDate(2024, 1, 1),
			EndDate:             &end,
			Company:             &domain.Company{Name: "Acme", TaxID: "NIT-10"},
			LegalRepresentative: &domain.LegalRepresentative{FirstName: "Ana", LastName: "López", CUI: "111"},
		},
		{Model: domain.Model{ID: 4}, StartDate: domain.NewDate(2024, 6, 1)},
	})
	require.Len(t, s.Rows, 2)
	assert.Equal(t, []string{"3", "Acme", "NIT-10", "Ana López", "111", "2024-01-01", "2024-05-31", "Finalizado", ""}, s.Rows[0])
	assert.Equal(t, "Activo", s.Rows[1][7])
	assert.Equal(t, "", s.Rows[1][6])
}

func TestLineSheet(t *testing.T) {
	s := LineSheet([]domain.Line{{
		Number:   "+50255551234",
		Status:   domain.LineSuspended,
		Company:  &domain.Company{Name: "Acme"},
		Employee: &domain.Employee{FirstName: "Eva", LastName: "Ruiz"},
		Plan:     &domain.Plan{Name: "Corporativo", MonthlyFee: 99.9, Telco: &domain.Telco{Name: "Tigo"}},
	}})
	require.Len(t, s.Rows, 1)
	assert.Equal(t, []string{"+50255551234", "Acme", "Eva Ruiz", "Corporativo", "Tigo", "99.90", "Suspendida", "", ""}, s.Rows[0])
}

func TestBuild_RoundTrip(t *testing.T) {
	f, err := Build(
		Sheet{Title: "Uno", Header: []string{"A", "B"}, Rows: [][]string{{"1", "2"}}},
		Sheet{Title: "Dos", Header: []string{"C"}},
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	back, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer back.Close()

	assert.Equal(t, []string{"Uno", "Dos"}, back.GetSheetList())
	rows, err := back.GetRows("Uno")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A", "B"}, {"1", "2"}}, rows)

	_, err = Build()
	assert.Error(t, err)
}
