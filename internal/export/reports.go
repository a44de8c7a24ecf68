package export

import (
	"strconv"

	"telco-admin/internal/domain"
)

func PeriodSheet(periods []domain.RepresentationPeriod) Sheet {
	s := Sheet{
		Title:  "Representantes",
		Header: []string{"ID", "Empresa", "NIT", "Representante", "CUI", "Inicio", "Fin", "Estado", "Notas"},
		Rows:   make([][]string, 0, len(periods)),
	}
	for _, p := range periods {
		var company, taxID, rep, cui string
		if p.Company != nil {
			company, taxID = p.Company.Name, p.Company.TaxID
		}
		if p.LegalRepresentative != nil {
			rep, cui = p.LegalRepresentative.FullName(), p.LegalRepresentative.CUI
		}
		end, status := "", "Activo"
		if p.EndDate != nil {
			end, status = p.EndDate.String(), "Finalizado"
		}
		s.Rows = append(s.Rows, []string{
			strconv.FormatUint(uint64(p.ID), 10), company, taxID, rep, cui,
			p.StartDate.String(), end, status, p.Notes,
		})
	}
	return s
}

var lineStatusLabel = map[domain.LineStatus]string{
	domain.LineActive:    "Activa",
	domain.LineSuspended: "Suspendida",
	domain.LineCancelled: "Cancelada",
}

func LineSheet(lines []domain.Line) Sheet {
	s := Sheet{
		Title:  "Líneas",
		Header: []string{"Número", "Empresa", "Usuario", "Plan", "Operador", "Cuota mensual", "Estado", "Activación", "Notas"},
		Rows:   make([][]string, 0, len(lines)),
	}
	for _, l := range lines {
		var company, user, plan, telco, fee, activation string
		if l.Company != nil {
			company = l.Company.Name
		}
		if l.Employee != nil {
			user = l.Employee.FirstName + " " + l.Employee.LastName
		}
		if l.Plan != nil {
			plan = l.Plan.Name
			fee = strconv.FormatFloat(l.Plan.MonthlyFee, 'f', 2, 64)
			if l.Plan.Telco != nil {
				telco = l.Plan.Telco.Name
			}
		}
		if l.ActivationDate != nil {
			activation = l.ActivationDate.String()
		}
		status := lineStatusLabel[l.Status]
		if status == "" {
			status = string(l.Status)
		}
		s.Rows = append(s.Rows, []string{l.Number, company, user, plan, telco, fee, status, activation, l.Notes})
	}
	return s
}
