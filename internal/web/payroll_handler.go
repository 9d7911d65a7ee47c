package web

import (
	"net/http"

	"github.com/coinomad/payroll-dashboard/internal/api"
)

type payrollView struct {
	Page
	Employees      []api.Employee
	EmployeeCount  int
	ScheduledCount int
	MonthlyPayroll float64
	ThisMonth      float64
	Pending        int
	Volume         []MonthlyTotal
}

// Payroll shows roster-wide stats and the trailing six months of payment
// volume alongside the employee table.
func (h *Handler) Payroll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	sess, _ := SessionFromContext(r.Context())

	employees, err := h.client.Employees(r.Context(), sess.Token)
	if err != nil {
		h.renderBackendError(w, r, err, "/payroll")
		return
	}
	transactions, err := h.client.Transactions(r.Context(), sess.Token)
	if err != nil {
		h.renderBackendError(w, r, err, "/payroll")
		return
	}

	volume := MonthlyVolume(transactions, 6, h.now())
	var thisMonth float64
	if len(volume) > 0 {
		thisMonth = volume[len(volume)-1].Amount
	}

	scheduled := 0
	for _, employee := range employees {
		if employee.HasSchedule() {
			scheduled++
		}
	}

	h.renderer.Render(r.Context(), w, http.StatusOK, "payroll", payrollView{
		Page:           h.page(r, "Payroll", "payroll"),
		Employees:      employees,
		EmployeeCount:  len(employees),
		ScheduledCount: scheduled,
		MonthlyPayroll: ScheduledPayrollTotal(employees),
		ThisMonth:      thisMonth,
		Pending:        PendingCount(transactions),
		Volume:         volume,
	})
}
