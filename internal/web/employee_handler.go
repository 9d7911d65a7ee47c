package web

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/coinomad/payroll-dashboard/internal/api"
)

type employeesView struct {
	Page
	Employees []api.Employee
	Query     string
}

// Employees lists the roster with optional case-insensitive search over
// name, email, and position.
func (h *Handler) Employees(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	sess, _ := SessionFromContext(r.Context())

	employees, err := h.client.Employees(r.Context(), sess.Token)
	if err != nil {
		h.renderBackendError(w, r, err, "/employees")
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	view := employeesView{
		Page:      h.page(r, "Employees", "employees"),
		Employees: filterEmployees(employees, query),
		Query:     query,
	}
	switch {
	case r.URL.Query().Get("scheduled") == "1":
		view.Flash = "Payment scheduled."
	case r.URL.Query().Get("notice") != "":
		view.Flash = r.URL.Query().Get("notice")
	}
	h.renderer.Render(r.Context(), w, http.StatusOK, "employees", view)
}

func filterEmployees(employees []api.Employee, query string) []api.Employee {
	if query == "" {
		return employees
	}
	needle := strings.ToLower(query)
	filtered := make([]api.Employee, 0, len(employees))
	for _, employee := range employees {
		haystack := strings.ToLower(employee.Name + " " + employee.Email + " " + employee.Position)
		if strings.Contains(haystack, needle) {
			filtered = append(filtered, employee)
		}
	}
	return filtered
}

type employeeFormView struct {
	Page
	Form     api.EmployeeInput
	Errors   map[string]string
	Action   string
	Editing  bool
	Networks []string
	Assets   []string
}

var (
	employeeNetworks = []string{"base", "ethereum", "polygon", "celo"}
	employeeAssets   = []string{"USDC", "USDT", "CUSD"}
)

// NewEmployee serves the registration form.
func (h *Handler) NewEmployee(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	h.renderer.Render(r.Context(), w, http.StatusOK, "employee_form", employeeFormView{
		Page:     h.page(r, "Add employee", "employees"),
		Action:   "/employees",
		Networks: employeeNetworks,
		Assets:   employeeAssets,
	})
}

// CreateEmployee registers a new employee and returns to the refreshed list.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	input, fieldErrors := parseEmployeeForm(r)
	if len(fieldErrors) > 0 {
		h.renderer.Render(r.Context(), w, http.StatusUnprocessableEntity, "employee_form", employeeFormView{
			Page:     h.page(r, "Add employee", "employees"),
			Form:     input,
			Errors:   fieldErrors,
			Action:   "/employees",
			Networks: employeeNetworks,
			Assets:   employeeAssets,
		})
		return
	}

	sess, _ := SessionFromContext(r.Context())
	if _, err := h.client.RegisterEmployee(r.Context(), sess.Token, input); err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			h.renderer.Render(r.Context(), w, http.StatusUnprocessableEntity, "employee_form", employeeFormView{
				Page:     h.page(r, "Add employee", "employees"),
				Form:     input,
				Errors:   map[string]string{"form": apiErr.Message},
				Action:   "/employees",
				Networks: employeeNetworks,
				Assets:   employeeAssets,
			})
			return
		}
		h.renderBackendError(w, r, err, "/employees/new")
		return
	}
	http.Redirect(w, r, "/employees", http.StatusSeeOther)
}

// EditEmployee serves the edit form prefilled from the current roster.
func (h *Handler) EditEmployee(w http.ResponseWriter, r *http.Request, id string) {
	sess, _ := SessionFromContext(r.Context())
	employees, err := h.client.Employees(r.Context(), sess.Token)
	if err != nil {
		h.renderBackendError(w, r, err, "/employees")
		return
	}

	employee, ok := findEmployee(employees, id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	h.renderer.Render(r.Context(), w, http.StatusOK, "employee_form", employeeFormView{
		Page: h.page(r, "Edit employee", "employees"),
		Form: api.EmployeeInput{
			Name:          employee.Name,
			Email:         employee.Email,
			Position:      employee.Position,
			WalletAddress: employee.WalletAddress,
			Asset:         employee.Asset,
			Network:       employee.Network,
		},
		Action:   "/employees/" + employee.ID,
		Editing:  true,
		Networks: employeeNetworks,
		Assets:   employeeAssets,
	})
}

// UpdateEmployee applies edits and returns to the refreshed list.
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request, id string) {
	input, fieldErrors := parseEmployeeForm(r)
	if len(fieldErrors) > 0 {
		h.renderer.Render(r.Context(), w, http.StatusUnprocessableEntity, "employee_form", employeeFormView{
			Page:     h.page(r, "Edit employee", "employees"),
			Form:     input,
			Errors:   fieldErrors,
			Action:   "/employees/" + id,
			Editing:  true,
			Networks: employeeNetworks,
			Assets:   employeeAssets,
		})
		return
	}

	sess, _ := SessionFromContext(r.Context())
	if err := h.client.UpdateEmployee(r.Context(), sess.Token, id, input); err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			h.renderer.Render(r.Context(), w, http.StatusUnprocessableEntity, "employee_form", employeeFormView{
				Page:     h.page(r, "Edit employee", "employees"),
				Form:     input,
				Errors:   map[string]string{"form": apiErr.Message},
				Action:   "/employees/" + id,
				Editing:  true,
				Networks: employeeNetworks,
				Assets:   employeeAssets,
			})
			return
		}
		h.renderBackendError(w, r, err, "/employees")
		return
	}
	http.Redirect(w, r, "/employees", http.StatusSeeOther)
}

// DeleteEmployee removes an employee and returns to the refreshed list.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request, id string) {
	sess, _ := SessionFromContext(r.Context())
	if err := h.client.DeleteEmployee(r.Context(), sess.Token, id); err != nil {
		h.renderBackendError(w, r, err, "/employees")
		return
	}
	http.Redirect(w, r, "/employees", http.StatusSeeOther)
}

func parseEmployeeForm(r *http.Request) (api.EmployeeInput, map[string]string) {
	input := api.EmployeeInput{
		Name:          strings.TrimSpace(r.PostFormValue("name")),
		Email:         strings.TrimSpace(r.PostFormValue("email")),
		Position:      strings.TrimSpace(r.PostFormValue("position")),
		WalletAddress: strings.TrimSpace(r.PostFormValue("walletAddress")),
		Asset:         strings.TrimSpace(r.PostFormValue("asset")),
		Network:       strings.TrimSpace(r.PostFormValue("network")),
	}

	fieldErrors := map[string]string{}
	if input.Name == "" {
		fieldErrors["name"] = "Name is required."
	}
	if input.Email == "" {
		fieldErrors["email"] = "Email is required."
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		fieldErrors["email"] = "Enter a valid email address."
	}
	if input.WalletAddress == "" {
		fieldErrors["walletAddress"] = "Wallet address is required."
	}
	if len(fieldErrors) > 0 {
		return input, fieldErrors
	}
	return input, nil
}

func findEmployee(employees []api.Employee, id string) (api.Employee, bool) {
	for _, employee := range employees {
		if employee.ID == id {
			return employee, true
		}
	}
	return api.Employee{}, false
}
