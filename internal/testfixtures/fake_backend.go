package testfixtures

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/coinomad/payroll-dashboard/internal/api"
)

// FakeBackend mimics the payroll API for handler tests: credential checks,
// an employee roster, wallet data, and captured schedule submissions.
type FakeBackend struct {
	mu sync.Mutex

	Email      string
	Password   string
	FirstName  string
	EmployerID string
	OTP        string

	Employees    []api.Employee
	Transactions []api.Transaction
	Balances     api.Balances

	// ScheduledPayloads captures every body posted to schedule-transaction.
	ScheduledPayloads []map[string]any
	// DeletedSchedules captures cancelled schedule IDs.
	DeletedSchedules []string
	// ScheduleDeleteError, when set, is returned for schedule cancellation.
	ScheduleDeleteError string
	// RejectAllAuthed forces 401 on every authenticated endpoint.
	RejectAllAuthed bool

	ids   *IDGenerator
	token string
}

// NewFakeBackend returns a backend with one employer account and an empty
// roster.
func NewFakeBackend() *FakeBackend {
	b := &FakeBackend{
		Email:      "admin@coinomad.example",
		Password:   "correct horse",
		FirstName:  "Ada",
		EmployerID: "employer-1",
		OTP:        "123456",
		Balances:   api.Balances{},
		ids:        NewIDGenerator("emp"),
	}
	b.token = b.issueToken()
	return b
}

// Token returns the bearer token the backend accepts.
func (b *FakeBackend) Token() string {
	return b.token
}

// issueToken mints a decodable JWT carrying the employer identity, signed
// with a throwaway key since callers never verify it.
func (b *FakeBackend) issueToken() string {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    b.EmployerID,
		"email": b.Email,
	}).SignedString([]byte("fake-backend-key"))
	if err != nil {
		panic(err)
	}
	return signed
}

// AddEmployee appends a roster entry with a generated ID and returns it.
func (b *FakeBackend) AddEmployee(employee api.Employee) api.Employee {
	b.mu.Lock()
	defer b.mu.Unlock()
	if employee.ID == "" {
		employee.ID = b.ids.Next()
	}
	b.Employees = append(b.Employees, employee)
	return employee
}

// Handler returns the route table, ready for httptest.NewServer.
func (b *FakeBackend) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/employerauth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds api.Credentials
		_ = json.NewDecoder(r.Body).Decode(&creds)
		b.mu.Lock()
		ok := creds.Email == b.Email && creds.Password == b.Password
		b.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success":     true,
			"accessToken": b.token,
			"firstName":   b.FirstName,
		})
	})
	mux.HandleFunc("/employerauth/signup/email", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "userId": "user-1"})
	})
	mux.HandleFunc("/employerauth/signup/verify-email", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["verificationCode"] != b.OTP {
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "Invalid verification code"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})
	mux.HandleFunc("/employerauth/signup/resend-token", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})
	mux.HandleFunc("/employerauth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})

	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			b.mu.Lock()
			reject := b.RejectAllAuthed
			b.mu.Unlock()
			if reject || r.Header.Get("Authorization") != "Bearer "+b.token {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			next(w, r)
		}
	}

	mux.HandleFunc("/employee/getemployees", authed(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "employees": b.Employees})
	}))
	mux.HandleFunc("/employee/register", authed(func(w http.ResponseWriter, r *http.Request) {
		var input api.EmployeeInput
		_ = json.NewDecoder(r.Body).Decode(&input)
		b.mu.Lock()
		employee := api.Employee{
			ID:            b.ids.Next(),
			Name:          input.Name,
			Email:         input.Email,
			Position:      input.Position,
			WalletAddress: input.WalletAddress,
			Asset:         input.Asset,
			Network:       input.Network,
		}
		b.Employees = append(b.Employees, employee)
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "employee": employee})
	}))
	mux.HandleFunc("/employee/update/", authed(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/employee/update/")
		var input api.EmployeeInput
		_ = json.NewDecoder(r.Body).Decode(&input)
		b.mu.Lock()
		defer b.mu.Unlock()
		for i := range b.Employees {
			if b.Employees[i].ID == id {
				b.Employees[i].Name = input.Name
				b.Employees[i].Email = input.Email
				b.Employees[i].Position = input.Position
				b.Employees[i].WalletAddress = input.WalletAddress
				b.Employees[i].Asset = input.Asset
				b.Employees[i].Network = input.Network
				writeJSON(w, http.StatusOK, map[string]any{"success": true})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "Employee not found"})
	}))
	mux.HandleFunc("/employee/delete/", authed(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/employee/delete/")
		b.mu.Lock()
		defer b.mu.Unlock()
		for i := range b.Employees {
			if b.Employees[i].ID == id {
				b.Employees = append(b.Employees[:i], b.Employees[i+1:]...)
				writeJSON(w, http.StatusOK, map[string]any{"success": true})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "Employee not found"})
	}))
	mux.HandleFunc("/employee/scheduledtransaction/", authed(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/employee/scheduledtransaction/")
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.ScheduleDeleteError != "" {
			writeJSON(w, http.StatusConflict, map[string]any{"success": false, "message": b.ScheduleDeleteError})
			return
		}
		b.DeletedSchedules = append(b.DeletedSchedules, id)
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}))

	mux.HandleFunc("/wallet/transactions", authed(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "transactions": b.Transactions})
	}))
	mux.HandleFunc("/wallet/balance", authed(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "balances": b.Balances})
	}))
	mux.HandleFunc("/wallet/schedule-transaction/", authed(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": fmt.Sprintf("bad payload: %v", err)})
			return
		}
		b.mu.Lock()
		b.ScheduledPayloads = append(b.ScheduledPayloads, payload)
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}))

	return mux
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
