package web

import (
	"net/http"

	"github.com/coinomad/payroll-dashboard/internal/api"
)

type transactionsView struct {
	Page
	Transactions []api.Transaction
	Pending      int
}

// Transactions shows the full payment history, newest first.
func (h *Handler) Transactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	sess, _ := SessionFromContext(r.Context())

	transactions, err := h.client.Transactions(r.Context(), sess.Token)
	if err != nil {
		h.renderBackendError(w, r, err, "/transactions")
		return
	}
	SortTransactionsDesc(transactions)

	h.renderer.Render(r.Context(), w, http.StatusOK, "transactions", transactionsView{
		Page:         h.page(r, "Transactions", "transactions"),
		Transactions: transactions,
		Pending:      PendingCount(transactions),
	})
}
