package web

import (
	"net/http"
)

type reportsView struct {
	Page
	Volume     []MonthlyTotal
	ByAsset    []Share
	ByNetwork  []Share
	TotalPaid  float64
	TotalCount int
}

// Reports derives monthly totals and per-asset / per-network distributions
// from the transaction history.
func (h *Handler) Reports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	sess, _ := SessionFromContext(r.Context())

	transactions, err := h.client.Transactions(r.Context(), sess.Token)
	if err != nil {
		h.renderBackendError(w, r, err, "/reports")
		return
	}

	byAsset := DistributionByAsset(transactions)
	var totalPaid float64
	for _, share := range byAsset {
		totalPaid += share.Amount
	}

	h.renderer.Render(r.Context(), w, http.StatusOK, "reports", reportsView{
		Page:       h.page(r, "Reports", "reports"),
		Volume:     MonthlyVolume(transactions, 12, h.now()),
		ByAsset:    byAsset,
		ByNetwork:  DistributionByNetwork(transactions),
		TotalPaid:  totalPaid,
		TotalCount: len(transactions),
	})
}
