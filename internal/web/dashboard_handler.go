package web

import (
	"net/http"
	"sort"

	"github.com/coinomad/payroll-dashboard/internal/api"
)

type networkBalanceView struct {
	Key     string
	Name    string
	Address string
	Assets  []assetBalanceView
}

type assetBalanceView struct {
	Asset  string
	Amount float64
}

type dashboardView struct {
	Page
	Networks []networkBalanceView
	Total    float64
	Recent   []api.Transaction
}

// Dashboard shows per-network wallet balances, the portfolio total, and the
// three most recent transactions.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	sess, _ := SessionFromContext(r.Context())

	balances, err := h.client.Balance(r.Context(), sess.Token)
	if err != nil {
		h.renderBackendError(w, r, err, "/dashboard")
		return
	}
	transactions, err := h.client.Transactions(r.Context(), sess.Token)
	if err != nil {
		h.renderBackendError(w, r, err, "/dashboard")
		return
	}

	SortTransactionsDesc(transactions)
	recent := transactions
	if len(recent) > 3 {
		recent = recent[:3]
	}

	h.renderer.Render(r.Context(), w, http.StatusOK, "dashboard", dashboardView{
		Page:     h.page(r, "Dashboard", "dashboard"),
		Networks: balanceViews(balances),
		Total:    balances.Total(),
		Recent:   recent,
	})
}

// balanceViews flattens the balance map into a stable display order.
func balanceViews(balances api.Balances) []networkBalanceView {
	keys := make([]string, 0, len(balances))
	for key := range balances {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	views := make([]networkBalanceView, 0, len(keys))
	for _, key := range keys {
		network := balances[key]
		assets := make([]assetBalanceView, 0, len(network.Assets))
		for asset, amount := range network.Assets {
			assets = append(assets, assetBalanceView{Asset: asset, Amount: amount})
		}
		sort.Slice(assets, func(i, j int) bool { return assets[i].Asset < assets[j].Asset })
		views = append(views, networkBalanceView{
			Key:     key,
			Name:    network.Name,
			Address: network.Address,
			Assets:  assets,
		})
	}
	return views
}
