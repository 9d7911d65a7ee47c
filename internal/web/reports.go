package web

import (
	"sort"
	"time"

	"github.com/coinomad/payroll-dashboard/internal/api"
)

// MonthlyTotal is one bar of the payment-volume chart.
type MonthlyTotal struct {
	Year   int
	Month  time.Month
	Label  string
	Amount float64
}

// Share is one slice of an asset or network distribution.
type Share struct {
	Key     string
	Amount  float64
	Percent float64
}

// SortTransactionsDesc orders transactions newest first. Timestamps that do
// not parse sort last, keeping their relative order.
func SortTransactionsDesc(transactions []api.Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		ti, iOK := parseTimestamp(transactions[i].Timestamp)
		tj, jOK := parseTimestamp(transactions[j].Timestamp)
		if iOK != jOK {
			return iOK
		}
		return ti.After(tj)
	})
}

// MonthlyVolume sums outgoing payment amounts per calendar month over the
// trailing window ending at now, oldest month first. Months without payments
// appear with a zero amount.
func MonthlyVolume(transactions []api.Transaction, months int, now time.Time) []MonthlyTotal {
	if months <= 0 {
		return nil
	}

	now = now.UTC()
	totals := make([]MonthlyTotal, months)
	index := make(map[string]int, months)
	for i := 0; i < months; i++ {
		anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, i-months+1, 0)
		totals[i] = MonthlyTotal{
			Year:  anchor.Year(),
			Month: anchor.Month(),
			Label: anchor.Format("Jan 2006"),
		}
		index[anchor.Format("2006-01")] = i
	}

	for _, tx := range transactions {
		if !isOutgoing(tx) {
			continue
		}
		at, ok := parseTimestamp(tx.Timestamp)
		if !ok {
			continue
		}
		if i, ok := index[at.UTC().Format("2006-01")]; ok {
			totals[i].Amount += tx.Amount
		}
	}
	return totals
}

// DistributionByAsset breaks outgoing payment volume down per asset.
func DistributionByAsset(transactions []api.Transaction) []Share {
	return distribution(transactions, func(tx api.Transaction) string { return tx.Asset })
}

// DistributionByNetwork breaks outgoing payment volume down per network.
func DistributionByNetwork(transactions []api.Transaction) []Share {
	return distribution(transactions, func(tx api.Transaction) string { return tx.Network })
}

func distribution(transactions []api.Transaction, keyOf func(api.Transaction) string) []Share {
	amounts := map[string]float64{}
	var total float64
	for _, tx := range transactions {
		if !isOutgoing(tx) {
			continue
		}
		key := keyOf(tx)
		if key == "" {
			key = "unknown"
		}
		amounts[key] += tx.Amount
		total += tx.Amount
	}

	shares := make([]Share, 0, len(amounts))
	for key, amount := range amounts {
		share := Share{Key: key, Amount: amount}
		if total > 0 {
			share.Percent = amount / total * 100
		}
		shares = append(shares, share)
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Amount != shares[j].Amount {
			return shares[i].Amount > shares[j].Amount
		}
		return shares[i].Key < shares[j].Key
	})
	return shares
}

// PendingCount counts transactions still awaiting confirmation.
func PendingCount(transactions []api.Transaction) int {
	count := 0
	for _, tx := range transactions {
		if tx.Status == "PENDING" {
			count++
		}
	}
	return count
}

// ScheduledPayrollTotal sums the amounts of every active schedule across the
// roster, the figure shown as committed monthly payroll.
func ScheduledPayrollTotal(employees []api.Employee) float64 {
	var total float64
	for _, employee := range employees {
		for _, sched := range employee.AllSchedules() {
			if sched.Status == "" || sched.Status == "active" {
				total += sched.Amount
			}
		}
	}
	return total
}

func isOutgoing(tx api.Transaction) bool {
	return tx.Type == "withdrawal"
}

func parseTimestamp(raw string) (time.Time, bool) {
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return at, true
}
