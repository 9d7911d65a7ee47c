package api

// Employee is a payee record as the backend returns it. ScheduleTransaction
// may be null and Schedules may be absent entirely.
type Employee struct {
	ID                  string            `json:"id"`
	Name                string            `json:"name"`
	Email               string            `json:"email"`
	Position            string            `json:"position"`
	WalletAddress       string            `json:"walletAddress"`
	Asset               string            `json:"asset"`
	Network             string            `json:"network"`
	ScheduleTransaction *ScheduleSummary  `json:"scheduleTransaction"`
	Schedules           []ScheduleSummary `json:"schedules"`
}

// AllSchedules merges the embedded schedule fields into one display list.
func (e Employee) AllSchedules() []ScheduleSummary {
	out := make([]ScheduleSummary, 0, len(e.Schedules)+1)
	if e.ScheduleTransaction != nil {
		out = append(out, *e.ScheduleTransaction)
	}
	out = append(out, e.Schedules...)
	return out
}

// HasSchedule reports whether any schedule is attached to the employee.
func (e Employee) HasSchedule() bool {
	return e.ScheduleTransaction != nil || len(e.Schedules) > 0
}

// EmployeeInput carries the fields for registering or updating an employee.
type EmployeeInput struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Position      string `json:"position"`
	WalletAddress string `json:"walletAddress"`
	Asset         string `json:"asset"`
	Network       string `json:"network"`
}

// ScheduleSummary is the backend's display copy of a payment instruction.
// The authoritative schedule state lives and executes server-side.
type ScheduleSummary struct {
	ID                string  `json:"id"`
	ScheduleType      string  `json:"scheduleType"`
	Frequency         string  `json:"frequency,omitempty"`
	Amount            float64 `json:"amount"`
	Asset             string  `json:"asset"`
	Status            string  `json:"status"`
	NextPayment       string  `json:"nextPayment,omitempty"`
	ScheduledDateTime string  `json:"scheduledDateTime,omitempty"`
}

// Transaction is a read-only ledger entry fetched from the backend.
type Transaction struct {
	TransactionID string  `json:"transactionId"`
	Type          string  `json:"type"` // incoming | withdrawal
	Asset         string  `json:"asset"`
	Network       string  `json:"network"`
	Amount        float64 `json:"amount"`
	Timestamp     string  `json:"timestamp"`
	Status        string  `json:"status"` // PENDING | CONFIRMED
	TxHash        string  `json:"txHash"`
}

// NetworkBalance holds one network's wallet address and per-asset balances.
type NetworkBalance struct {
	Name    string             `json:"name"`
	Address string             `json:"address"`
	Assets  map[string]float64 `json:"assets"`
}

// Balances maps network identifiers (base, ethereum, polygon, celo) to their
// wallet balances.
type Balances map[string]NetworkBalance

// Total sums every asset across every network.
func (b Balances) Total() float64 {
	var total float64
	for _, network := range b {
		for _, amount := range network.Assets {
			total += amount
		}
	}
	return total
}
