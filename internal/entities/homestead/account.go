package homestead

// AccountDetail holds the per-account counters the economy mutates. Chron
// is the currency balance and must never go negative; Experience only
// grows (expansion grants experience equal to the chron cost).
type AccountDetail struct {
	ID         string `json:"id"`
	Chron      int64  `json:"chron"`
	Experience int64  `json:"experience"`
}
