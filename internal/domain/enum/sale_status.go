package enum

// SaleStatus represents the lifecycle state of a sale.
// The only transition is Completed -> Cancelled.
type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "COMPLETED"
	SaleStatusCancelled SaleStatus = "CANCELLED"
)

func (s SaleStatus) String() string {
	return string(s)
}

// Valid reports whether s is a known status
func (s SaleStatus) Valid() bool {
	return s == SaleStatusCompleted || s == SaleStatusCancelled
}

// Terminal reports whether no further transition is possible
func (s SaleStatus) Terminal() bool {
	return s == SaleStatusCancelled
}
