package enum

// SaleKind represents whether a sale is binding or a quote
type SaleKind string

const (
	SaleKindSale  SaleKind = "SALE"
	SaleKindQuote SaleKind = "QUOTE"
)

func (k SaleKind) String() string {
	return string(k)
}

// Valid reports whether k is a known sale kind
func (k SaleKind) Valid() bool {
	return k == SaleKindSale || k == SaleKindQuote
}

// AffectsStock reports whether sales of this kind reserve stock
func (k SaleKind) AffectsStock() bool {
	return k == SaleKindSale
}
