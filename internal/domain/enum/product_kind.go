package enum

// ProductKind distinguishes stocked goods from services
type ProductKind string

const (
	ProductKindGood    ProductKind = "GOOD"
	ProductKindService ProductKind = "SERVICE"
)

func (k ProductKind) String() string {
	return string(k)
}

// Valid reports whether k is a known product kind
func (k ProductKind) Valid() bool {
	return k == ProductKindGood || k == ProductKindService
}

// TracksStock reports whether products of this kind carry a quantity-on-hand
func (k ProductKind) TracksStock() bool {
	return k == ProductKindGood
}
