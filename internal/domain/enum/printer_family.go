package enum

// PrinterFamily selects which output backends may be used for receipts
type PrinterFamily string

const (
	PrinterFamilyThermal PrinterFamily = "THERMAL"
	PrinterFamilyPDFOnly PrinterFamily = "PDF_ONLY"
)

func (f PrinterFamily) String() string {
	return string(f)
}

// Valid reports whether f is a known printer family
func (f PrinterFamily) Valid() bool {
	return f == PrinterFamilyThermal || f == PrinterFamilyPDFOnly
}

// Paper widths supported by the receipt backends, in millimetres
const (
	PaperWidth58 = 58
	PaperWidth80 = 80
)
