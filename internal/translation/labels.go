package translation

// LabelSet is the complete set of user-facing invoice strings for one
// locale. Every field is always populated after resolution; the
// renderer never checks for missing labels.
type LabelSet struct {
	InvoiceTitle  string `json:"invoiceTitle"`
	InvoiceNo     string `json:"invoiceNo"`
	DateIssued    string `json:"dateIssued"`
	DueDate       string `json:"dueDate"`
	Amount        string `json:"amount"`
	From          string `json:"from"`
	BillTo        string `json:"billTo"`
	ShipTo        string `json:"shipTo"`
	Product       string `json:"product"`
	Description   string `json:"description"`
	Qty           string `json:"qty"`
	Price         string `json:"price"`
	Total         string `json:"total"`
	Subtotal      string `json:"subtotal"`
	Discount      string `json:"discount"`
	Tax           string `json:"tax"`
	Shipping      string `json:"shipping"`
	GrandTotal    string `json:"grandTotal"`
	ThankYou      string `json:"thankYou"`
	PageNumber    string `json:"pageNumber"`
	StatusPaid    string `json:"statusPaid"`
	StatusPending string `json:"statusPending"`
}

// IsZero reports whether every label is blank. A saved override in
// this state is treated as absent.
func (l LabelSet) IsZero() bool {
	return l == LabelSet{}
}
