package entity

// ReceiptHeader holds the store/business header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
}

// ReceiptLine represents a single item line on a receipt.
type ReceiptLine struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Unit      string  `json:"unit,omitempty"`
	UnitPrice float64 `json:"unit_price"`
	Discount  float64 `json:"discount,omitempty"`
	Total     float64 `json:"total"`
}

// Receipt is a value object representing a printable receipt. It is NOT a
// database entity; it is projected from a finalized invoice at print time
// and carries no logic of its own.
type Receipt struct {
	Header         ReceiptHeader `json:"header"`
	InvoiceNo      string        `json:"invoice_no"`
	Date           string        `json:"date"`
	Cashier        string        `json:"cashier,omitempty"`
	Customer       string        `json:"customer,omitempty"`
	PaymentMethod  string        `json:"payment_method,omitempty"`
	Lines          []ReceiptLine `json:"lines"`
	SubTotal       float64       `json:"sub_total"`
	TotalDiscount  float64       `json:"total_discount"`
	Tax            float64       `json:"tax"`
	GrandTotal     float64       `json:"grand_total"`
	AmountReceived float64       `json:"amount_received,omitempty"`
	Change         float64       `json:"change,omitempty"`
}
