package rfm

import "time"

// TransactionRecord is one line item of a retail invoice, the unit the
// upload formats deliver. CustomerID is nullable because guest checkouts
// carry none.
type TransactionRecord struct {
	InvoiceNo   string    `json:"invoice_id"`
	StockCode   string    `json:"stock_code"`
	Description string    `json:"description"`
	Quantity    int64     `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	CustomerID  *float64  `json:"customer_id"`
	PurchasedAt time.Time `json:"purchased_at"`
	Country     string    `json:"country"`
}

// LineAmount is quantity times unit price.
func (t *TransactionRecord) LineAmount() float64 {
	return float64(t.Quantity) * t.UnitPrice
}

// CleanTransactions drops refund like rows (negative quantity or price)
// and rows without a customer. Kept rows pass through untouched.
func CleanTransactions(transactions []TransactionRecord) []TransactionRecord {
	cleaned := make([]TransactionRecord, 0, len(transactions))
	for i := range transactions {
		t := &transactions[i]
		if t.Quantity < 0 || t.UnitPrice < 0 {
			continue
		}
		if t.CustomerID == nil {
			continue
		}
		cleaned = append(cleaned, *t)
	}
	return cleaned
}
