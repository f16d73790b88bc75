package rfm

import (
	"sort"
	"time"

	U "retailpulse/util"
)

// InvoiceDayAggregate is one customer day with everything bought that day
// rolled into a single monetary amount. Multiple invoices on the same
// calendar day collapse into one purchase event.
type InvoiceDayAggregate struct {
	CustomerID    float64   `json:"customer_id"`
	PurchaseDate  time.Time `json:"purchase_date"`
	Monetary      float64   `json:"monetary"`
	DaysSincePrev *int64    `json:"days_between_purchases"`
}

type customerDayKey struct {
	customerID float64
	day        int64
}

// BuildInvoiceDayAggregates groups transactions per customer and UTC
// purchase day, then fills each day's gap to the customer's previous
// purchase day. The first purchase of a customer has no gap. Output is
// ordered by customer id then purchase day; grouping goes through a map,
// so input order never leaks into the result.
func BuildInvoiceDayAggregates(transactions []TransactionRecord) []InvoiceDayAggregate {
	amounts := make(map[customerDayKey]float64)
	for i := range transactions {
		t := &transactions[i]
		if t.CustomerID == nil {
			continue
		}
		day := U.BeginningOfDayZ(t.PurchasedAt)
		key := customerDayKey{customerID: *t.CustomerID, day: day.Unix()}
		amounts[key] += t.LineAmount()
	}

	aggregates := make([]InvoiceDayAggregate, 0, len(amounts))
	for key, monetary := range amounts {
		aggregates = append(aggregates, InvoiceDayAggregate{
			CustomerID:   key.customerID,
			PurchaseDate: time.Unix(key.day, 0).UTC(),
			Monetary:     monetary,
		})
	}

	sort.Slice(aggregates, func(i, j int) bool {
		if aggregates[i].CustomerID != aggregates[j].CustomerID {
			return aggregates[i].CustomerID < aggregates[j].CustomerID
		}
		return aggregates[i].PurchaseDate.Before(aggregates[j].PurchaseDate)
	})

	for i := 1; i < len(aggregates); i++ {
		if aggregates[i].CustomerID != aggregates[i-1].CustomerID {
			continue
		}
		gap := U.DaysBetweenZ(aggregates[i].PurchaseDate, aggregates[i-1].PurchaseDate)
		aggregates[i].DaysSincePrev = &gap
	}

	return aggregates
}
