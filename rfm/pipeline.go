// Package rfm builds behavioral customer profiles out of raw retail
// transactions: recency, frequency and monetary features, churn risk
// labels and a clustered segment per customer.
package rfm

import (
	"time"

	U "retailpulse/util"
)

// BuildCustomerProfiles runs the whole profiling pipeline over raw
// transactions. Invalid rows are dropped, never fatal, so a fully bad
// input yields an empty result instead of an error. Output is ordered by
// customer id.
func BuildCustomerProfiles(transactions []TransactionRecord) []CustomerProfile {
	cleaned := CleanTransactions(transactions)
	if len(cleaned) == 0 {
		return make([]CustomerProfile, 0)
	}

	referenceDay := MaxPurchaseDay(cleaned)
	invoices := BuildInvoiceDayAggregates(cleaned)
	profiles := BuildCustomerAggregates(invoices, referenceDay)
	AssignChurnRisk(profiles)
	AssignSegments(profiles)

	return profiles
}

// MaxPurchaseDay is the latest UTC purchase day in the set, the pipeline's
// stand in for today.
func MaxPurchaseDay(transactions []TransactionRecord) time.Time {
	maxDay := U.BeginningOfDayZ(transactions[0].PurchasedAt)
	for i := 1; i < len(transactions); i++ {
		day := U.BeginningOfDayZ(transactions[i].PurchasedAt)
		if day.After(maxDay) {
			maxDay = day
		}
	}
	return maxDay
}
