package rfm

import (
	"sort"
	"time"

	U "retailpulse/util"
)

// CustomerProfile is the per customer view everything downstream works
// on. ChurnRatio and ChurnLabel stay nil when the customer has no usable
// purchase cadence; the API contract serializes them as null.
type CustomerProfile struct {
	CustomerID         float64  `json:"customer_id"`
	Recency            int64    `json:"recency"`
	Frequency          int64    `json:"frequency"`
	Monetary           float64  `json:"monetary"`
	MedianPurchaseDays float64  `json:"median_purchase_days"`
	ChurnRatio         *float64 `json:"churn_ratio"`
	ChurnLabel         *string  `json:"churn_label"`
	MonetaryLog        float64  `json:"monetary_log"`
	ClusterAssignment  int      `json:"cluster_assignment"`
	Segment            string   `json:"segment"`
}

// BuildCustomerAggregates folds invoice day aggregates into one profile
// per customer with recency, frequency, monetary and the median purchase
// gap. referenceDay is the dataset's latest purchase day and anchors
// recency. Input must be ordered by customer id then purchase day, the
// order BuildInvoiceDayAggregates emits.
func BuildCustomerAggregates(invoices []InvoiceDayAggregate, referenceDay time.Time) []CustomerProfile {
	profiles := make([]CustomerProfile, 0)
	if len(invoices) == 0 {
		return profiles
	}

	start := 0
	for i := 1; i <= len(invoices); i++ {
		if i < len(invoices) && invoices[i].CustomerID == invoices[start].CustomerID {
			continue
		}
		profiles = append(profiles, buildProfile(invoices[start:i], referenceDay))
		start = i
	}

	return profiles
}

func buildProfile(invoices []InvoiceDayAggregate, referenceDay time.Time) CustomerProfile {
	var monetary float64
	gaps := make([]float64, 0, len(invoices))
	for i := range invoices {
		monetary += invoices[i].Monetary
		if invoices[i].DaysSincePrev != nil {
			gaps = append(gaps, float64(*invoices[i].DaysSincePrev))
		}
	}

	lastDay := invoices[len(invoices)-1].PurchaseDate
	recency := U.DaysBetweenZ(referenceDay, lastDay)

	// Customers with a single purchase day have no gap to take a median
	// over. Recency stands in for the cadence.
	medianDays := float64(recency)
	if len(gaps) > 0 {
		medianDays = median(gaps)
	}

	return CustomerProfile{
		CustomerID:         invoices[0].CustomerID,
		Recency:            recency,
		Frequency:          int64(len(invoices)),
		Monetary:           monetary,
		MedianPurchaseDays: medianDays,
	}
}

// median of a non empty slice. Mean of the two middles on even counts.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
