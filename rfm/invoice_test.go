package rfm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildInvoiceDayAggregates(t *testing.T) {
	customer := floatPtr(12345)
	transactions := []TransactionRecord{
		testTxn(customer, testBase, 5, 10.0),                  // day 0: 50
		testTxn(customer, testBase.Add(4*time.Hour), 3, 15.0), // day 0: 45
		testTxn(customer, testBase.AddDate(0, 0, 30), 2, 10.0),
	}

	aggregates := BuildInvoiceDayAggregates(transactions)

	assert.Len(t, aggregates, 2)

	// Same calendar day collapses into one purchase event.
	assert.Equal(t, 95.0, aggregates[0].Monetary)
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), aggregates[0].PurchaseDate)
	assert.Nil(t, aggregates[0].DaysSincePrev)

	assert.Equal(t, 20.0, aggregates[1].Monetary)
	assert.NotNil(t, aggregates[1].DaysSincePrev)
	assert.Equal(t, int64(30), *aggregates[1].DaysSincePrev)
}

func TestBuildInvoiceDayAggregatesOrderIndependent(t *testing.T) {
	a := floatPtr(12345)
	b := floatPtr(67890)
	transactions := []TransactionRecord{
		testTxn(b, testBase.AddDate(0, 0, 10), 1, 30.0),
		testTxn(a, testBase.AddDate(0, 0, 5), 2, 10.0),
		testTxn(a, testBase, 1, 10.0),
		testTxn(b, testBase, 1, 20.0),
	}
	reversed := make([]TransactionRecord, 0, len(transactions))
	for i := len(transactions) - 1; i >= 0; i-- {
		reversed = append(reversed, transactions[i])
	}

	assert.Equal(t, BuildInvoiceDayAggregates(transactions), BuildInvoiceDayAggregates(reversed))

	aggregates := BuildInvoiceDayAggregates(transactions)
	assert.Len(t, aggregates, 4)

	// Ordered by customer id then purchase day.
	assert.Equal(t, 12345.0, aggregates[0].CustomerID)
	assert.Equal(t, 12345.0, aggregates[1].CustomerID)
	assert.Equal(t, 67890.0, aggregates[2].CustomerID)
	assert.Equal(t, 67890.0, aggregates[3].CustomerID)
	assert.True(t, aggregates[0].PurchaseDate.Before(aggregates[1].PurchaseDate))
	assert.True(t, aggregates[2].PurchaseDate.Before(aggregates[3].PurchaseDate))

	assert.Equal(t, int64(5), *aggregates[1].DaysSincePrev)
	assert.Equal(t, int64(10), *aggregates[3].DaysSincePrev)
}

func TestBuildInvoiceDayAggregatesSkipsNilCustomer(t *testing.T) {
	// The cleaner normally removes these, but the aggregator called on its
	// own must not panic on them.
	transactions := []TransactionRecord{
		testTxn(nil, testBase, 1, 10.0),
		testTxn(floatPtr(1), testBase, 1, 10.0),
	}

	aggregates := BuildInvoiceDayAggregates(transactions)
	assert.Len(t, aggregates, 1)
	assert.Equal(t, 1.0, aggregates[0].CustomerID)
}
