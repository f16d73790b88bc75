package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"retailpulse/rfm"
)

func TestForCustomerMonthlyHighValue(t *testing.T) {
	profile := &rfm.CustomerProfile{
		CustomerID: 12345,
		Recency:    5,
		Frequency:  12,
		Monetary:   9000.5,
		Segment:    rfm.SegmentMonthlyHighValue,
	}

	text := ForCustomer(profile)
	assert.Contains(t, text, "Reward consistency and loyalty")
	assert.Contains(t, text, "purchased 12 times")
	assert.Contains(t, text, "$9000.5 annually")
	assert.Contains(t, text, "occurring 5 days ago")
}

func TestForCustomerSeasonal(t *testing.T) {
	profile := &rfm.CustomerProfile{
		CustomerID: 12345,
		Recency:    120,
		Frequency:  4,
		Monetary:   2000,
		Segment:    rfm.SegmentSeasonal,
	}

	text := ForCustomer(profile)
	assert.Contains(t, text, "Time outreach around known buying cycles")
	assert.Contains(t, text, "last purchased 120 days ago")
	assert.Contains(t, text, "With 4 purchases and $2000 annual spend")
}

func TestForCustomerExperimental(t *testing.T) {
	profile := &rfm.CustomerProfile{
		CustomerID: 12345,
		Recency:    200,
		Frequency:  1,
		Monetary:   90,
		Segment:    rfm.SegmentExperimental,
	}

	text := ForCustomer(profile)
	assert.Contains(t, text, "Reduce friction and risk")
	assert.Contains(t, text, "purchased only 1 times")
	assert.Contains(t, text, "$90 annually")
	assert.Contains(t, text, "With 200 days since their last order")
}

func TestForCustomerUnknownSegmentFallsBack(t *testing.T) {
	profile := &rfm.CustomerProfile{
		CustomerID: 12345,
		Recency:    10,
		Frequency:  2,
		Monetary:   50,
		Segment:    "Mystery Shoppers",
	}

	assert.Contains(t, ForCustomer(profile), "Reduce friction and risk")
}
