package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"retailpulse/rfm"
)

func TestProcessDataEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := uploadFile(t, router, "transactions.csv", sampleTransactionsCSV())
	assert.Equal(t, http.StatusOK, w.Code)

	var response processDataResponse
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Equal(t, "success", response.Status)
	assert.NotEmpty(t, response.Message)
	assert.Equal(t, 12, response.TotalCustomers)
	assert.Len(t, response.Data, 12)

	// Every profile lands in one of the three named segments.
	for _, profile := range response.Data {
		assert.Contains(t, rfm.SegmentNames(), profile.Segment)
	}

	// Last stats row is always the Total rollup.
	assert.NotEmpty(t, response.SegmentStatistics)
	assert.Equal(t, rfm.SegmentTotalRow, response.SegmentStatistics[len(response.SegmentStatistics)-1].Segment)
}

func TestProcessDataResponseOrdering(t *testing.T) {
	router := newTestRouter(t)

	w := uploadFile(t, router, "transactions.csv", sampleTransactionsCSV())
	assert.Equal(t, http.StatusOK, w.Code)

	var response processDataResponse
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &response))

	sawNilRatio := false
	var prevRatio float64
	for i, profile := range response.Data {
		if profile.ChurnRatio == nil {
			sawNilRatio = true
			continue
		}

		// Customers without a ratio sort after every ranked customer.
		assert.False(t, sawNilRatio, "ranked customer after unranked one at row %d", i)
		if i > 0 && response.Data[i-1].ChurnRatio != nil {
			assert.True(t, prevRatio >= *profile.ChurnRatio)
		}
		prevRatio = *profile.ChurnRatio
	}
}

func TestProcessDataPopulatesStore(t *testing.T) {
	router := newTestRouter(t)

	w := uploadFile(t, router, "transactions.csv", sampleTransactionsCSV())
	assert.Equal(t, http.StatusOK, w.Code)

	statusRecorder := doGet(router, "/status")
	assert.Equal(t, http.StatusOK, statusRecorder.Code)

	var statusBody map[string]interface{}
	assert.Nil(t, json.Unmarshal(statusRecorder.Body.Bytes(), &statusBody))
	assert.Equal(t, float64(12), statusBody["profiles_cached"])
	assert.Equal(t, "healthy", statusBody["status"])
}

func TestProcessDataEmptyUpload(t *testing.T) {
	router := newTestRouter(t)

	header := "Invoice,StockCode,Description,Quantity,InvoiceDate,Price,Customer ID,Country\n"
	w := uploadFile(t, router, "transactions.csv", header)
	assert.Equal(t, http.StatusOK, w.Code)

	var response processDataResponse
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Equal(t, 0, response.TotalCustomers)
	assert.Len(t, response.SegmentStatistics, 1)
	assert.Equal(t, rfm.SegmentTotalRow, response.SegmentStatistics[0].Segment)
}

func TestProcessDataRejectsUnsupportedFormat(t *testing.T) {
	router := newTestRouter(t)

	w := uploadFile(t, router, "transactions.parquet", "not parsed")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "csv")
}

func TestProcessDataMissingFile(t *testing.T) {
	router := newTestRouter(t)

	w := doPost(router, "/api/process-data", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProcessDataBadRows(t *testing.T) {
	router := newTestRouter(t)

	input := "Invoice,StockCode,Description,Quantity,InvoiceDate,Price,Customer ID,Country\n" +
		"INV001,PROD001,Widget,many,2023-01-01 10:00:00,9.99,1000,United Kingdom\n"
	w := uploadFile(t, router, "transactions.csv", input)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "row 2")
}
