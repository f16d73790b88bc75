package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"retailpulse/rfm"
)

func TestSegmentStatisticsBeforeUpload(t *testing.T) {
	router := newTestRouter(t)

	recorder := doGet(router, "/api/segments/statistics")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestSegmentStatisticsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := uploadFile(t, router, "transactions.csv", sampleTransactionsCSV())
	assert.Equal(t, http.StatusOK, w.Code)

	recorder := doGet(router, "/api/segments/statistics")
	assert.Equal(t, http.StatusOK, recorder.Code)

	var response segmentStatisticsResponse
	assert.Nil(t, json.Unmarshal(recorder.Body.Bytes(), &response))

	assert.NotEmpty(t, response.SegmentStatistics)
	assert.Equal(t, rfm.SegmentTotalRow,
		response.SegmentStatistics[len(response.SegmentStatistics)-1].Segment)

	assert.Contains(t, response.ChartURL, "quickchart.io")
	assert.Contains(t, response.TableURL, "quickchart.io")
}

func TestStatusEndpoint(t *testing.T) {
	router := newTestRouter(t)

	recorder := doGet(router, "/status")
	assert.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]interface{}
	assert.Nil(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "handler_test", body["app_name"])
}
