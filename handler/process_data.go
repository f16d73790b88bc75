package handler

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"retailpulse/ingest"
	"retailpulse/metrics"
	mid "retailpulse/middleware"
	"retailpulse/profilestore"
	"retailpulse/rfm"
	U "retailpulse/util"
)

// Test command.
// curl -i -X POST http://localhost:8080/api/process-data -F "file=@transactions.csv"
func ProcessDataHandler(c *gin.Context) {
	logCtx := log.WithFields(log.Fields{
		"reqId": U.GetScopeByKeyAsString(c, mid.SCOPE_REQUEST_ID),
	})

	metrics.Increment(metrics.IncrUploadOverallCount)
	startTime := time.Now()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		metrics.Increment(metrics.IncrUploadRejectedCount)
		logCtx.WithError(err).Error("ProcessData Failed. Missing upload file.")
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Missing form field 'file' on upload.",
			"status": http.StatusBadRequest,
		})
		return
	}

	if !ingest.SupportedUpload(fileHeader.Filename) {
		metrics.Increment(metrics.IncrUploadRejectedCount)
		logCtx.WithField("filename", fileHeader.Filename).Error("ProcessData Failed. Unsupported file format.")
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Unsupported file format. Upload a csv or xlsx export.",
			"status": http.StatusBadRequest,
		})
		return
	}

	metrics.RecordBytesSize(metrics.BytesUploadSize, float64(fileHeader.Size))

	file, err := fileHeader.Open()
	if err != nil {
		logCtx.WithError(err).Error("ProcessData Failed. Could not open upload.")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload."})
		return
	}
	defer file.Close()

	transactions, err := ingest.ReadTransactionsFile(fileHeader.Filename, file)
	if err != nil {
		metrics.Increment(metrics.IncrUploadRejectedCount)
		logCtx.WithError(err).Error("ProcessData Failed. Parse error on upload.")
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  err.Error(),
			"status": http.StatusBadRequest,
		})
		return
	}

	profiles := rfm.BuildCustomerProfiles(transactions)
	stats := rfm.SummarizeSegments(profiles)

	if errCode := profilestore.GetStore().ReplaceProfiles(profiles, stats); errCode != http.StatusCreated {
		logCtx.WithField("err_code", errCode).Error("ProcessData Failed. Could not store profiling run.")
		c.JSON(errCode, gin.H{"error": "Failed to store profiling run."})
		return
	}

	sortProfilesForResponse(profiles)

	metrics.Increment(metrics.IncrUploadProcessedCount)
	metrics.RecordLatency(metrics.LatencyUploadProcessing, float64(time.Since(startTime).Milliseconds()))
	metrics.CountInt(metrics.CountProfiledCustomers, int64(len(profiles)))

	logCtx.WithFields(log.Fields{
		"transactions": len(transactions),
		"customers":    len(profiles),
	}).Info("Processed transaction upload")

	c.JSON(http.StatusOK, gin.H{
		"status":             "success",
		"message":            fmt.Sprintf("Processed %d transactions into %d customer profiles", len(transactions), len(profiles)),
		"data":               profiles,
		"total_customers":    len(profiles),
		"segment_statistics": stats,
	})
}

// Response rows are ordered most at risk first. Customers without a
// churn ratio go last, spend breaks ties.
func sortProfilesForResponse(profiles []rfm.CustomerProfile) {
	sort.SliceStable(profiles, func(i, j int) bool {
		a, b := &profiles[i], &profiles[j]
		if (a.ChurnRatio == nil) != (b.ChurnRatio == nil) {
			return b.ChurnRatio == nil
		}
		if a.ChurnRatio != nil && *a.ChurnRatio != *b.ChurnRatio {
			return *a.ChurnRatio > *b.ChurnRatio
		}
		return a.Monetary > b.Monetary
	})
}
