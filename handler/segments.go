package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"retailpulse/metrics"
	mid "retailpulse/middleware"
	"retailpulse/profilestore"
	"retailpulse/report"
	U "retailpulse/util"
)

// Test command.
// curl -i -X GET http://localhost:8080/api/segments/statistics
func GetSegmentStatisticsHandler(c *gin.Context) {
	logCtx := log.WithFields(log.Fields{
		"reqId": U.GetScopeByKeyAsString(c, mid.SCOPE_REQUEST_ID),
	})

	stats, errCode := profilestore.GetStore().GetSegmentStatistics()
	if errCode == http.StatusNotFound {
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "No processed dataset. Upload transactions first.",
			"status": http.StatusNotFound,
		})
		return
	}
	if errCode != http.StatusFound {
		logCtx.WithField("err_code", errCode).Error("GetSegmentStatistics Failed. Store error.")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get segment statistics."})
		return
	}

	// Chart rendering is best effort, the rows matter more.
	chartURL, err := report.GetChurnRiskChartURL(stats)
	if err != nil {
		logCtx.WithError(err).Warn("Failed to build churn risk chart url")
	}
	tableURL, err := report.GetSegmentStatisticsTableURL(stats)
	if err != nil {
		logCtx.WithError(err).Warn("Failed to build segment table url")
	}

	metrics.Increment(metrics.IncrSegmentStatisticsServed)

	c.JSON(http.StatusOK, gin.H{
		"segment_statistics": stats,
		"chart_url":          chartURL,
		"table_url":          tableURL,
	})
}
