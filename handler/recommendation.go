package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"retailpulse/metrics"
	mid "retailpulse/middleware"
	"retailpulse/profilestore"
	"retailpulse/recommend"
	U "retailpulse/util"
)

// Test command.
// curl -i -X GET http://localhost:8080/api/customer/12345/recommendation
func GetRecommendationHandler(c *gin.Context) {
	customerIDParam := c.Params.ByName("customer_id")
	logCtx := log.WithFields(log.Fields{
		"reqId":       U.GetScopeByKeyAsString(c, mid.SCOPE_REQUEST_ID),
		"customer_id": customerIDParam,
	})

	customerID, err := strconv.ParseFloat(customerIDParam, 64)
	if err != nil {
		logCtx.WithError(err).Error("GetRecommendation Failed. Invalid customer id.")
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Invalid customer id on param.",
			"status": http.StatusBadRequest,
		})
		return
	}

	profile, errCode := profilestore.GetStore().GetProfile(customerID)
	if errCode == http.StatusNotFound {
		metrics.Increment(metrics.IncrRecommendationMiss)
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "Customer not found.",
			"status": http.StatusNotFound,
		})
		return
	}
	if errCode != http.StatusFound {
		logCtx.WithField("err_code", errCode).Error("GetRecommendation Failed. Store error.")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get customer profile."})
		return
	}

	metrics.Increment(metrics.IncrRecommendationServed)

	c.JSON(http.StatusOK, gin.H{
		"customer":       profile,
		"recommendation": recommend.ForCustomer(profile),
	})
}
