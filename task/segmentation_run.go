package task

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/rs/xid"
	log "github.com/sirupsen/logrus"

	"retailpulse/filestore"
	"retailpulse/ingest"
	"retailpulse/metrics"
	"retailpulse/profilestore"
	"retailpulse/report"
	"retailpulse/rfm"
)

var segLog = taskLog.WithField("prefix", "Task#RunSegmentation")

// RunSegmentation profiles one dataset export end to end: parse the raw
// transactions, build customer profiles, then write every stage of the
// run as an artifact under runs/<run_id>/. Returns the job status map
// and whether the run succeeded.
func RunSegmentation(dataset string, configs map[string]interface{}) (map[string]interface{}, bool) {
	cloudManager := configs["cloudManager"].(*filestore.FileManager)
	sourceFile := configs["sourceFile"].(string)
	publishProfiles := configs["publishProfiles"].(*bool)

	status := make(map[string]interface{})
	if dataset == "" {
		status["error"] = "invalid dataset"
		return status, false
	}
	if sourceFile == "" {
		status["error"] = "invalid source file"
		return status, false
	}
	if !ingest.SupportedUpload(sourceFile) {
		status["error"] = "unsupported source file format"
		return status, false
	}

	metrics.Increment(metrics.IncrSegmentJobRuns)
	startTime := time.Now()

	runID := xid.New().String()
	status["run_id"] = runID
	logCtx := segLog.WithFields(log.Fields{"dataset": dataset, "run_id": runID, "source_file": sourceFile})

	sourcePath, sourceName := (*cloudManager).GetDatasetFilePathAndName(dataset, sourceFile)
	source, err := (*cloudManager).Get(sourcePath, sourceName)
	if err != nil {
		logCtx.WithError(err).Error("Failed to open dataset source file.")
		metrics.Increment(metrics.IncrSegmentJobFailures)
		status["source-error"] = err.Error()
		return status, false
	}
	defer source.Close()

	transactions, err := ingest.ReadTransactionsFile(sourceFile, source)
	if err != nil {
		logCtx.WithError(err).Error("Failed to parse dataset source file.")
		metrics.Increment(metrics.IncrSegmentJobFailures)
		status["parse-error"] = err.Error()
		return status, false
	}
	status["transactions"] = len(transactions)

	cleaned := rfm.CleanTransactions(transactions)
	invoices := rfm.BuildInvoiceDayAggregates(cleaned)

	var profiles []rfm.CustomerProfile
	if len(cleaned) == 0 {
		profiles = make([]rfm.CustomerProfile, 0)
	} else {
		profiles = rfm.BuildCustomerAggregates(invoices, rfm.MaxPurchaseDay(cleaned))
		rfm.AssignChurnRisk(profiles)
		rfm.AssignSegments(profiles)
	}
	stats := rfm.SummarizeSegments(profiles)
	status["customers"] = len(profiles)

	artifacts := []struct {
		stage string
		path  string
		file  string
		write func(io.Writer) error
	}{
		{stage: "transactions", write: func(w io.Writer) error { return report.WriteTransactionsCSV(w, cleaned) }},
		{stage: "invoices", write: func(w io.Writer) error { return report.WriteInvoiceAggregatesCSV(w, invoices) }},
		{stage: "customers", write: func(w io.Writer) error { return report.WriteCustomerProfilesCSV(w, profiles) }},
		{stage: "stats", write: func(w io.Writer) error { return report.WriteSegmentStatisticsCSV(w, stats) }},
	}
	artifacts[0].path, artifacts[0].file = (*cloudManager).GetRunTransactionsFilePathAndName(dataset, runID)
	artifacts[1].path, artifacts[1].file = (*cloudManager).GetRunInvoicesFilePathAndName(dataset, runID)
	artifacts[2].path, artifacts[2].file = (*cloudManager).GetRunCustomersFilePathAndName(dataset, runID)
	artifacts[3].path, artifacts[3].file = (*cloudManager).GetRunStatsFilePathAndName(dataset, runID)

	for _, artifact := range artifacts {
		var buf bytes.Buffer
		if err := artifact.write(&buf); err != nil {
			logCtx.WithError(err).Error("Failed to render run artifact: ", artifact.stage)
			metrics.Increment(metrics.IncrSegmentJobFailures)
			status[artifact.stage+"-error"] = err.Error()
			return status, false
		}
		if err := (*cloudManager).Create(artifact.path, artifact.file, &buf); err != nil {
			logCtx.WithError(err).Error("Failed to write run artifact: ", artifact.stage)
			metrics.Increment(metrics.IncrSegmentJobFailures)
			status[artifact.stage+"-error"] = err.Error()
			return status, false
		}
	}

	workbook, err := report.BuildProfilesWorkbook(profiles, stats)
	if err != nil {
		logCtx.WithError(err).Error("Failed to build profiles workbook.")
		metrics.Increment(metrics.IncrSegmentJobFailures)
		status["workbook-error"] = err.Error()
		return status, false
	}
	workbookPath, workbookName := (*cloudManager).GetRunWorkbookFilePathAndName(dataset, runID)
	if err := (*cloudManager).Create(workbookPath, workbookName, workbook); err != nil {
		logCtx.WithError(err).Error("Failed to write profiles workbook.")
		metrics.Increment(metrics.IncrSegmentJobFailures)
		status["workbook-error"] = err.Error()
		return status, false
	}

	// Chart rendering is best effort, the artifacts matter more.
	if chartURL, err := report.GetChurnRiskChartURL(stats); err == nil {
		status["chart_url"] = chartURL
	} else {
		logCtx.WithError(err).Warn("Failed to build churn risk chart url.")
	}
	if tableURL, err := report.GetSegmentStatisticsTableURL(stats); err == nil {
		status["table_url"] = tableURL
	} else {
		logCtx.WithError(err).Warn("Failed to build segment statistics table url.")
	}

	if *publishProfiles {
		errCode := profilestore.GetStore().ReplaceProfiles(profiles, stats)
		if errCode != http.StatusCreated {
			logCtx.Error("Failed to publish profiles to the store: ", errCode)
			metrics.Increment(metrics.IncrSegmentJobFailures)
			status["publish-error"] = errCode
			return status, false
		}
		status["published"] = len(profiles)
	}

	metrics.CountInt(metrics.CountProfiledCustomers, int64(len(profiles)))
	metrics.RecordLatency(metrics.LatencySegmentJob, float64(time.Since(startTime).Milliseconds()))

	logCtx.WithFields(log.Fields{"transactions": len(transactions), "customers": len(profiles)}).
		Info("Segmentation run finished.")
	return status, true
}
