package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"retailpulse/rfm"
	U "retailpulse/util"
)

// Csv frames mirror the stages of the pipeline so a run can be
// inspected or replayed offline.

func WriteTransactionsCSV(w io.Writer, transactions []rfm.TransactionRecord) error {
	writer := csv.NewWriter(w)

	header := []string{"invoice_id", "stock_code", "description", "quantity",
		"unit_price", "customer_id", "purchased_at", "country", "line_amount"}
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "failed to write transactions header")
	}

	for i := range transactions {
		txn := &transactions[i]
		customerID := ""
		if txn.CustomerID != nil {
			customerID = U.FloatToString(*txn.CustomerID)
		}

		record := []string{
			txn.InvoiceNo,
			txn.StockCode,
			txn.Description,
			strconv.FormatInt(txn.Quantity, 10),
			U.FloatToString(txn.UnitPrice),
			customerID,
			txn.PurchasedAt.UTC().Format(U.DATETIME_FORMAT_DB),
			txn.Country,
			U.FloatToString(txn.LineAmount()),
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(err, "failed to write transaction row %d", i+2)
		}
	}

	writer.Flush()
	return errors.Wrap(writer.Error(), "failed to flush transactions csv")
}

func WriteInvoiceAggregatesCSV(w io.Writer, invoices []rfm.InvoiceDayAggregate) error {
	writer := csv.NewWriter(w)

	header := []string{"customer_id", "purchase_date", "monetary", "days_between_purchases"}
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "failed to write invoices header")
	}

	for i := range invoices {
		invoice := &invoices[i]
		daysSincePrev := ""
		if invoice.DaysSincePrev != nil {
			daysSincePrev = strconv.FormatInt(*invoice.DaysSincePrev, 10)
		}

		record := []string{
			U.FloatToString(invoice.CustomerID),
			invoice.PurchaseDate.UTC().Format(U.DATETIME_FORMAT_YYYYMMDD_HYPHEN),
			U.FloatToString(invoice.Monetary),
			daysSincePrev,
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(err, "failed to write invoice row %d", i+2)
		}
	}

	writer.Flush()
	return errors.Wrap(writer.Error(), "failed to flush invoices csv")
}

func WriteCustomerProfilesCSV(w io.Writer, profiles []rfm.CustomerProfile) error {
	writer := csv.NewWriter(w)

	header := []string{"customer_id", "recency", "frequency", "monetary",
		"median_purchase_days", "churn_ratio", "churn_label", "monetary_log",
		"cluster_assignment", "segment"}
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "failed to write profiles header")
	}

	for i := range profiles {
		profile := &profiles[i]
		churnRatio := ""
		if profile.ChurnRatio != nil {
			churnRatio = U.FloatToString(*profile.ChurnRatio)
		}
		churnLabel := ""
		if profile.ChurnLabel != nil {
			churnLabel = *profile.ChurnLabel
		}

		record := []string{
			U.FloatToString(profile.CustomerID),
			strconv.FormatInt(profile.Recency, 10),
			strconv.FormatInt(profile.Frequency, 10),
			U.FloatToString(profile.Monetary),
			U.FloatToString(profile.MedianPurchaseDays),
			churnRatio,
			churnLabel,
			U.FloatToString(profile.MonetaryLog),
			strconv.Itoa(profile.ClusterAssignment),
			profile.Segment,
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(err, "failed to write profile row %d", i+2)
		}
	}

	writer.Flush()
	return errors.Wrap(writer.Error(), "failed to flush profiles csv")
}

func WriteSegmentStatisticsCSV(w io.Writer, stats []rfm.SegmentStatistic) error {
	writer := csv.NewWriter(w)

	header := []string{"segment", "high_risk_count", "medium_risk_count",
		"med_high_ratio", "med_high_monetary_sum"}
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "failed to write stats header")
	}

	for i := range stats {
		row := &stats[i]
		record := []string{
			row.Segment,
			strconv.FormatInt(row.HighRiskCount, 10),
			strconv.FormatInt(row.MediumRiskCount, 10),
			U.FloatToString(row.MedHighRatio),
			U.FloatToString(row.MedHighMonetarySum),
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(err, "failed to write stats row %d", i+2)
		}
	}

	writer.Flush()
	return errors.Wrap(writer.Error(), "failed to flush stats csv")
}
