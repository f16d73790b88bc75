// Package ingest parses retail transaction exports into records the
// profiling pipeline consumes. Parse failures carry row and column
// context so uploads can be rejected with a usable message.
package ingest

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"retailpulse/rfm"
	U "retailpulse/util"
)

// Column names of the retail export schema.
const (
	colInvoice     = "Invoice"
	colStockCode   = "StockCode"
	colDescription = "Description"
	colQuantity    = "Quantity"
	colInvoiceDate = "InvoiceDate"
	colPrice       = "Price"
	colCustomerID  = "Customer ID"
	colCountry     = "Country"
)

// Header order is free and extra columns are ignored, but these must all
// be present.
var requiredColumns = []string{colInvoice, colQuantity, colInvoiceDate, colPrice, colCustomerID}

var timestampLayouts = []string{
	time.RFC3339,
	U.DATETIME_FORMAT_DB,
	"2006-01-02 15:04",
	U.DATETIME_FORMAT_YYYYMMDD_HYPHEN,
	"1/2/06 15:04", // excel's default datetime rendering
}

// SupportedUpload reports whether the file extension has a parser.
func SupportedUpload(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".xlsx":
		return true
	}
	return false
}

// ReadTransactionsFile dispatches on the upload's extension.
func ReadTransactionsFile(filename string, r io.Reader) ([]rfm.TransactionRecord, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ReadTransactionsCSV(r)
	case ".xlsx":
		return ReadTransactionsXLSX(r)
	}
	return nil, errors.Errorf("unsupported upload format %q, use csv or xlsx", filepath.Ext(filename))
}

// ReadTransactionsCSV parses a headered csv transaction export.
func ReadTransactionsCSV(r io.Reader) ([]rfm.TransactionRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read csv")
	}
	return transactionsFromRows(rows)
}

func transactionsFromRows(rows [][]string) ([]rfm.TransactionRecord, error) {
	if len(rows) == 0 {
		return nil, errors.New("upload has no header row")
	}

	index, err := buildHeaderIndex(rows[0])
	if err != nil {
		return nil, err
	}

	transactions := make([]rfm.TransactionRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		rowNum := i + 2 // 1 based, header included
		txn, err := transactionFromRow(row, index, rowNum)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, txn)
	}
	return transactions, nil
}

func buildHeaderIndex(header []string) (map[string]int, error) {
	index := make(map[string]int)
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	for _, name := range requiredColumns {
		if _, exists := index[name]; !exists {
			return nil, errors.Errorf("missing column %q on upload header", name)
		}
	}
	return index, nil
}

func transactionFromRow(row []string, index map[string]int, rowNum int) (rfm.TransactionRecord, error) {
	var txn rfm.TransactionRecord
	txn.InvoiceNo = cell(row, index, colInvoice)
	txn.StockCode = cell(row, index, colStockCode)
	txn.Description = cell(row, index, colDescription)
	txn.Country = cell(row, index, colCountry)

	quantity, err := strconv.ParseInt(cell(row, index, colQuantity), 10, 64)
	if err != nil {
		return txn, errors.Wrapf(err, "row %d: bad %s value", rowNum, colQuantity)
	}
	txn.Quantity = quantity

	price, err := strconv.ParseFloat(cell(row, index, colPrice), 64)
	if err != nil {
		return txn, errors.Wrapf(err, "row %d: bad %s value", rowNum, colPrice)
	}
	txn.UnitPrice = price

	purchasedAt, err := parseTimestamp(cell(row, index, colInvoiceDate))
	if err != nil {
		return txn, errors.Wrapf(err, "row %d: bad %s value", rowNum, colInvoiceDate)
	}
	txn.PurchasedAt = purchasedAt

	// A blank customer cell is a valid guest row. The cleaner drops it.
	if raw := cell(row, index, colCustomerID); raw != "" {
		customerID, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return txn, errors.Wrapf(err, "row %d: bad %s value", rowNum, colCustomerID)
		}
		txn.CustomerID = &customerID
	}

	return txn, nil
}

func cell(row []string, index map[string]int, name string) string {
	i, exists := index[name]
	if !exists || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlankRow(row []string) bool {
	for _, value := range row {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.Errorf("unrecognized timestamp %q", value)
}
