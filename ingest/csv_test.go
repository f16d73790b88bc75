package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReadTransactionsCSV(t *testing.T) {
	input := strings.Join([]string{
		"Invoice,StockCode,Description,Quantity,InvoiceDate,Price,Customer ID,Country",
		"INV001,PROD001,White Mug,6,2023-01-01 10:30:00,2.5,12345,United Kingdom",
		"INV002,PROD002,Red Lamp,1,2023-01-31 09:00:00,40,12345,United Kingdom",
	}, "\n")

	transactions, err := ReadTransactionsCSV(strings.NewReader(input))
	assert.Nil(t, err)
	assert.Len(t, transactions, 2)

	first := transactions[0]
	assert.Equal(t, "INV001", first.InvoiceNo)
	assert.Equal(t, "PROD001", first.StockCode)
	assert.Equal(t, "White Mug", first.Description)
	assert.Equal(t, int64(6), first.Quantity)
	assert.Equal(t, 2.5, first.UnitPrice)
	assert.Equal(t, "United Kingdom", first.Country)
	assert.NotNil(t, first.CustomerID)
	assert.Equal(t, 12345.0, *first.CustomerID)
	assert.Equal(t, time.Date(2023, 1, 1, 10, 30, 0, 0, time.UTC), first.PurchasedAt)

	assert.Equal(t, 40.0, transactions[1].UnitPrice)
}

func TestReadTransactionsCSVHeaderOrderIsFree(t *testing.T) {
	input := strings.Join([]string{
		"Country,Customer ID,Price,InvoiceDate,Quantity,Description,StockCode,Invoice,Batch",
		"France,777,9.99,2023-02-10 12:00:00,3,Blue Vase,PROD009,INV009,ignored",
	}, "\n")

	transactions, err := ReadTransactionsCSV(strings.NewReader(input))
	assert.Nil(t, err)
	assert.Len(t, transactions, 1)
	assert.Equal(t, "INV009", transactions[0].InvoiceNo)
	assert.Equal(t, int64(3), transactions[0].Quantity)
	assert.Equal(t, 9.99, transactions[0].UnitPrice)
	assert.Equal(t, 777.0, *transactions[0].CustomerID)
}

func TestReadTransactionsCSVBlankCustomerIsNil(t *testing.T) {
	input := strings.Join([]string{
		"Invoice,StockCode,Description,Quantity,InvoiceDate,Price,Customer ID,Country",
		"INV003,PROD003,Guest Sale,2,2023-01-05 15:00:00,5,,United Kingdom",
	}, "\n")

	transactions, err := ReadTransactionsCSV(strings.NewReader(input))
	assert.Nil(t, err)
	assert.Len(t, transactions, 1)
	assert.Nil(t, transactions[0].CustomerID)
}

func TestReadTransactionsCSVAcceptsRFC3339(t *testing.T) {
	input := strings.Join([]string{
		"Invoice,StockCode,Description,Quantity,InvoiceDate,Price,Customer ID,Country",
		"INV004,PROD004,Clock,1,2023-03-01T08:26:00Z,12,555,Germany",
	}, "\n")

	transactions, err := ReadTransactionsCSV(strings.NewReader(input))
	assert.Nil(t, err)
	assert.Equal(t, time.Date(2023, 3, 1, 8, 26, 0, 0, time.UTC), transactions[0].PurchasedAt)
}

func TestReadTransactionsCSVSkipsBlankRows(t *testing.T) {
	input := strings.Join([]string{
		"Invoice,StockCode,Description,Quantity,InvoiceDate,Price,Customer ID,Country",
		"INV005,PROD005,Bowl,1,2023-01-02 10:00:00,4,321,Spain",
		",,,,,,,",
	}, "\n")

	transactions, err := ReadTransactionsCSV(strings.NewReader(input))
	assert.Nil(t, err)
	assert.Len(t, transactions, 1)
}

func TestReadTransactionsCSVErrorCarriesRowContext(t *testing.T) {
	input := strings.Join([]string{
		"Invoice,StockCode,Description,Quantity,InvoiceDate,Price,Customer ID,Country",
		"INV006,PROD006,Plate,4,2023-01-02 10:00:00,3,111,Spain",
		"INV007,PROD007,Plate,many,2023-01-03 10:00:00,3,111,Spain",
	}, "\n")

	_, err := ReadTransactionsCSV(strings.NewReader(input))
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "row 3")
	assert.Contains(t, err.Error(), "Quantity")
}

func TestReadTransactionsCSVBadTimestamp(t *testing.T) {
	input := strings.Join([]string{
		"Invoice,StockCode,Description,Quantity,InvoiceDate,Price,Customer ID,Country",
		"INV008,PROD008,Plate,4,soon,3,111,Spain",
	}, "\n")

	_, err := ReadTransactionsCSV(strings.NewReader(input))
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), "InvoiceDate")
}

func TestReadTransactionsCSVMissingColumn(t *testing.T) {
	input := strings.Join([]string{
		"Invoice,StockCode,Description,Quantity,InvoiceDate,Customer ID,Country",
		"INV001,PROD001,Mug,6,2023-01-01 10:30:00,12345,United Kingdom",
	}, "\n")

	_, err := ReadTransactionsCSV(strings.NewReader(input))
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "Price")
}

func TestReadTransactionsCSVEmptyInput(t *testing.T) {
	_, err := ReadTransactionsCSV(strings.NewReader(""))
	assert.NotNil(t, err)
}

func TestSupportedUpload(t *testing.T) {
	assert.True(t, SupportedUpload("transactions.csv"))
	assert.True(t, SupportedUpload("Transactions.XLSX"))
	assert.False(t, SupportedUpload("transactions.parquet"))
	assert.False(t, SupportedUpload("transactions"))
}
