package task

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	C "retailpulse/config"
	"retailpulse/filestore"
	"retailpulse/profilestore"
	serviceDisk "retailpulse/services/disk"
)

const testDataset = "online_retail"

// Three customers. 5002 holds the dataset's latest purchase day so the
// other two carry a positive recency.
const testSourceCSV = `Invoice,StockCode,Description,Quantity,InvoiceDate,Price,Customer ID,Country
INV001,P001,Widget,2,2023-01-01 10:00:00,5,5000,United Kingdom
INV002,P001,Widget,1,2023-01-11 10:00:00,5,5000,United Kingdom
INV003,P001,Widget,4,2023-01-21 10:00:00,5,5000,United Kingdom
INV004,P002,Gadget,1,2023-01-05 09:00:00,20,5001,France
INV005,P002,Gadget,2,2023-01-25 09:00:00,20,5001,France
INV006,P003,Gizmo,10,2023-02-01 12:00:00,1,5002,Germany
`

func newJobManager(t *testing.T) (*serviceDisk.DiskDriver, *filestore.FileManager) {
	driver := serviceDisk.New(t.TempDir())
	var manager filestore.FileManager = driver
	return driver, &manager
}

func stageSourceFile(t *testing.T, driver *serviceDisk.DiskDriver, fileName, content string) {
	path, name := driver.GetDatasetFilePathAndName(testDataset, fileName)
	err := driver.Create(path, name, strings.NewReader(content))
	assert.Nil(t, err)
}

func jobConfigs(manager *filestore.FileManager, sourceFile string, publish bool) map[string]interface{} {
	return map[string]interface{}{
		"cloudManager":    manager,
		"sourceFile":      sourceFile,
		"publishProfiles": &publish,
	}
}

func TestRunSegmentation(t *testing.T) {
	driver, manager := newJobManager(t)
	stageSourceFile(t, driver, "transactions.csv", testSourceCSV)

	status, ok := RunSegmentation(testDataset, jobConfigs(manager, "transactions.csv", false))
	assert.True(t, ok)

	runID, _ := status["run_id"].(string)
	assert.NotEmpty(t, runID)
	assert.Equal(t, 6, status["transactions"])
	assert.Equal(t, 3, status["customers"])
	assert.Contains(t, status["chart_url"], "quickchart.io")
	assert.Contains(t, status["table_url"], "quickchart.io")

	runDir := driver.GetRunDir(testDataset, runID)
	for _, name := range []string{"full_df.csv", "invoice_df.csv", "customer_df.csv", "segment_statistics.csv", "profiles.xlsx"} {
		size, err := driver.GetObjectSize(runDir, name)
		assert.Nil(t, err, name)
		assert.True(t, size > 0, name)
	}
}

func TestRunSegmentationPublishesProfiles(t *testing.T) {
	err := profilestore.Init(&C.Configuration{ProfileStore: C.ProfileStoreLRU, ProfileCacheSize: 100})
	assert.Nil(t, err)

	driver, manager := newJobManager(t)
	stageSourceFile(t, driver, "transactions.csv", testSourceCSV)

	status, ok := RunSegmentation(testDataset, jobConfigs(manager, "transactions.csv", true))
	assert.True(t, ok)
	assert.Equal(t, 3, status["published"])
	assert.Equal(t, 3, profilestore.GetStore().Count())

	profile, errCode := profilestore.GetStore().GetProfile(5000)
	assert.Equal(t, http.StatusFound, errCode)
	assert.Equal(t, int64(3), profile.Frequency)
}

func TestRunSegmentationValidation(t *testing.T) {
	_, manager := newJobManager(t)

	status, ok := RunSegmentation("", jobConfigs(manager, "transactions.csv", false))
	assert.False(t, ok)
	assert.Equal(t, "invalid dataset", status["error"])

	status, ok = RunSegmentation(testDataset, jobConfigs(manager, "", false))
	assert.False(t, ok)
	assert.Equal(t, "invalid source file", status["error"])

	status, ok = RunSegmentation(testDataset, jobConfigs(manager, "transactions.parquet", false))
	assert.False(t, ok)
	assert.Equal(t, "unsupported source file format", status["error"])
}

func TestRunSegmentationMissingSource(t *testing.T) {
	_, manager := newJobManager(t)

	status, ok := RunSegmentation(testDataset, jobConfigs(manager, "transactions.csv", false))
	assert.False(t, ok)
	assert.NotNil(t, status["source-error"])
}

func TestRunSegmentationBadRows(t *testing.T) {
	driver, manager := newJobManager(t)
	bad := "Invoice,StockCode,Description,Quantity,InvoiceDate,Price,Customer ID,Country\n" +
		"INV001,P001,Widget,many,2023-01-01 10:00:00,5,5000,United Kingdom\n"
	stageSourceFile(t, driver, "transactions.csv", bad)

	status, ok := RunSegmentation(testDataset, jobConfigs(manager, "transactions.csv", false))
	assert.False(t, ok)
	assert.Contains(t, status["parse-error"], "row 2")
}
