package disk

import (
	"fmt"
	"io/ioutil"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	U "retailpulse/util"
)

func TestDiskDriverCreateAndGet(t *testing.T) {
	driver := New(t.TempDir())
	dataset := U.RandomString(8)

	dir, fileName := driver.GetDatasetFilePathAndName(dataset, "transactions.csv")
	err := driver.Create(dir, fileName, strings.NewReader("Invoice,Quantity\nINV001,2\n"))
	assert.Nil(t, err)

	reader, err := driver.Get(dir, fileName)
	assert.Nil(t, err)
	defer reader.Close()

	content, err := ioutil.ReadAll(reader)
	assert.Nil(t, err)
	assert.Equal(t, "Invoice,Quantity\nINV001,2\n", string(content))

	size, err := driver.GetObjectSize(dir, fileName)
	assert.Nil(t, err)
	assert.Equal(t, int64(len(content)), size)
}

func TestDiskDriverGetMissingFile(t *testing.T) {
	driver := New(t.TempDir())

	_, err := driver.Get(driver.GetDatasetDir("nodata"), "transactions.csv")
	assert.NotNil(t, err)
}

func TestDiskDriverListFiles(t *testing.T) {
	driver := New(t.TempDir())
	dataset := U.RandomString(8)
	runID := U.RandomString(12)

	dir, fileName := driver.GetRunCustomersFilePathAndName(dataset, runID)
	assert.Nil(t, driver.Create(dir, fileName, strings.NewReader("customer_id\n")))

	files := driver.ListFiles(driver.GetRunDir(dataset, runID))
	assert.Len(t, files, 1)
	assert.Contains(t, files[0], "customer_df.csv")
}

func TestDiskDriverRunPaths(t *testing.T) {
	driver := New("/tmp/retailpulse-dev")
	dataset := "online_retail"
	runID := "bq2hv8l6n4e0uv9b2m3g"

	expected := fmt.Sprintf("/tmp/retailpulse-dev/datasets/%s/runs/%s/", dataset, runID)
	assert.Equal(t, expected, driver.GetRunDir(dataset, runID))

	path, name := driver.GetRunStatsFilePathAndName(dataset, runID)
	assert.Equal(t, expected, path)
	assert.Equal(t, "segment_statistics.csv", name)
}
