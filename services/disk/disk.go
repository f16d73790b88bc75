package disk

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"retailpulse/filestore"
)

var _ filestore.FileManager = (*DiskDriver)(nil)

type DiskDriver struct {
	// This can be used as namespace
	// to differentiate files across multiple instances of DiskDriver
	// Analogus to bucket name
	baseDir string
}

func New(baseDir string) *DiskDriver {
	return &DiskDriver{baseDir: baseDir}
}

func MkdirAll(path string) error {
	return os.MkdirAll(path, 0755)
}

func (dd *DiskDriver) Create(path, fileName string, reader io.Reader) error {
	err := MkdirAll(path)
	if err != nil {
		log.WithError(err).Errorln("Failed to create dir")
		return err
	}

	if !strings.HasSuffix(path, "/") {
		// Append / to the end if not present.
		path = path + "/"
	}
	file, err := os.Create(path + fileName)
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = io.Copy(file, reader)
	return err
}

// Get opens a file in read only mode.
// Caller should take care of closing the returned io.ReadCloser.
func (dd *DiskDriver) Get(path, fileName string) (io.ReadCloser, error) {
	log.WithFields(log.Fields{
		"Path":     path,
		"FileName": fileName,
	}).Debug("DiskDriver Opening file")

	if !strings.HasSuffix(path, "/") {
		// Append / to the end if not present.
		path = path + "/"
	}
	file, err := os.OpenFile(path+fileName, os.O_RDONLY, 0444)
	return file, err
}

func (dd *DiskDriver) GetBucketName() string {
	return dd.baseDir
}

func (dd *DiskDriver) GetObjectSize(path, fileName string) (int64, error) {
	if !strings.HasSuffix(path, "/") {
		// Append / to the end if not present.
		path = path + "/"
	}
	var objInfo os.FileInfo
	var err error
	if objInfo, err = os.Stat(path + fileName); err != nil {
		return 0, err
	}
	objSize := objInfo.Size()
	return objSize, err
}

// ListFiles List files present in a directory.
func (dd *DiskDriver) ListFiles(path string) []string {
	var files []string
	fileObjects, err := ioutil.ReadDir(path)
	if err != nil {
		log.WithError(err).Errorln("Failed to read directory contents")
		return files
	}

	for _, file := range fileObjects {
		files = append(files, path+"/"+file.Name())
	}
	return files
}

func (dd *DiskDriver) GetDatasetDir(dataset string) string {
	return fmt.Sprintf("%s/datasets/%s/", dd.baseDir, dataset)
}

func (dd *DiskDriver) GetDatasetFilePathAndName(dataset, fileName string) (string, string) {
	return dd.GetDatasetDir(dataset), fileName
}

func (dd *DiskDriver) GetRunDir(dataset, runID string) string {
	return fmt.Sprintf("%sruns/%s/", dd.GetDatasetDir(dataset), runID)
}

func (dd *DiskDriver) GetRunCustomersFilePathAndName(dataset, runID string) (string, string) {
	return dd.GetRunDir(dataset, runID), "customer_df.csv"
}

func (dd *DiskDriver) GetRunInvoicesFilePathAndName(dataset, runID string) (string, string) {
	return dd.GetRunDir(dataset, runID), "invoice_df.csv"
}

func (dd *DiskDriver) GetRunTransactionsFilePathAndName(dataset, runID string) (string, string) {
	return dd.GetRunDir(dataset, runID), "full_df.csv"
}

func (dd *DiskDriver) GetRunStatsFilePathAndName(dataset, runID string) (string, string) {
	return dd.GetRunDir(dataset, runID), "segment_statistics.csv"
}

func (dd *DiskDriver) GetRunWorkbookFilePathAndName(dataset, runID string) (string, string) {
	return dd.GetRunDir(dataset, runID), "profiles.xlsx"
}
