package filestore

import (
	"io"
)

// FileManager abstracts run artifact storage. Jobs write to local disk
// on development and to a bucket elsewhere.
type FileManager interface {
	Create(dir, fileName string, reader io.Reader) error
	Get(path, fileName string) (io.ReadCloser, error)
	GetObjectSize(path, fileName string) (int64, error)
	ListFiles(path string) []string
	GetBucketName() string

	GetDatasetDir(dataset string) string
	GetDatasetFilePathAndName(dataset, fileName string) (string, string)
	GetRunDir(dataset, runID string) string
	GetRunCustomersFilePathAndName(dataset, runID string) (string, string)
	GetRunInvoicesFilePathAndName(dataset, runID string) (string, string)
	GetRunTransactionsFilePathAndName(dataset, runID string) (string, string)
	GetRunStatsFilePathAndName(dataset, runID string) (string, string)
	GetRunWorkbookFilePathAndName(dataset, runID string) (string, string)
}
