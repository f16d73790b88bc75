package gcstorage

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/iterator"

	"retailpulse/filestore"
)

var _ filestore.FileManager = (*GCSDriver)(nil)

type GCSDriver struct {
	client     *storage.Client
	BucketName string
}

func New(bucketName string) (*GCSDriver, error) {
	ctx := context.Background()
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	d := &GCSDriver{
		BucketName: bucketName,
		client:     client,
	}
	return d, nil
}

func (gcsd *GCSDriver) Create(dir, fileName string, reader io.Reader) error {
	ctx := context.Background()
	obj := gcsd.client.Bucket(gcsd.BucketName).Object(dir + fileName)
	w := obj.NewWriter(ctx)
	if _, err := io.Copy(w, reader); err != nil {
		return err
	}
	err := w.Close()
	return err
}

func (gcsd *GCSDriver) Get(dir, fileName string) (io.ReadCloser, error) {
	ctx := context.Background()
	obj := gcsd.client.Bucket(gcsd.BucketName).Object(dir + fileName)
	rc, err := obj.NewReader(ctx)
	return rc, err
}

func (gcsd *GCSDriver) GetBucketName() string {
	return gcsd.BucketName
}

func (gcsd *GCSDriver) GetObjectSize(dir, fileName string) (int64, error) {
	ctx := context.Background()
	attrs, err := gcsd.client.Bucket(gcsd.BucketName).Object(dir + fileName).Attrs(ctx)
	if err != nil {
		return 0, err
	}
	return attrs.Size, nil
}

// ListFiles List objects under the prefix.
func (gcsd *GCSDriver) ListFiles(path string) []string {
	ctx := context.Background()

	var files []string
	it := gcsd.client.Bucket(gcsd.BucketName).Objects(ctx, &storage.Query{Prefix: path})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			log.WithError(err).Errorln("Failed to list bucket objects")
			return files
		}
		files = append(files, attrs.Name)
	}
	return files
}

func (gcsd *GCSDriver) GetDatasetDir(dataset string) string {
	return fmt.Sprintf("datasets/%s/", dataset)
}

func (gcsd *GCSDriver) GetDatasetFilePathAndName(dataset, fileName string) (string, string) {
	return gcsd.GetDatasetDir(dataset), fileName
}

func (gcsd *GCSDriver) GetRunDir(dataset, runID string) string {
	return fmt.Sprintf("%sruns/%s/", gcsd.GetDatasetDir(dataset), runID)
}

func (gcsd *GCSDriver) GetRunCustomersFilePathAndName(dataset, runID string) (string, string) {
	return gcsd.GetRunDir(dataset, runID), "customer_df.csv"
}

func (gcsd *GCSDriver) GetRunInvoicesFilePathAndName(dataset, runID string) (string, string) {
	return gcsd.GetRunDir(dataset, runID), "invoice_df.csv"
}

func (gcsd *GCSDriver) GetRunTransactionsFilePathAndName(dataset, runID string) (string, string) {
	return gcsd.GetRunDir(dataset, runID), "full_df.csv"
}

func (gcsd *GCSDriver) GetRunStatsFilePathAndName(dataset, runID string) (string, string) {
	return gcsd.GetRunDir(dataset, runID), "segment_statistics.csv"
}

func (gcsd *GCSDriver) GetRunWorkbookFilePathAndName(dataset, runID string) (string, string) {
	return gcsd.GetRunDir(dataset, runID), "profiles.xlsx"
}
