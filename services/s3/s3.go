package s3

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	log "github.com/sirupsen/logrus"

	"retailpulse/filestore"
)

var _ filestore.FileManager = (*S3Driver)(nil)

type S3Driver struct {
	s3         *s3.S3
	BucketName string
	Region     string
}

func New(bucketName, region string) *S3Driver {
	session := session.New()
	s3 := s3.New(session, aws.NewConfig().WithRegion(region))
	return &S3Driver{s3: s3, BucketName: bucketName, Region: region}
}

func (sd *S3Driver) Create(dir, fileName string, reader io.Reader) error {
	// PutObject needs a seekable body.
	body, err := ioutil.ReadAll(reader)
	if err != nil {
		return err
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(sd.BucketName),
		Body:   bytes.NewReader(body),
		Key:    aws.String(dir + fileName),
	}
	_, err = sd.s3.PutObject(input)
	return err
}

func (sd *S3Driver) Get(dir, fileName string) (io.ReadCloser, error) {
	input := s3.GetObjectInput{
		Bucket: aws.String(sd.BucketName),
		Key:    aws.String(dir + fileName),
	}
	op, err := sd.s3.GetObject(&input)
	if err != nil {
		return nil, err
	}
	return op.Body, nil
}

func (sd *S3Driver) GetObjectSize(dir, fileName string) (int64, error) {
	input := s3.HeadObjectInput{
		Bucket: aws.String(sd.BucketName),
		Key:    aws.String(dir + fileName),
	}
	op, err := sd.s3.HeadObject(&input)
	if err != nil {
		return 0, err
	}
	return *op.ContentLength, nil
}

// ListFiles List objects under the prefix.
func (sd *S3Driver) ListFiles(path string) []string {
	input := s3.ListObjectsV2Input{
		Bucket: aws.String(sd.BucketName),
		Prefix: aws.String(path),
	}

	var files []string
	err := sd.s3.ListObjectsV2Pages(&input, func(page *s3.ListObjectsV2Output, lastPage bool) bool {
		for _, object := range page.Contents {
			files = append(files, *object.Key)
		}
		return true
	})
	if err != nil {
		log.WithError(err).Errorln("Failed to list bucket objects")
	}
	return files
}

func (sd *S3Driver) GetBucketName() string {
	return sd.BucketName
}

func (sd *S3Driver) GetDatasetDir(dataset string) string {
	return fmt.Sprintf("datasets/%s/", dataset)
}

func (sd *S3Driver) GetDatasetFilePathAndName(dataset, fileName string) (string, string) {
	return sd.GetDatasetDir(dataset), fileName
}

func (sd *S3Driver) GetRunDir(dataset, runID string) string {
	return fmt.Sprintf("%sruns/%s/", sd.GetDatasetDir(dataset), runID)
}

func (sd *S3Driver) GetRunCustomersFilePathAndName(dataset, runID string) (string, string) {
	return sd.GetRunDir(dataset, runID), "customer_df.csv"
}

func (sd *S3Driver) GetRunInvoicesFilePathAndName(dataset, runID string) (string, string) {
	return sd.GetRunDir(dataset, runID), "invoice_df.csv"
}

func (sd *S3Driver) GetRunTransactionsFilePathAndName(dataset, runID string) (string, string) {
	return sd.GetRunDir(dataset, runID), "full_df.csv"
}

func (sd *S3Driver) GetRunStatsFilePathAndName(dataset, runID string) (string, string) {
	return sd.GetRunDir(dataset, runID), "segment_statistics.csv"
}

func (sd *S3Driver) GetRunWorkbookFilePathAndName(dataset, runID string) (string, string) {
	return sd.GetRunDir(dataset, runID), "profiles.xlsx"
}
