package main

import (
	"flag"
	"fmt"

	log "github.com/sirupsen/logrus"

	C "retailpulse/config"
	"retailpulse/filestore"
	"retailpulse/metrics"
	"retailpulse/profilestore"
	serviceDisk "retailpulse/services/disk"
	serviceGCS "retailpulse/services/gcstorage"
	serviceS3 "retailpulse/services/s3"
	T "retailpulse/task"
	"retailpulse/util"
)

var taskID = "Script#RunSegmentation"
var pbLog = log.WithField("prefix", taskID)

func main() {
	envFlag := flag.String("env", "development", "Environment. Could be development|staging|production.")
	bucketNameFlag := flag.String("bucket_name", "/usr/local/var/retailpulse/cloud_storage", "Bucket name for production.")
	cloudProviderFlag := flag.String("cloud_provider", "gcs", "Bucket provider outside development. Could be gcs|s3.")
	awsRegionFlag := flag.String("aws_region", "us-east-1", "AWS region of the bucket when cloud_provider is s3.")

	datasetFlag := flag.String("dataset", "", "Dataset name the source file lives under.")
	sourceFileFlag := flag.String("source_file", "", "Transactions export to process. csv or xlsx.")
	publishFlag := flag.Bool("publish", false, "Whether to publish the run's profiles to the profile store.")

	profileStoreFlag := flag.String("profile_store", C.ProfileStoreRedis, "Profile store backend on publish. Could be lru|redis.")
	redisHostFlag := flag.String("redis_host", "localhost", "Redis host for the profile store.")
	redisPortFlag := flag.Int("redis_port", 6379, "Redis port for the profile store.")

	projectIDFlag := flag.String("gcp_project_id", "", "Project id of the gcp project.")
	projectLocationFlag := flag.String("gcp_project_location", "", "Location of the gcp project.")
	sentryDSNFlag := flag.String("sentry_dsn", "", "Sentry DSN for error reporting.")

	flag.Parse()
	defer util.NotifyOnPanic(taskID, *envFlag)

	if *envFlag != C.DEVELOPMENT && *envFlag != C.STAGING && *envFlag != C.PRODUCTION {
		panic(fmt.Errorf("env [ %s ] not recognised", *envFlag))
	} else if *datasetFlag == "" {
		panic(fmt.Errorf("invalid dataset [ %s ]", *datasetFlag))
	} else if *sourceFileFlag == "" {
		panic(fmt.Errorf("invalid source_file [ %s ]", *sourceFileFlag))
	}

	config := &C.Configuration{
		AppName:      "run_segmentation",
		Env:          *envFlag,
		RedisHost:    *redisHostFlag,
		RedisPort:    *redisPortFlag,
		ProfileStore: *profileStoreFlag,
		SentryDSN:    *sentryDSNFlag,
		BucketName:   *bucketNameFlag,
	}
	if err := C.InitConf(config); err != nil {
		pbLog.WithError(err).Fatal("Failed to initialize config.")
	}

	if *publishFlag {
		if config.ProfileStore == C.ProfileStoreRedis {
			C.InitRedisConnection(config.RedisHost, config.RedisPort)
		}
		if err := profilestore.Init(config); err != nil {
			pbLog.WithError(err).Fatal("Failed to initialize profile store.")
		}
	}

	metrics.InitMetrics(*envFlag, config.AppName, *projectIDFlag, *projectLocationFlag)

	var cloudManager filestore.FileManager
	if *envFlag == C.DEVELOPMENT {
		cloudManager = serviceDisk.New(*bucketNameFlag)
	} else if *cloudProviderFlag == "s3" {
		cloudManager = serviceS3.New(*bucketNameFlag, *awsRegionFlag)
	} else if *cloudProviderFlag == "gcs" {
		var err error
		cloudManager, err = serviceGCS.New(*bucketNameFlag)
		if err != nil {
			pbLog.WithError(err).Errorln("Failed to init New GCS Client")
			panic(err)
		}
	} else {
		panic(fmt.Errorf("cloud_provider [ %s ] not recognised", *cloudProviderFlag))
	}

	configs := map[string]interface{}{
		"cloudManager":    &cloudManager,
		"sourceFile":      *sourceFileFlag,
		"publishProfiles": publishFlag,
	}

	status, ok := T.RunSegmentation(*datasetFlag, configs)
	if err := util.NotifyThroughSNS("run_segmentation", *envFlag, status); err != nil {
		pbLog.WithError(err).Error("SNS notification failed", status)
	}
	if !ok {
		pbLog.WithField("status", status).Error("Segmentation run failed.")
		panic(fmt.Errorf("segmentation run failed for dataset %s", *datasetFlag))
	}
	pbLog.WithField("status", status).Info("Segmentation run finished.")
}
