package initializers

import (
	"context"
	"recruit-flow-backend/config"
	s3client "recruit-flow-backend/s3"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
)

func InitS3() {
	minioClient, err := minio.New(config.Conf.S3.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV2(config.Conf.S3.AccessKeyID, config.Conf.S3.SecretAccessKey, ""),
		Secure: *config.Conf.S3.UseSSL,
	})
	if err != nil {
		log.WithError(err).Error("s3 client init failed")
		return
	}

	// connection check
	_, err = minioClient.ListBuckets(context.Background())
	if err != nil {
		log.WithError(err).Error("s3 connection failed, ListBuckets returned an error")
	}

	s3client.Client = minioClient
	log.Info("s3 client initialized")
}
