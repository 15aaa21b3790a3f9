package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	cfg "github.com/dataopslabs/socials-gateway/configs"
)

// ObjectURL builds the public URL for an uploaded object. This string must
// match what the presign endpoint wrote to, so the format is a contract,
// not cosmetics.
func ObjectURL(bucket, region, key string) string {
	if region != "" {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bucket, key)
}

// S3Service uploads directly into the media bucket. The publish flow goes
// through presigned URLs instead; this is for server-originated objects
// such as imported AI images.
type S3Service struct {
	config cfg.Config
}

func NewS3Service(cfg cfg.Config) *S3Service {
	return &S3Service{config: cfg}
}

func (s *S3Service) s3Client() *s3.Client {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(s.config.S3.AccessKey, s.config.S3.SecretKey, "")),
		awsconfig.WithRegion(s.config.S3.Region),
	)
	if err != nil {
		slog.Info(err.Error())
		log.Fatal(err)
	}

	return s3.NewFromConfig(awsCfg)
}

func (s *S3Service) Upload(ctx context.Context, key string, file []byte, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.config.S3.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(file),
		ContentType: aws.String(contentType),
	}

	_, err := s.s3Client().PutObject(ctx, input)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	return nil
}

func (s *S3Service) PublicURL(key string) string {
	return ObjectURL(s.config.S3.Bucket, s.config.S3.Region, key)
}
