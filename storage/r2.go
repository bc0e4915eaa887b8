package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/geo-planner/api-go/config"
)

// R2Store keeps media in a Cloudflare R2 bucket through the S3 API. Keys map
// to object keys; Save returns the public URL when one is configured.
type R2Store struct {
	Client *s3.Client
	Config *config.R2Config
}

func NewR2Store(cfg *config.R2Config) *R2Store {
	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)),
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
		Region: cfg.Region,
	})
	return &R2Store{Client: client, Config: cfg}
}

func (s *R2Store) Save(key string, body io.Reader) (string, error) {
	_, err := s.Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket: aws.String(s.Config.BucketName),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return "", err
	}
	if s.Config.PublicURL != "" {
		return fmt.Sprintf("%s/%s", s.Config.PublicURL, key), nil
	}
	return key, nil
}

func (s *R2Store) Exists(key string) (bool, error) {
	_, err := s.Client.HeadObject(context.TODO(), &s3.HeadObjectInput{
		Bucket: aws.String(s.Config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (s *R2Store) Delete(key string) error {
	_, err := s.Client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(s.Config.BucketName),
		Key:    aws.String(key),
	})
	return err
}

// PresignPut returns a presigned PUT URL so clients upload post images
// straight to the bucket.
func (s *R2Store) PresignPut(key, contentType string) (string, error) {
	presigner := s3.NewPresignClient(s.Client)
	req, err := presigner.PresignPutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.Config.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = 15 * time.Minute
	})
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
