package storage

import (
	"context"
	"cookbook-backend/internal/utils"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var AllowImage = []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp"}

type (
	// ObjectStorage stores bytes and hands back a public URL.
	ObjectStorage interface {
		UploadFile(ctx context.Context, fileName string, body io.Reader, contentType string, folder string) (string, error)
	}

	awsS3 struct {
		client   *s3.Client
		bucket   string
		region   string
		endpoint string
	}
)

func NewAwsS3(ctx context.Context) (ObjectStorage, error) {
	region := utils.GetConfig("AWS_S3_REGION")
	endpoint := utils.GetConfig("AWS_S3_ENDPOINT")

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			utils.GetConfig("AWS_ACCESS_KEY"),
			utils.GetConfig("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &awsS3{
		client:   client,
		bucket:   utils.GetConfig("AWS_S3_BUCKET"),
		region:   region,
		endpoint: strings.TrimRight(endpoint, "/"),
	}, nil
}

func (a *awsS3) UploadFile(ctx context.Context, fileName string, body io.Reader, contentType string, folder string) (string, error) {
	key := path.Join(folder, uuid.NewString()+strings.ToLower(path.Ext(fileName)))

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	utils.Logger.Debug("object uploaded", zap.String("bucket", a.bucket), zap.String("key", key))
	return a.publicLink(key), nil
}

func (a *awsS3) publicLink(objectKey string) string {
	if a.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", a.endpoint, a.bucket, objectKey)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, objectKey)
}

func IsAllowed(contentType string, allowed ...string) bool {
	contentType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	for _, a := range allowed {
		if contentType == a {
			return true
		}
	}
	return false
}
