// Package storage archives uploaded documents to S3-compatible object
// storage and enforces the retention policy.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/db"
)

// Config holds the object storage settings
type Config struct {
	Bucket   string
	Region   string
	Endpoint string // optional, for R2 or MinIO
	Prefix   string // key prefix, defaults to "documents"
}

// Archive stores original document bytes in an S3 bucket
type Archive struct {
	client *s3.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// New builds an archive from the ambient AWS credentials
func New(ctx context.Context, cfg Config, logger *zap.Logger) (*Archive, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "documents"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Archive{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix, logger: logger}, nil
}

// StoreDocument uploads the original bytes of an ingested document and
// returns the object key.
func (a *Archive) StoreDocument(ctx context.Context, doc *db.Document, raw []byte) (string, error) {
	key := objectKey(a.prefix, doc)

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(raw),
		ContentType: aws.String(doc.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload document: %w", err)
	}

	a.logger.Debug("document archived",
		zap.String("key", key),
		zap.Int("bytes", len(raw)))
	return key, nil
}

// Fetch downloads an archived object
func (a *Archive) Fetch(ctx context.Context, key string) ([]byte, error) {
	out, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	return data, nil
}

// Delete removes one archived object
func (a *Archive) Delete(ctx context.Context, key string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// CleanupBefore deletes archived objects last modified before the cutoff and
// returns how many were removed.
func (a *Archive) CleanupBefore(ctx context.Context, cutoff time.Time) (int, error) {
	deleted := 0
	paginator := s3.NewListObjectsV2Paginator(a.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(a.bucket),
		Prefix: aws.String(a.prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return deleted, fmt.Errorf("failed to list objects: %w", err)
		}
		for _, obj := range page.Contents {
			if obj.Key == nil || obj.LastModified == nil || !obj.LastModified.Before(cutoff) {
				continue
			}
			if err := a.Delete(ctx, *obj.Key); err != nil {
				return deleted, err
			}
			deleted++
		}
	}
	return deleted, nil
}

// objectKey lays archived documents out by kind and date
func objectKey(prefix string, doc *db.Document) string {
	return path.Join(prefix, doc.Kind, doc.CreatedAt.UTC().Format("2006/01/02"),
		doc.ID.String()+extensionFor(doc.ContentType))
}

func extensionFor(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "application/pdf"):
		return ".pdf"
	case strings.HasPrefix(contentType, "application/vnd.openxmlformats-officedocument.wordprocessingml.document"):
		return ".docx"
	case strings.HasPrefix(contentType, "text/"):
		return ".txt"
	default:
		return ".bin"
	}
}
