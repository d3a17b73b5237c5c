package report

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Veraticus/gxpassess/internal/apperr"
	"github.com/Veraticus/gxpassess/internal/config"
	"github.com/Veraticus/gxpassess/pkg/logger"
)

// ObjectPutter is the subset of the S3 client used for publishing.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Publisher uploads report artifacts to a bucket under
// <prefix>/<assessment id>/<file>.
type S3Publisher struct {
	client ObjectPutter
	logger logger.Logger
	bucket string
	prefix string
}

// NewS3Publisher creates a publisher on an existing client.
func NewS3Publisher(client ObjectPutter, cfg config.S3Config, log logger.Logger) *S3Publisher {
	return &S3Publisher{
		client: client,
		logger: log,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
	}
}

// NewS3PublisherFromConfig creates a publisher using the default AWS
// credential chain.
func NewS3PublisherFromConfig(ctx context.Context, cfg config.S3Config, log logger.Logger) (*S3Publisher, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return NewS3Publisher(s3.NewFromConfig(awsCfg), cfg, log), nil
}

// Key returns the object key of a file.
func (p *S3Publisher) Key(assessmentID, file string) string {
	return path.Join(p.prefix, assessmentID, file)
}

// PublishBytes uploads one artifact and returns its key.
func (p *S3Publisher) PublishBytes(ctx context.Context, assessmentID, file string, data []byte) (string, error) {
	key := p.Key(assessmentID, file)
	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType(file)),
	})
	if err != nil {
		return "", apperr.ReportGeneration("publish "+file, fmt.Errorf("uploading to s3://%s/%s: %w", p.bucket, key, err))
	}

	p.logger.Info("Published report", "bucket", p.bucket, "key", key, "bytes", len(data))
	return key, nil
}

// Publish uploads written artifacts and returns their keys.
func (p *S3Publisher) Publish(ctx context.Context, assessmentID string, artifacts []Artifact) ([]string, error) {
	keys := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		data, err := os.ReadFile(a.Path) // #nosec G304 - path was produced by WriteFiles
		if err != nil {
			return keys, apperr.ReportGeneration("publish "+a.Format, err)
		}
		key, err := p.PublishBytes(ctx, assessmentID, filepath.Base(a.Path), data)
		if err != nil {
			return keys, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func contentType(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".html":
		return "text/html; charset=utf-8"
	case ".pdf":
		return "application/pdf"
	case ".json":
		return "application/json"
	case ".md":
		return "text/markdown; charset=utf-8"
	case ".yaml":
		return "application/yaml"
	default:
		return "application/octet-stream"
	}
}
