// Package s3publish uploads a generated site to an S3-compatible bucket.
package s3publish

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// Uploader is the subset of *s3.Client the publisher needs.
type Uploader interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Config struct {
	Bucket          string
	Region          string
	Endpoint        string // non-AWS endpoint, e.g. MinIO or R2; switches to path-style
	Prefix          string
	AccessKeyID     string
	SecretAccessKey string
}

// NewS3Client builds an S3 client. Static credentials are used when both keys are set, otherwise
// the default AWS credential chain applies.
func NewS3Client(ctx context.Context, cfg Config) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

type Publisher struct {
	up     Uploader
	bucket string
	prefix string
}

func New(up Uploader, bucket, prefix string) (*Publisher, error) {
	if bucket == "" {
		return nil, errors.New("s3publish: bucket is required")
	}
	return &Publisher{up: up, bucket: bucket, prefix: strings.Trim(prefix, "/")}, nil
}

// sitePaths are the parts of the site root that get published; anything else there (the catalog,
// sources) stays local.
var sitePaths = []string{"index.html", "output", "static"}

// Publish uploads every site file below root and returns how many were uploaded. Missing
// optional parts (no static/ yet) are skipped.
func (p *Publisher) Publish(ctx context.Context, root string) (int, error) {
	n := 0
	for _, part := range sitePaths {
		err := filepath.WalkDir(filepath.Join(root, part), func(full string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(root, full)
			if err != nil {
				return err
			}
			if err := p.upload(ctx, full, p.Key(rel)); err != nil {
				return err
			}
			n++
			return nil
		})
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("path", part).Msg("not present, skipped")
			continue
		}
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// Key maps a root-relative file path to its object key.
func (p *Publisher) Key(rel string) string {
	k := filepath.ToSlash(rel)
	if p.prefix == "" {
		return k
	}
	return path.Join(p.prefix, k)
}

func (p *Publisher) upload(ctx context.Context, full, key string) error {
	f, err := os.Open(full)
	if err != nil {
		return fmt.Errorf("open %s: %w", full, err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", full, err)
	}

	_, err = p.up.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String(ContentType(filepath.Ext(full))),
	})
	if err != nil {
		return fmt.Errorf("upload s3://%s/%s: %w", p.bucket, key, err)
	}
	log.Debug().Str("key", key).Int64("bytes", info.Size()).Msg("uploaded")
	return nil
}

func ContentType(ext string) string {
	switch strings.ToLower(ext) {
	case ".html", ".htm":
		return "text/html; charset=utf-8"
	case ".css":
		return "text/css; charset=utf-8"
	case ".js":
		return "text/javascript; charset=utf-8"
	case ".json":
		return "application/json"
	case ".svg":
		return "image/svg+xml"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".ico":
		return "image/x-icon"
	case ".txt":
		return "text/plain; charset=utf-8"
	case ".xml":
		return "application/xml"
	default:
		return "application/octet-stream"
	}
}
