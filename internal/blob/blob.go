// Package blob guarda arquivos enviados (logos das empresas, currículos) num
// bucket S3 compatível (AWS S3, Cloudflare R2, MinIO) e devolve a URL pública.
package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/Werneck0live/job-portal/internal/config"
)

// ErrDisabled é devolvido quando nenhum bucket foi configurado.
var ErrDisabled = errors.New("blob storage not configured")

type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

type S3 struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewS3(ctx context.Context, c config.BlobConfig) (*S3, error) {
	region := c.Region
	if region == "" {
		region = "auto"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, "")),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3{client: client, bucket: c.Bucket, publicURL: publicBase(c)}, nil
}

func publicBase(c config.BlobConfig) string {
	if c.PublicURL != "" {
		return strings.TrimRight(c.PublicURL, "/")
	}
	if c.Endpoint != "" {
		return strings.TrimRight(c.Endpoint, "/") + "/" + c.Bucket
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com", c.Bucket)
}

func (s *S3) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object: %w", err)
	}
	return s.publicURL + "/" + key, nil
}

// Disabled rejeita todo upload; usado quando BLOB_BUCKET está vazio.
type Disabled struct{}

func (Disabled) Put(context.Context, string, string, []byte) (string, error) {
	return "", ErrDisabled
}

// Key monta uma chave única, ex.: Key("resumes", "user_1", ".pdf").
func Key(prefix, owner, ext string) string {
	return path.Join(prefix, owner, uuid.NewString()+ext)
}
