package minio

import (
	"context"
	"io"

	util_io "github.com/craibuc/trustedemployee/pkg/util/io"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

const delimiter = "/"

type Config struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Secure    bool   `yaml:"secure"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
}

type Writer struct {
	client *minio.Client
	bucket string
	prefix string
}

func NewWriter(cfg Config) (*Writer, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
	})
	if err != nil {
		return nil, errors.Wrap(err, "initialize minio client for report writer")
	}

	found, err := client.BucketExists(context.Background(), cfg.Bucket)
	if err != nil {
		return nil, errors.Wrap(err, "check minio bucket exists")
	}

	if !found {
		if err := client.MakeBucket(context.Background(), cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, errors.Wrap(err, "make minio bucket")
		}
	}

	return &Writer{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func (w *Writer) Store(ctx context.Context, objName string, r io.Reader) (string, error) {
	size, err := util_io.TryGetSize(r)
	if err != nil {
		return "", errors.Wrap(err, "probe report object size")
	}

	if w.prefix != "" {
		objName = w.prefix + delimiter + objName
	}

	_, err = w.client.PutObject(ctx, w.bucket, objName, r, size, minio.PutObjectOptions{
		ContentType: "application/pdf",
	})
	if err != nil {
		return "", errors.Wrap(err, "store report object")
	}

	return w.bucket + delimiter + objName, nil
}
