package mediasvc

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"

	"github.com/SaqibAli36/Indoor-Navigation-System/core"
)

type minioStore struct {
	client *minio.Client
	bucket string
}

var _ core.MediaStore = (*minioStore)(nil)

// NewMinioStore connects to the object store and ensures the bucket exists.
func NewMinioStore(ctx context.Context, conf *core.Config) (*minioStore, error) {
	client, err := minio.New(conf.Media.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conf.Media.MinioAccessKey, conf.Media.MinioSecretKey, ""),
		Secure: conf.Media.MinioUseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating minio client")
	}

	store := &minioStore{client: client, bucket: conf.Media.MinioBucket}

	exists, err := client.BucketExists(ctx, store.bucket)
	if err != nil {
		return nil, errors.Wrap(err, "checking bucket")
	}
	if !exists {
		if err = client.MakeBucket(ctx, store.bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, errors.Wrap(err, "creating bucket")
		}
	}
	return store, nil
}

func (store *minioStore) Save(ctx context.Context, filename string, r io.Reader, size int64, contentType string) error {
	_, err := store.client.PutObject(ctx, store.bucket, filename, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return errors.Wrap(err, "putting object")
}

func (store *minioStore) Delete(ctx context.Context, filename string) error {
	err := store.client.RemoveObject(ctx, store.bucket, filename, minio.RemoveObjectOptions{})
	return errors.Wrap(err, "removing object")
}

func (store *minioStore) Exists(ctx context.Context, filename string) (bool, error) {
	_, err := store.client.StatObject(ctx, store.bucket, filename, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, errors.Wrap(err, "statting object")
	}
	return true, nil
}

func (store *minioStore) List(ctx context.Context) ([]string, error) {
	names := make([]string, 0)
	for object := range store.client.ListObjects(ctx, store.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if object.Err != nil {
			return nil, errors.Wrap(object.Err, "listing objects")
		}
		names = append(names, object.Key)
	}
	return names, nil
}
