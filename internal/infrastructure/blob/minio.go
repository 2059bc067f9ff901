package blob

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"pulse_chat_server/internal/config"
	"pulse_chat_server/pkg/errorx"
)

// MinioStore implements Store on a minio/S3 bucket.
type MinioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioStore connects to the object store and ensures the bucket
// exists.
func NewMinioStore(conf *config.MinioConfig) (*MinioStore, error) {
	client, err := minio.New(conf.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conf.AccessKey, conf.SecretKey, ""),
		Secure: conf.UseSSL,
	})
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeInternal, "minio connect failed")
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, conf.Bucket)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeInternal, "minio bucket check failed")
	}
	if !exists {
		if err := client.MakeBucket(ctx, conf.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, errorx.Wrap(err, errorx.CodeInternal, "minio bucket create failed")
		}
		zap.L().Info("created blob bucket", zap.String("bucket", conf.Bucket))
	}

	return &MinioStore{
		client:    client,
		bucket:    conf.Bucket,
		publicURL: conf.PublicURL,
	}, nil
}

// Upload stores the object under subfolder with a random name and
// returns its public URL. The original extension is preserved so clients
// can infer the media type.
func (s *MinioStore) Upload(ctx context.Context, subfolder, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	objectName := path.Join(subfolder, uuid.NewString()+path.Ext(filename))
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errorx.Wrapf(err, errorx.CodeTransient, "blob upload %s", objectName)
	}
	return fmt.Sprintf("%s/%s", s.publicURL, objectName), nil
}
