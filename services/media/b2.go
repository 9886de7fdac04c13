package mediasvc

import (
	"context"
	"io"
	"path"

	"github.com/kat-co/vala"
	"github.com/kurin/blazer/b2"
	"github.com/pkg/errors"

	"github.com/trezcool/studysphere/core"
)

type b2Store struct {
	bucket *b2.Bucket
}

var _ core.MediaStore = (*b2Store)(nil)

// NewB2Store connects to the configured Backblaze B2 bucket.
func NewB2Store(ctx context.Context, conf *core.Config) (*b2Store, error) {
	err := vala.BeginValidation().Validate(
		vala.StringNotEmpty(conf.Storage.B2AccountID, "STORAGE_B2_ACCOUNT_ID"),
		vala.StringNotEmpty(conf.Storage.B2ApplicationKey, "STORAGE_B2_APPLICATION_KEY"),
		vala.StringNotEmpty(conf.Storage.B2Bucket, "STORAGE_B2_BUCKET"),
	).Check()
	if err != nil {
		return nil, errors.Wrap(err, "validating b2 config")
	}

	client, err := b2.NewClient(ctx, conf.Storage.B2AccountID, conf.Storage.B2ApplicationKey)
	if err != nil {
		return nil, errors.Wrap(err, "creating b2 client")
	}
	bucket, err := client.Bucket(ctx, conf.Storage.B2Bucket)
	if err != nil {
		return nil, errors.Wrap(err, "getting b2 bucket")
	}
	return &b2Store{bucket: bucket}, nil
}

// Upload writes a new version of the object; B2 serves the latest one.
func (s *b2Store) Upload(ctx context.Context, folder, key, contentType string, r io.Reader) (string, error) {
	obj := s.bucket.Object(path.Join(folder, key))
	w := obj.NewWriter(ctx).WithAttrs(&b2.Attrs{ContentType: contentType})

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", errors.Wrap(err, "writing object")
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrap(err, "closing object writer")
	}
	return obj.URL(), nil
}
