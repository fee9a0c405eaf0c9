package archive

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutObject struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutObject) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if params.Body != nil {
		f.body, _ = io.ReadAll(params.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Uploader_UploadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lotto_data.json")
	require.NoError(t, Save(path, sampleRecords()))
	want, err := os.ReadFile(path)
	require.NoError(t, err)

	fake := &fakePutObject{}
	uploader := NewS3UploaderWithClient(fake, "lotto-bucket")

	require.NoError(t, uploader.UploadFile(context.Background(), "lotto/lotto_data.json", path))

	require.NotNil(t, fake.input)
	assert.Equal(t, "lotto-bucket", aws.ToString(fake.input.Bucket))
	assert.Equal(t, "lotto/lotto_data.json", aws.ToString(fake.input.Key))
	assert.Equal(t, "application/json; charset=utf-8", aws.ToString(fake.input.ContentType))
	assert.Equal(t, want, fake.body)
}

func TestS3Uploader_Errors(t *testing.T) {
	uploader := NewS3UploaderWithClient(&fakePutObject{}, "bucket")
	err := uploader.UploadFile(context.Background(), "key", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, Save(path, nil))

	putErr := errors.New("access denied")
	uploader = NewS3UploaderWithClient(&fakePutObject{err: putErr}, "bucket")
	err = uploader.UploadFile(context.Background(), "key", path)
	assert.ErrorIs(t, err, putErr)
}
