package fsxs3

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/Abraxas-365/hiresight/pkg/fsx"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string][]byte
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3FileSystem(t *testing.T) {
	ctx := context.Background()
	client := &fakeS3{objects: map[string][]byte{}}
	fs := NewS3FileSystem(client, "bucket", "/uploads/")

	p := fs.Join("resumes", "t1", "cv.pdf")
	require.NoError(t, fs.WriteFile(ctx, p, []byte("pdf")))
	assert.Contains(t, client.objects, "bucket/uploads/resumes/t1/cv.pdf")

	data, err := fs.ReadFile(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf"), data)

	// already prefixed paths are not prefixed twice
	data, err = fs.ReadFile(ctx, "uploads/resumes/t1/cv.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf"), data)

	require.NoError(t, fs.DeleteFile(ctx, p))
	_, err = fs.ReadFile(ctx, p)
	assert.ErrorIs(t, err, fsx.ErrNotFound)
}
