package s3

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string][]byte
	err     error

	lastBucket string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}}
}

func (f *fakeS3) PutObject(_ context.Context, input *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	f.lastBucket = *input.Bucket
	f.objects[*input.Key] = body
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, input *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[*input.Key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(string(body)))}, nil
}

func TestClientPutGet(t *testing.T) {
	fake := newFakeS3()
	client := NewClientWithAPI(fake, "exports")
	ctx := context.Background()

	require.NoError(t, client.PutObject(ctx, "export/run.csv", []byte("a,b,c\n")))
	assert.Equal(t, "exports", fake.lastBucket)

	body, err := client.GetObject(ctx, "export/run.csv")
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "a,b,c\n", string(data))
}

func TestClientPut_Error(t *testing.T) {
	fake := newFakeS3()
	fake.err = errors.New("AccessDenied")
	client := NewClientWithAPI(fake, "exports")

	err := client.PutObject(context.Background(), "export/run.csv", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to put object")
}

func TestClientGet_Missing(t *testing.T) {
	client := NewClientWithAPI(newFakeS3(), "exports")

	_, err := client.GetObject(context.Background(), "export/absent.csv")
	assert.Error(t, err)
}
