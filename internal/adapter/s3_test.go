package adapter

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/notevault/internal/logger"
)

// fakeS3 is an in-memory s3API. err, when set, is returned by every call.
type fakeS3 struct {
	mu       sync.Mutex
	objects  map[string][]byte
	types    map[string]string
	pageSize int
	err      error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}, pageSize: 1000}
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("The specified key does not exist.")}
	}
	return &s3.GetObjectOutput{
		Body:        io.NopCloser(bytes.NewReader(body)),
		ContentType: aws.String(f.types[aws.ToString(in.Key)]),
	}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = body
	f.types[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}

	keys := make([]string, 0)
	for k := range f.objects {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) && k > aws.ToString(in.ContinuationToken) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
	for i, k := range keys {
		if i == f.pageSize {
			out.IsTruncated = aws.Bool(true)
			out.NextContinuationToken = aws.String(keys[i-1])
			break
		}
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k), Size: aws.Int64(int64(len(f.objects[k])))})
	}
	return out, nil
}

func (f *fakeS3) HeadBucket(_ context.Context, _ *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &s3.HeadBucketOutput{}, nil
}

func TestS3ObjectStore_PutGetDelete(t *testing.T) {
	fake := newFakeS3()
	store := newS3ObjectStore(fake, "vaults", "users/7", logger.Nop())
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, VaultKey, []byte(`{"id":"v"}`), "application/json"))
	assert.Contains(t, fake.objects, "users/7/vault.json")

	obj, err := store.Get(ctx, VaultKey)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"v"}`, string(obj.Body))
	assert.Equal(t, "application/json", obj.ContentType)

	require.NoError(t, store.Delete(ctx, VaultKey))
	_, err = store.Get(ctx, VaultKey)
	assert.True(t, IsNotFound(err))

	// deleting twice leaves the same state
	require.NoError(t, store.Delete(ctx, VaultKey))
}

func TestS3ObjectStore_ListPaginates(t *testing.T) {
	fake := newFakeS3()
	fake.pageSize = 2
	store := newS3ObjectStore(fake, "vaults", "", logger.Nop())
	ctx := context.Background()

	for _, id := range []string{"a1", "a2", "a3"} {
		require.NoError(t, store.Put(ctx, AssetKey(id), []byte(id), "text/plain"))
	}
	require.NoError(t, store.Put(ctx, NoteJSONKey("n1"), []byte("{}"), "application/json"))

	var keys []string
	token := ""
	for {
		page, err := store.List(ctx, AssetsPrefix, token)
		require.NoError(t, err)
		for _, obj := range page.Objects {
			keys = append(keys, obj.Key)
		}
		if page.NextToken == "" {
			break
		}
		token = page.NextToken
	}

	assert.Equal(t, []string{"assets/a1", "assets/a2", "assets/a3"}, keys)
}

func TestS3ObjectStore_ErrorCategories(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Category
	}{
		{name: "access denied", err: &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"}, want: CategoryAuth},
		{name: "bad key id", err: &smithy.GenericAPIError{Code: "InvalidAccessKeyId"}, want: CategoryAuth},
		{name: "signature", err: &smithy.GenericAPIError{Code: "SignatureDoesNotMatch"}, want: CategoryAuth},
		{name: "cors", err: &smithy.GenericAPIError{Code: "CORSResponse"}, want: CategoryCORS},
		{name: "not found", err: &smithy.GenericAPIError{Code: "NotFound"}, want: CategoryNotFound},
		{name: "deadline", err: context.DeadlineExceeded, want: CategoryTimeout},
		{name: "dial", err: &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, want: CategoryNetwork},
		{name: "other", err: errors.New("boom"), want: CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeS3()
			fake.err = tt.err
			store := newS3ObjectStore(fake, "vaults", "", logger.Nop())

			err := store.Put(context.Background(), VaultKey, []byte("{}"), "application/json")

			require.Error(t, err)
			assert.Equal(t, tt.want, CategoryOf(err))
			assert.True(t, strings.HasPrefix(Describe(err), string(tt.want)+": "))
		})
	}
}

func TestS3ObjectStore_Ping(t *testing.T) {
	fake := newFakeS3()
	store := newS3ObjectStore(fake, "vaults", "", logger.Nop())
	require.NoError(t, store.Ping(context.Background()))

	fake.err = &smithy.GenericAPIError{Code: "ExpiredToken"}
	assert.Equal(t, CategoryAuth, CategoryOf(store.Ping(context.Background())))
}
