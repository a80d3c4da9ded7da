package s3store

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hap-eb/ebill-reports/internal/domain/model"
)

var frozen = time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC)

// fakeS3 records writes in memory. Presigning falls through to a real client
// with static credentials, which signs offline.
type fakeS3 struct {
	s3iface.S3API

	mu      sync.Mutex
	puts    []*s3.PutObjectInput
	bodies  map[string][]byte
	deletes []string
	listed  []*s3.Object
	putErr  error
}

func newFakeS3(t *testing.T) *fakeS3 {
	t.Helper()
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String("us-east-1"),
		Credentials: credentials.NewStaticCredentials("AKIDEXAMPLE", "secret", ""),
	})
	require.NoError(t, err)
	return &fakeS3{S3API: s3.New(sess), bodies: map[string][]byte{}}
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts = append(f.puts, in)
	f.bodies[aws.StringValue(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) ListObjectsV2PagesWithContext(
	_ aws.Context, _ *s3.ListObjectsV2Input, fn func(*s3.ListObjectsV2Output, bool) bool, _ ...request.Option,
) error {
	half := len(f.listed) / 2
	if !fn(&s3.ListObjectsV2Output{Contents: f.listed[:half]}, false) {
		return nil
	}
	fn(&s3.ListObjectsV2Output{Contents: f.listed[half:]}, true)
	return nil
}

func (f *fakeS3) DeleteObjectWithContext(_ aws.Context, in *s3.DeleteObjectInput, _ ...request.Option) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, aws.StringValue(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func newTestStore(t *testing.T, client s3iface.S3API) *Store {
	t.Helper()
	return New(Options{
		Client:    client,
		Bucket:    "hap-eb-reports",
		KeyPrefix: "billing-report",
		URLTTL:    time.Hour,
		Now:       func() time.Time { return frozen },
	})
}

func TestStore_PutsEncryptedWorkbookAndPresigns(t *testing.T) {
	fake := newFakeS3(t)
	store := newTestStore(t, fake)

	ref, err := store.Store(context.Background(), &model.ReportArtifact{Buffer: []byte("xlsx-bytes"), RowCount: 2})
	require.NoError(t, err)

	require.Len(t, fake.puts, 1)
	in := fake.puts[0]
	assert.Equal(t, "hap-eb-reports", aws.StringValue(in.Bucket))
	assert.Equal(t, model.XLSXContentType, aws.StringValue(in.ContentType))
	assert.Equal(t, s3.ServerSideEncryptionAes256, aws.StringValue(in.ServerSideEncryption))
	assert.Equal(t, int64(10), aws.Int64Value(in.ContentLength))
	assert.Equal(t, []byte("xlsx-bytes"), fake.bodies[ref.Key])

	assert.True(t, strings.HasPrefix(ref.Key, "reports/billing-report-2024-03-01-"), ref.Key)
	assert.True(t, strings.HasSuffix(ref.Key, ".xlsx"))
	assert.Contains(t, ref.URL, "hap-eb-reports")
	assert.Contains(t, ref.URL, "X-Amz-Expires=3600")
}

func TestStore_NoURLWhenPutFails(t *testing.T) {
	fake := newFakeS3(t)
	fake.putErr = errors.New("AccessDenied")
	store := newTestStore(t, fake)

	ref, err := store.Store(context.Background(), &model.ReportArtifact{Buffer: []byte("x")})
	require.Error(t, err)
	assert.Nil(t, ref)
	assert.Contains(t, err.Error(), "AccessDenied")
}

func TestStore_RejectsEmptyArtifact(t *testing.T) {
	store := newTestStore(t, newFakeS3(t))
	_, err := store.Store(context.Background(), &model.ReportArtifact{})
	assert.ErrorIs(t, err, ErrEmptyArtifact)
}

func TestNewKey_UniqueUnderConcurrency(t *testing.T) {
	store := newTestStore(t, newFakeS3(t))

	const n = 500
	keys := make(chan string, n)
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			keys <- store.NewKey()
		}()
	}
	wg.Wait()
	close(keys)

	seen := make(map[string]struct{}, n)
	for k := range keys {
		assert.True(t, ValidKey(k), k)
		seen[k] = struct{}{}
	}
	assert.Len(t, seen, n)
}

func TestStore_ConcurrentRunsNeverOverwrite(t *testing.T) {
	fake := newFakeS3(t)
	store := newTestStore(t, fake)

	const n = 20
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Store(context.Background(), &model.ReportArtifact{Buffer: []byte("x")})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Len(t, fake.bodies, n)
}

func TestStore_ListNewestFirst(t *testing.T) {
	fake := newFakeS3(t)
	fake.listed = []*s3.Object{
		{Key: aws.String("reports/billing-report-2024-01-01-a.xlsx"), Size: aws.Int64(10), LastModified: aws.Time(frozen.Add(-48 * time.Hour))},
		{Key: aws.String("reports/notes.txt"), LastModified: aws.Time(frozen)},
		{Key: aws.String("reports/billing-report-2024-01-03-c.xlsx"), Size: aws.Int64(30), LastModified: aws.Time(frozen)},
		{Key: aws.String("reports/billing-report-2024-01-02-b.xlsx"), Size: aws.Int64(20), LastModified: aws.Time(frozen.Add(-24 * time.Hour))},
	}
	store := newTestStore(t, fake)

	got, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "reports/billing-report-2024-01-03-c.xlsx", got[0].Key)
	assert.Equal(t, "reports/billing-report-2024-01-01-a.xlsx", got[2].Key)
	assert.Equal(t, int64(30), got[0].Size)
	for _, r := range got {
		assert.Contains(t, r.URL, "X-Amz-Signature=")
	}
}

func TestStore_Delete(t *testing.T) {
	fake := newFakeS3(t)
	store := newTestStore(t, fake)

	require.NoError(t, store.Delete(context.Background(), "reports/billing-report-2024-01-01-a.xlsx"))
	assert.Equal(t, []string{"reports/billing-report-2024-01-01-a.xlsx"}, fake.deletes)

	for _, bad := range []string{"", "reports/", "other/x.xlsx", "reports/../secret.xlsx", "reports/a/b.xlsx", "reports/x.csv"} {
		err := store.Delete(context.Background(), bad)
		assert.ErrorIs(t, err, ErrInvalidKey, bad)
	}
	assert.Len(t, fake.deletes, 1)
}

func TestNew_ClampsTTL(t *testing.T) {
	s := New(Options{Client: newFakeS3(t), Bucket: "b", URLTTL: 30 * 24 * time.Hour})
	assert.Equal(t, MaxURLTTL, s.ttl)
	assert.Equal(t, "report", s.prefix)
}
