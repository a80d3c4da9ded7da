// Package s3store persists report workbooks in S3 and hands out presigned
// download links.
package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"

	"github.com/hap-eb/ebill-reports/internal/core"
	"github.com/hap-eb/ebill-reports/internal/domain/model"
)

const (
	// KeyNamespace is the fixed directory every report key lives under.
	KeyNamespace = "reports/"
	keySuffix    = ".xlsx"

	// MaxURLTTL is the longest lifetime SigV4 presigned URLs support.
	MaxURLTTL     = 7 * 24 * time.Hour
	defaultURLTTL = MaxURLTTL
)

var (
	// ErrInvalidKey is returned by Delete for keys outside the report namespace.
	ErrInvalidKey = errors.New("key is not a report artifact")
	// ErrEmptyArtifact is returned by Store for a nil or empty workbook.
	ErrEmptyArtifact = errors.New("artifact is empty")
)

// Options configures a Store.
type Options struct {
	Client    s3iface.S3API // required
	Bucket    string        // required
	KeyPrefix string        // file name prefix, e.g. "billing-report"
	URLTTL    time.Duration // presigned URL lifetime; clamped to MaxURLTTL
	Now       func() time.Time
	NewSuffix func() string // optional; defaults to uuid.NewString
	Logger    *slog.Logger
}

// Store implements core.ArtifactStore on S3.
type Store struct {
	client    s3iface.S3API
	bucket    string
	prefix    string
	ttl       time.Duration
	now       func() time.Time
	newSuffix func() string
	logger    *slog.Logger
}

var _ core.ArtifactStore = (*Store)(nil)

// New constructs a Store. It panics when Client is nil, matching the other service constructors.
func New(opts Options) *Store {
	if opts.Client == nil {
		panic("s3store: Client is required")
	}
	prefix := strings.Trim(opts.KeyPrefix, "/ ")
	if prefix == "" {
		prefix = "report"
	}
	ttl := opts.URLTTL
	if ttl <= 0 {
		ttl = defaultURLTTL
	}
	ttl = min(ttl, MaxURLTTL)
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	newSuffix := opts.NewSuffix
	if newSuffix == nil {
		newSuffix = uuid.NewString
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		client:    opts.Client,
		bucket:    opts.Bucket,
		prefix:    prefix,
		ttl:       ttl,
		now:       now,
		newSuffix: newSuffix,
		logger:    logger.With("component", "s3store", "bucket", opts.Bucket),
	}
}

// NewKey returns reports/<prefix>-<YYYY-MM-DD>-<suffix>.xlsx. The suffix is a
// random UUID so concurrent runs on the same day never collide.
func (s *Store) NewKey() string {
	return fmt.Sprintf("%s%s-%s-%s%s", KeyNamespace, s.prefix, s.now().Format(time.DateOnly), s.newSuffix(), keySuffix)
}

// Store uploads the workbook with SSE-S3 encryption and returns a presigned URL.
// No URL is produced unless the upload succeeded.
func (s *Store) Store(ctx context.Context, artifact *model.ReportArtifact) (*model.StoredArtifactRef, error) {
	if artifact == nil || len(artifact.Buffer) == 0 {
		return nil, ErrEmptyArtifact
	}
	key := s.NewKey()

	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(s.bucket),
		Key:                  aws.String(key),
		Body:                 bytes.NewReader(artifact.Buffer),
		ContentLength:        aws.Int64(int64(len(artifact.Buffer))),
		ContentType:          aws.String(model.XLSXContentType),
		ServerSideEncryption: aws.String(s3.ServerSideEncryptionAes256),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload 's3://%s/%s': %w", s.bucket, key, err)
	}

	url, err := s.presign(key)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "report artifact stored", "key", key, "bytes", len(artifact.Buffer))
	return &model.StoredArtifactRef{Key: key, URL: url}, nil
}

// List returns every stored report, newest first, each with a fresh presigned URL.
func (s *Store) List(ctx context.Context) ([]model.StoredReport, error) {
	var out []model.StoredReport
	err := s.client.ListObjectsV2PagesWithContext(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(KeyNamespace),
	}, func(page *s3.ListObjectsV2Output, _ bool) bool {
		for _, obj := range page.Contents {
			key := aws.StringValue(obj.Key)
			if !strings.HasSuffix(key, keySuffix) {
				continue
			}
			out = append(out, model.StoredReport{
				Key:          key,
				Size:         aws.Int64Value(obj.Size),
				LastModified: aws.TimeValue(obj.LastModified),
			})
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list 's3://%s/%s': %w", s.bucket, KeyNamespace, err)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastModified.After(out[j].LastModified)
	})
	for i := range out {
		url, err := s.presign(out[i].Key)
		if err != nil {
			return nil, err
		}
		out[i].URL = url
	}
	return out, nil
}

// Delete removes one report object. Keys outside reports/*.xlsx are rejected.
func (s *Store) Delete(ctx context.Context, key string) error {
	if !ValidKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if _, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("failed to delete 's3://%s/%s': %w", s.bucket, key, err)
	}
	s.logger.InfoContext(ctx, "report artifact deleted", "key", key)
	return nil
}

// ValidKey reports whether key names a report artifact.
func ValidKey(key string) bool {
	name := strings.TrimPrefix(key, KeyNamespace)
	return strings.HasPrefix(key, KeyNamespace) &&
		strings.HasSuffix(key, keySuffix) &&
		len(name) > len(keySuffix) &&
		!strings.Contains(name, "/") &&
		!strings.Contains(name, "..")
}

func (s *Store) presign(key string) (string, error) {
	req, _ := s.client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	url, err := req.Presign(s.ttl)
	if err != nil {
		return "", fmt.Errorf("failed to presign 's3://%s/%s': %w", s.bucket, key, err)
	}
	return url, nil
}
