package imagehost

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"

	"github.com/spec-kit/photoshare-service/internal/config"
)

var (
	// ErrUnsupportedType is returned for uploads that are not a known image format.
	ErrUnsupportedType = errors.New("unsupported image type")
	// ErrObjectNotFound is returned when a key does not exist in the bucket.
	ErrObjectNotFound = errors.New("object not found")
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Folders used for object keys.
const (
	FolderPhotos  = "photos"
	FolderAvatars = "avatars"
	FolderQRCodes = "qr_codes"
)

// Upload describes a stored object.
type Upload struct {
	PublicID    string
	URL         string
	ContentType string
}

// Object is a stored object read back from the bucket.
type Object struct {
	Data        []byte
	ContentType string
}

// Store keeps image bytes in a gocloud bucket and hands out public URLs for them.
type Store struct {
	bucket        *blob.Bucket
	publicBaseURL string
	transformBase string
	logger        *zap.Logger
}

// Open opens the bucket named by cfg.BucketURL (mem://, file:///path, ...).
func Open(ctx context.Context, cfg config.ImagesConfig, logger *zap.Logger) (*Store, error) {
	bucket, err := blob.OpenBucket(ctx, cfg.BucketURL)
	if err != nil {
		return nil, fmt.Errorf("open bucket %q: %w", cfg.BucketURL, err)
	}
	logger.Info("image bucket opened", zap.String("url", cfg.BucketURL))
	return NewStore(bucket, cfg.PublicBaseURL, cfg.TransformBaseURL, logger), nil
}

// NewStore wraps an already opened bucket.
func NewStore(bucket *blob.Bucket, publicBaseURL, transformBaseURL string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		transformBase: strings.TrimRight(transformBaseURL, "/"),
		logger:        logger,
	}
}

// UploadImage stores data under folder with a generated name. The content type is
// sniffed from the bytes and must be one of the supported image formats.
func (s *Store) UploadImage(ctx context.Context, folder string, data []byte) (*Upload, error) {
	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
	return s.Put(ctx, folder+"/"+uuid.NewString()+ext, data, contentType)
}

// Put writes data at key, replacing any existing object.
func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) (*Upload, error) {
	opts := &blob.WriterOptions{ContentType: contentType}
	if err := s.bucket.WriteAll(ctx, key, data, opts); err != nil {
		return nil, fmt.Errorf("write %s: %w", key, err)
	}
	s.logger.Debug("object stored", zap.String("key", key), zap.Int("bytes", len(data)))
	return &Upload{PublicID: key, URL: s.PublicURL(key), ContentType: contentType}, nil
}

// Get reads the object stored at key.
func (s *Store) Get(ctx context.Context, key string) (*Object, error) {
	attrs, err := s.bucket.Attributes(ctx, key)
	if err != nil {
		return nil, s.mapErr(key, err)
	}
	data, err := s.bucket.ReadAll(ctx, key)
	if err != nil {
		return nil, s.mapErr(key, err)
	}
	return &Object{Data: data, ContentType: attrs.ContentType}, nil
}

// Delete removes key. Missing objects are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Exists reports whether key is stored.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	return s.bucket.Exists(ctx, key)
}

// PublicURL returns the address clients use to fetch key.
func (s *Store) PublicURL(key string) string {
	return s.publicBaseURL + "/" + key
}

// Close releases the bucket.
func (s *Store) Close() error {
	return s.bucket.Close()
}

func (s *Store) mapErr(key string, err error) error {
	if gcerrors.Code(err) == gcerrors.NotFound {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, key)
	}
	return fmt.Errorf("read %s: %w", key, err)
}
