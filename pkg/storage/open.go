package storage

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// supportedBlobSchemes lists the URL schemes opened as blob storage
var supportedBlobSchemes = []string{"gs://", "s3://", "azblob://", "mem://", "file://"}

// Open returns blob storage for bucket URLs and filesystem storage for
// everything else
func Open(ctx context.Context, l *zap.Logger, target, prefix string) (Storage, error) {
	if target == "" {
		return nil, errors.New("storage target must not be empty")
	}

	if !IsBlobURL(target) {
		if strings.Contains(target, "://") {
			return nil, errors.Errorf("unsupported storage URL scheme in %q; supported schemes: %s", target, strings.Join(supportedBlobSchemes, ", "))
		}
		if prefix != "" {
			l.Warn("storage prefix is ignored for filesystem storage", zap.String("prefix", prefix))
		}
		l.Debug("using filesystem storage", zap.String("dir", target))
		return NewFilesystemStorage(target)
	}

	l.Debug("using blob storage",
		zap.String("bucket", target),
		zap.String("prefix", prefix),
		zap.String("provider", DetectBlobProvider(target)),
	)
	s, err := NewBlobStorage(ctx, target, prefix)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %q", target)
	}
	return s, nil
}

// IsBlobURL checks if the target has a supported bucket scheme
func IsBlobURL(target string) bool {
	for _, scheme := range supportedBlobSchemes {
		if strings.HasPrefix(target, scheme) {
			return true
		}
	}
	return false
}

// DetectBlobProvider returns a human-readable provider name from the URL scheme
func DetectBlobProvider(bucketURL string) string {
	switch {
	case strings.HasPrefix(bucketURL, "gs://"):
		return "Google Cloud Storage"
	case strings.HasPrefix(bucketURL, "s3://"):
		return "AWS S3"
	case strings.HasPrefix(bucketURL, "azblob://"):
		return "Azure Blob Storage"
	case strings.HasPrefix(bucketURL, "mem://"):
		return "In-Memory"
	case strings.HasPrefix(bucketURL, "file://"):
		return "Local Bucket"
	default:
		return "unknown"
	}
}
