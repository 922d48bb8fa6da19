package service

import (
	"PriVault/internal/apperrors"
	"PriVault/internal/storage"
	"PriVault/internal/urlcache"
	"PriVault/utils"
	"context"
	"fmt"
	"path"
	"strings"
	"time"
)

// PreviewService resolves storage paths to inline-preview signed URLs. It
// owns its URL cache; entries expire with the signing window, so a hit never
// serves a stale URL and never touches the network.
type PreviewService struct {
	store  storage.Store
	bucket string
	ttl    time.Duration
	cache  *urlcache.Cache
}

// NewPreviewService builds a preview resolver over the given store.
func NewPreviewService(store storage.Store, bucket string, ttl time.Duration) *PreviewService {
	return &PreviewService{
		store:  store,
		bucket: bucket,
		ttl:    ttl,
		cache:  urlcache.New(ttl),
	}
}

// Resolve returns a signed URL for the storage path. An empty path is a
// validation error; a signing failure is a storage error for the caller to
// render as a placeholder.
func (s *PreviewService) Resolve(ctx context.Context, storagePath string) (string, error) {
	storagePath = strings.TrimSpace(storagePath)
	if storagePath == "" {
		return "", apperrors.Validation("file path missing")
	}

	if url, ok := s.cache.Get(storagePath); ok {
		return url, nil
	}

	contentType := ContentTypeForName(storagePath)
	safeName := utils.SanitizeHeaderFilename(path.Base(storagePath))
	disposition := fmt.Sprintf("inline; filename=\"%s\"", safeName)
	url, err := s.store.PresignedGetObjectWithResponse(
		ctx,
		s.bucket,
		storagePath,
		s.ttl,
		map[string]string{
			"response-content-type":        contentType,
			"response-content-disposition": disposition,
		},
	)
	if err != nil {
		return "", apperrors.Storage(err, "failed to resolve preview")
	}
	s.cache.Put(storagePath, url)
	return url, nil
}

// OwnsPath reports whether the storage path is scoped to the user.
func OwnsPath(userID uint64, storagePath string) bool {
	return strings.HasPrefix(storagePath, fmt.Sprintf("%d/", userID))
}
