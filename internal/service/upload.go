package service

import (
	"PriVault/config"
	"PriVault/internal/apperrors"
	"PriVault/internal/repo"
	"PriVault/internal/storage"
	"PriVault/model"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
)

// CleanupEnqueue schedules a compensating delete for a blob whose metadata
// insert failed. Wired to the task queue at startup; tests swap a recorder.
var CleanupEnqueue func(ctx context.Context, bucket, object, ownerEmail string)

// BuildStoragePath scopes an object name under the owner's identity so
// different users can never collide. Same-named uploads by the same user
// overwrite at the blob level, last write wins.
func BuildStoragePath(userID uint64, fileName string) string {
	return fmt.Sprintf("%d/%s", userID, fileName)
}

// UploadFile writes the bytes to object storage under a user-scoped path,
// records the metadata row and appends the new record to the session
// collection. The blob write and the insert are not transactional: when the
// insert fails the blob is handed to the cleanup queue and the collection is
// left untouched.
func UploadFile(
	ctx context.Context,
	sess *VaultSession,
	fileName string,
	reader io.Reader,
	size int64,
) (*model.VaultFile, error) {
	if sess == nil || sess.User == nil {
		return nil, apperrors.Precondition("no user")
	}
	fileName = strings.TrimSpace(path.Base(fileName))
	if fileName == "" || fileName == "." || fileName == "/" {
		return nil, apperrors.Validation("select a file")
	}
	if sess.User.AccountState() != model.AccountStateComplete {
		return nil, apperrors.Precondition("phone number required")
	}
	if storage.Default == nil {
		return nil, apperrors.Storage(nil, "storage not initialized")
	}

	bucket := config.AppConfig.BucketName
	objectName := BuildStoragePath(sess.User.ID, fileName)

	if err := storage.Default.PutObject(
		ctx,
		bucket,
		objectName,
		reader,
		size,
		storage.PutOptions{ContentType: ContentTypeForName(fileName)},
	); err != nil {
		return nil, apperrors.Storage(err, "upload failed")
	}

	file := &model.VaultFile{
		Name:        fileName,
		Description: "",
		StoragePath: objectName,
		OwnerEmail:  sess.User.Email,
	}
	if err := repo.Files.Insert(ctx, file); err != nil {
		if CleanupEnqueue != nil {
			CleanupEnqueue(ctx, bucket, objectName, sess.User.Email)
		}
		return nil, apperrors.Persistence(err, "failed to save file")
	}

	// The listing is newest first; the confirmed record joins the front with
	// a blank resolved URL.
	file.ResolvedURL = ""
	sess.Files = append([]model.VaultFile{*file}, sess.Files...)
	return file, nil
}

// ContentTypeForName returns a content type by file extension.
func ContentTypeForName(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".txt":
		return "text/plain; charset=utf-8"
	case ".pdf":
		return "application/pdf"
	case ".zip":
		return "application/zip"
	case ".mp4":
		return "video/mp4"
	default:
		return "application/octet-stream"
	}
}
