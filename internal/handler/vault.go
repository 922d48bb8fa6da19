package handler

import (
	"PriVault/config"
	"PriVault/internal/apperrors"
	"PriVault/internal/dto"
	"PriVault/internal/logger"
	"PriVault/internal/repo"
	"PriVault/internal/service"
	"PriVault/model"
	"PriVault/utils"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Preview is the shared resolver instance, wired in main.
var Preview *service.PreviewService

// Bootstrap upserts the signed-in user, loads the vault listing and reports
// whether phone capture is pending. Called once per sign-in.
func Bootstrap(c *gin.Context) {
	email := c.MustGet("email").(string)
	sess, err := service.BootstrapSession(c.Request.Context(), email)
	if err != nil {
		logger.Error("bootstrap failed", "email", email, "err", err)
		utils.Fail(c, err)
		return
	}
	utils.Success(c, dto.BootstrapResponse{
		User:          sess.User,
		Files:         sess.Files,
		PhoneRequired: sess.PhoneRequired,
	})
}

// ListFiles returns the owner's files, filtered by the optional query.
func ListFiles(c *gin.Context) {
	email := c.MustGet("email").(string)
	ctx := c.Request.Context()

	files, cached := utils.GetVaultListingFromCache(ctx, email)
	if !cached {
		var err error
		files, err = repo.Files.ListByOwner(ctx, email)
		if err != nil {
			utils.Fail(c, apperrors.Persistence(err, "failed to load files"))
			return
		}
		for i := range files {
			files[i].ResolvedURL = ""
		}
		if err := utils.SetVaultListingToCache(ctx, email, files, config.AppConfig.ListingCacheTTL); err != nil {
			logger.Warn("listing cache write failed", "email", email, "err", err)
		}
	}

	query := c.Query("query")
	filtered := service.FilterFiles(files, query)
	utils.Success(c, dto.FileListResponse{
		Files: filtered,
		Total: len(filtered),
		Query: query,
	})
}

// loadUser fetches the signed-in user's record. A missing row means the
// account was never bootstrapped; anything else is a database problem and
// must not masquerade as one.
func loadUser(c *gin.Context, email string) (*model.User, error) {
	user, err := repo.Users.FindByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Precondition("no user")
		}
		return nil, apperrors.Persistence(err, "failed to load account")
	}
	return user, nil
}

// UploadFile stores one multipart file in the signed-in user's vault.
func UploadFile(c *gin.Context) {
	email := c.MustGet("email").(string)
	ctx := c.Request.Context()

	user, err := loadUser(c, email)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.Fail(c, apperrors.Validation("select a file"))
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		utils.Fail(c, apperrors.Validation("select a file"))
		return
	}
	defer src.Close()

	sess := &service.VaultSession{User: user}
	file, err := service.UploadFile(ctx, sess, fileHeader.Filename, src, fileHeader.Size)
	if err != nil {
		logger.Error("upload failed", "email", email, "file", fileHeader.Filename, "err", err)
		utils.Fail(c, err)
		return
	}

	if err := utils.InvalidateVaultListingCache(ctx, email); err != nil {
		logger.Warn("listing cache invalidate failed", "email", email, "err", err)
	}
	utils.Success(c, file)
}

// PreviewFile resolves a signed preview URL for a storage path the caller
// owns.
func PreviewFile(c *gin.Context) {
	userID := c.MustGet("user_id").(uint64)
	storagePath := c.Query("path")
	if storagePath == "" {
		utils.Fail(c, apperrors.Validation("file path missing"))
		return
	}
	if !service.OwnsPath(userID, storagePath) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	url, err := Preview.Resolve(c.Request.Context(), storagePath)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, dto.PreviewResponse{URL: url})
}

// SavePhone validates and persists the required phone number.
func SavePhone(c *gin.Context) {
	email := c.MustGet("email").(string)
	ctx := c.Request.Context()

	var req dto.PhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, apperrors.Validation("enter a valid phone number with country code"))
		return
	}

	user, err := loadUser(c, email)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	sess := &service.VaultSession{User: user}
	if err := service.SavePhone(ctx, sess, req.Phone); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, sess.User)
}
