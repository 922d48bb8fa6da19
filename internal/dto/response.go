package dto

import "PriVault/model"

// BootstrapResponse is returned once per sign-in.
type BootstrapResponse struct {
	User          *model.User       `json:"user"`
	Files         []model.VaultFile `json:"files"`
	PhoneRequired bool              `json:"phone_required"`
}

// FileListResponse carries the (filtered) vault listing.
type FileListResponse struct {
	Files []model.VaultFile `json:"files"`
	Total int               `json:"total"`
	Query string            `json:"query,omitempty"`
}

// PreviewResponse carries a resolved signed URL.
type PreviewResponse struct {
	URL string `json:"url"`
}
