package service

import (
	"PriVault/internal/apperrors"
	"PriVault/internal/repo"
	"PriVault/model"
	"context"
	"strings"
)

// VaultSession is the in-memory view of one signed-in user's vault: the
// authoritative file collection, its loading flag and the search/selection
// state. It lives from sign-in to sign-out.
type VaultSession struct {
	User          *model.User
	Files         []model.VaultFile
	IsLoading     bool
	SearchQuery   string
	SelectedFile  *model.VaultFile
	PhoneRequired bool
}

// BootstrapSession runs once per transition to "authenticated": it upserts
// the user record keyed by email, loads the owner's files and reports
// whether phone capture is still required. A failed upsert leaves the file
// fetch unattempted.
func BootstrapSession(ctx context.Context, email string) (*VaultSession, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.Precondition("no user")
	}

	sess := &VaultSession{IsLoading: true}

	user := &model.User{Email: email, IsActive: true}
	if err := repo.Users.UpsertByEmail(ctx, user); err != nil {
		sess.IsLoading = false
		return nil, apperrors.Persistence(err, "failed to load account")
	}
	sess.User = user

	files, err := repo.Files.ListByOwner(ctx, email)
	if err != nil {
		sess.IsLoading = false
		return nil, apperrors.Persistence(err, "failed to load files")
	}
	// Resolved URLs are lazy; a fresh fetch always starts blank.
	for i := range files {
		files[i].ResolvedURL = ""
	}
	sess.Files = files
	sess.IsLoading = false
	sess.PhoneRequired = user.AccountState() == model.AccountStateMissingPhone
	return sess, nil
}

// Filtered derives the visible file list from (Files, SearchQuery). It is
// recomputed on demand and never stored.
func (s *VaultSession) Filtered() []model.VaultFile {
	return FilterFiles(s.Files, s.SearchQuery)
}

// Select marks the file with the given id for detail display.
func (s *VaultSession) Select(id uint64) bool {
	for i := range s.Files {
		if s.Files[i].ID == id {
			s.SelectedFile = &s.Files[i]
			return true
		}
	}
	return false
}

// ClearSelection drops the detail selection.
func (s *VaultSession) ClearSelection() {
	s.SelectedFile = nil
}

// Teardown clears all session state synchronously on sign-out so nothing
// leaks across sessions.
func (s *VaultSession) Teardown() {
	s.User = nil
	s.Files = nil
	s.IsLoading = false
	s.SearchQuery = ""
	s.SelectedFile = nil
	s.PhoneRequired = false
}
