package service

import (
	"PriVault/internal/storage"
	"PriVault/model"
	"context"
	"fmt"
	"io"
	"time"

	"gorm.io/gorm"
)

type fakeUserStore struct {
	users            map[string]*model.User
	nextID           uint64
	upsertErr        error
	updatePhoneErr   error
	upsertCalls      int
	updatePhoneCalls int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*model.User{}}
}

func (s *fakeUserStore) Create(ctx context.Context, user *model.User) error {
	s.nextID++
	user.ID = s.nextID
	copied := *user
	s.users[user.Email] = &copied
	return nil
}

func (s *fakeUserStore) UpsertByEmail(ctx context.Context, user *model.User) error {
	s.upsertCalls++
	if s.upsertErr != nil {
		return s.upsertErr
	}
	if existing, ok := s.users[user.Email]; ok {
		*user = *existing
		return nil
	}
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	copied := *user
	s.users[user.Email] = &copied
	return nil
}

func (s *fakeUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) UpdatePhone(ctx context.Context, email, phone string) error {
	s.updatePhoneCalls++
	if s.updatePhoneErr != nil {
		return s.updatePhoneErr
	}
	user, ok := s.users[email]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.Phone = phone
	return nil
}

type fakeFileStore struct {
	files       []model.VaultFile
	nextID      uint64
	insertErr   error
	insertCalls int
	listCalls   int
}

func (s *fakeFileStore) Insert(ctx context.Context, file *model.VaultFile) error {
	s.insertCalls++
	if s.insertErr != nil {
		return s.insertErr
	}
	s.nextID++
	file.ID = s.nextID
	file.CreatedAt = time.Now()
	s.files = append(s.files, *file)
	return nil
}

func (s *fakeFileStore) ListByOwner(ctx context.Context, ownerEmail string) ([]model.VaultFile, error) {
	s.listCalls++
	var out []model.VaultFile
	for i := len(s.files) - 1; i >= 0; i-- {
		if s.files[i].OwnerEmail == ownerEmail {
			out = append(out, s.files[i])
		}
	}
	return out, nil
}

type fakeObjectStore struct {
	objects      map[string][]byte
	putErr       error
	presignErr   error
	presignCalls int
	removed      []string
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: map[string][]byte{}}
}

func (s *fakeObjectStore) PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64, opts storage.PutOptions) error {
	if s.putErr != nil {
		return s.putErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.objects[bucket+"/"+object] = data
	return nil
}

func (s *fakeObjectStore) RemoveObject(ctx context.Context, bucket, object string) error {
	s.removed = append(s.removed, bucket+"/"+object)
	delete(s.objects, bucket+"/"+object)
	return nil
}

func (s *fakeObjectStore) PresignedGetObjectWithResponse(ctx context.Context, bucket, object string, expiry time.Duration, params map[string]string) (string, error) {
	s.presignCalls++
	if s.presignErr != nil {
		return "", s.presignErr
	}
	return fmt.Sprintf("https://signed.example/%s/%s?n=%d", bucket, object, s.presignCalls), nil
}
