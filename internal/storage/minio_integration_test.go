package storage

import (
	"PriVault/config"
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initMinioIntegration connects to the test bucket. Skipped unless a MinIO
// instance is up and PRIVAULT_INTEGRATION is set.
func initMinioIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv("PRIVAULT_INTEGRATION") == "" {
		t.Skip("set PRIVAULT_INTEGRATION=1 with MinIO running to enable")
	}
	config.InitConfig()
	InitMinioTest()
}

func TestIntegrationObjectRoundTrip(t *testing.T) {
	initMinioIntegration(t)
	ctx := context.Background()

	bucket := config.AppConfig.BucketNameTest
	object := "integration/1/notes.txt"
	content := "integration-round-trip"

	err := DefaultTest.PutObject(ctx, bucket, object, strings.NewReader(content), int64(len(content)), PutOptions{ContentType: "text/plain; charset=utf-8"})
	require.NoError(t, err)
	defer func() {
		_ = DefaultTest.RemoveObject(ctx, bucket, object)
	}()

	store, ok := DefaultTest.(*MinioStore)
	require.True(t, ok)
	reader, info, err := store.GetObject(ctx, bucket, object)
	require.NoError(t, err)
	defer reader.Close()

	assert.Equal(t, object, info.ObjectName)
	assert.Equal(t, int64(len(content)), info.Size)
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestIntegrationPresignedPreviewURL(t *testing.T) {
	initMinioIntegration(t)
	ctx := context.Background()

	bucket := config.AppConfig.BucketNameTest
	object := "integration/1/photo.png"
	content := "not-really-a-png"

	err := DefaultTest.PutObject(ctx, bucket, object, strings.NewReader(content), int64(len(content)), PutOptions{ContentType: "image/png"})
	require.NoError(t, err)
	defer func() {
		_ = DefaultTest.RemoveObject(ctx, bucket, object)
	}()

	url, err := DefaultTest.PresignedGetObjectWithResponse(ctx, bucket, object, time.Hour, map[string]string{
		"response-content-type":        "image/png",
		"response-content-disposition": `inline; filename="photo.png"`,
	})
	require.NoError(t, err)
	assert.Contains(t, url, object)
	assert.Contains(t, url, "response-content-type")
	assert.Contains(t, url, "response-content-disposition")
}

func TestIntegrationRemoveObject(t *testing.T) {
	initMinioIntegration(t)
	ctx := context.Background()

	bucket := config.AppConfig.BucketNameTest
	object := "integration/1/doomed.txt"

	err := DefaultTest.PutObject(ctx, bucket, object, strings.NewReader("x"), 1, PutOptions{})
	require.NoError(t, err)
	require.NoError(t, DefaultTest.RemoveObject(ctx, bucket, object))

	store := DefaultTest.(*MinioStore)
	_, _, err = store.GetObject(ctx, bucket, object)
	assert.Error(t, err)
}
