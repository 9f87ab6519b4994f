package uploader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sa6mwa/mkfeed/internal/app/model"
	"github.com/sa6mwa/mkfeed/internal/app/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
  <channel>
    <title>Вести</title>
  </channel>
</rss>
`

func TestKey(t *testing.T) {
	assert.Equal(t, "podcasts/vesti.xml", Key("podcasts", "public/feeds/vesti.xml"))
	assert.Equal(t, "vesti.xml", Key("", "public/feeds/vesti.xml"))
	assert.Equal(t, "a/b/vesti.xml", Key("/a/b/", "vesti.xml"))
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, validate(nil), ErrNilPointerRequest)
	assert.ErrorIs(t, validate(&ports.ForUploadingRequest{Store: "bucket"}), ErrFilenameMissing)
	assert.ErrorIs(t, validate(&ports.ForUploadingRequest{From: "vesti.xml"}), ErrNoBucket)

	r := &ports.ForUploadingRequest{Store: "bucket", From: "vesti.xml"}
	require.NoError(t, validate(r))
	assert.Equal(t, "vesti.xml", r.To)
	assert.Equal(t, "STANDARD", r.StorageClass)
}

func TestGetContentType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vesti.xml")
	require.NoError(t, os.WriteFile(path, []byte(feed), 0644))
	contentType, err := getContentType(path)
	require.NoError(t, err)
	assert.Contains(t, contentType, "xml")
}

func TestUploadWithoutBucket(t *testing.T) {
	u := New(model.AwsConfig{Region: "eu-north-1"})
	err := u.Upload(context.Background(), &ports.ForUploadingRequest{From: "vesti.xml"})
	assert.ErrorIs(t, err, ErrNoBucket)
	err = u.Diff(context.Background(), "", "vesti.xml", "vesti.xml")
	assert.ErrorIs(t, err, ErrNoBucket)
}
