package fsblob

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohitbokare05/Project-Connect-IITR/storage/blob"
)

func TestUploadAndDelete(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s, err := Open(root, "http://localhost:8000/uploads/")
	require.NoError(t, err)

	url, err := s.Upload(ctx, "resumes/u1/1_cv.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/uploads/resumes/u1/1_cv.pdf", url)

	data, err := os.ReadFile(filepath.Join(root, "resumes", "u1", "1_cv.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	require.NoError(t, s.Delete(ctx, url))
	_, err = os.Stat(filepath.Join(root, "resumes", "u1", "1_cv.pdf"))
	assert.True(t, os.IsNotExist(err))

	assert.Equal(t, blob.ErrNotFound, s.Delete(ctx, url))
}

func TestUploadRefusesPathEscape(t *testing.T) {
	s, err := Open(t.TempDir(), "http://localhost:8000/uploads")
	require.NoError(t, err)

	_, err = s.Upload(context.Background(), "../outside.txt", strings.NewReader("x"))
	assert.Error(t, err)
}
