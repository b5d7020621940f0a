package capture

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"AutopaintClient/internal/editor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeSaver пишет фиксированные байты либо падает, запоминая имя файла
// документа в момент сохранения.
type fakeSaver struct {
	data           []byte
	err            error
	filenameAtSave string
}

func (f *fakeSaver) Save(doc *editor.Document, path string) error {
	f.filenameAtSave = doc.Filename
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(path, f.data, 0o600)
}

func TestCaptureEncodesSavedBytes(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "capture.png")
	saver := &fakeSaver{data: []byte("png-bytes")}
	a := New(saver, tmp, zap.NewNop().Sugar())

	doc := &editor.Document{Filename: "work.png"}
	got, err := a.Capture(doc)
	require.NoError(t, err)

	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("png-bytes")), got)
	// На время сохранения действует временное имя, после — исходное
	assert.Equal(t, tmp, saver.filenameAtSave)
	assert.Equal(t, "work.png", doc.Filename)
}

func TestCaptureRestoresFilenameOnSaveFailure(t *testing.T) {
	saver := &fakeSaver{err: errors.New("disk full")}
	a := New(saver, filepath.Join(t.TempDir(), "capture.png"), zap.NewNop().Sugar())

	doc := &editor.Document{Filename: "work.png"}
	got, err := a.Capture(doc)
	assert.Error(t, err)
	assert.Empty(t, got)
	assert.Equal(t, "work.png", doc.Filename)
}

func TestCaptureNoDocument(t *testing.T) {
	a := New(&fakeSaver{}, "x.png", zap.NewNop().Sugar())
	got, err := a.Capture(nil)
	assert.Error(t, err)
	assert.Empty(t, got)
}
