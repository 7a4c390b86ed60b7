package inputprocessor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ahha/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess_RawText(t *testing.T) {
	res, err := New(nil).Process(context.Background(), "RAG is powerful for knowledge stores")
	require.NoError(t, err)
	assert.Equal(t, InputRaw, res.InputType)
	assert.Equal(t, "RAG is powerful for knowledge stores", res.Body)
	assert.Equal(t, models.ContentTypeText, res.ContentType)
	assert.Nil(t, res.URL)
}

func TestProcess_LongRawText(t *testing.T) {
	long := strings.Repeat("very long sentence ", 40)
	res, err := New(nil).Process(context.Background(), long)
	require.NoError(t, err)
	assert.Equal(t, InputRaw, res.InputType)
}

func TestProcess_Empty(t *testing.T) {
	_, err := New(nil).Process(context.Background(), "   ")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestProcess_File(t *testing.T) {
	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "note.html")
	txtPath := filepath.Join(dir, "note.txt")
	binPath := filepath.Join(dir, "blob.bin")
	require.NoError(t, os.WriteFile(htmlPath, []byte("<p>hello</p>"), 0o644))
	require.NoError(t, os.WriteFile(txtPath, []byte("plain notes"), 0o644))
	require.NoError(t, os.WriteFile(binPath, []byte{0x00, 0x01, 0x02}, 0o644))

	res, err := New(nil).Process(context.Background(), htmlPath)
	require.NoError(t, err)
	assert.Equal(t, InputFile, res.InputType)
	assert.Equal(t, models.ContentTypeHTML, res.ContentType)
	require.NotNil(t, res.FilePath)
	assert.Equal(t, htmlPath, *res.FilePath)

	res, err = New(nil).Process(context.Background(), txtPath)
	require.NoError(t, err)
	assert.Equal(t, "plain notes", res.Body)
	assert.Equal(t, models.ContentTypeText, res.ContentType)

	_, err = New(nil).Process(context.Background(), binPath)
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = New(nil).Process(context.Background(), dir)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestProcess_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/page":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html><body><p>ah-ha</p></body></html>"))
		case "/text":
			w.Header().Set("Content-Type", "text/plain")
			_, _ = w.Write([]byte("just text"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	p := New(srv.Client())

	res, err := p.Process(context.Background(), srv.URL+"/page")
	require.NoError(t, err)
	assert.Equal(t, InputURL, res.InputType)
	assert.Equal(t, "text/html", res.MIMEType)
	assert.Equal(t, models.ContentTypeHTML, res.ContentType)
	require.NotNil(t, res.URL)
	assert.Equal(t, srv.URL+"/page", *res.URL)

	res, err = p.Process(context.Background(), srv.URL+"/text")
	require.NoError(t, err)
	assert.Equal(t, "just text", res.Body)
	assert.Equal(t, models.ContentTypeText, res.ContentType)

	_, err = p.Process(context.Background(), srv.URL+"/missing")
	assert.ErrorContains(t, err, "status code 404")
}

func TestBaseMIME(t *testing.T) {
	assert.Equal(t, "text/html", baseMIME("text/html; charset=utf-8"))
	assert.Equal(t, "text/plain", baseMIME("TEXT/PLAIN"))
	assert.Equal(t, "", baseMIME(""))
}
