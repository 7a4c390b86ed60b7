package inputprocessor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ahha/internal/models"
	"ahha/internal/util"

	log "github.com/sirupsen/logrus"
)

// MaxBodyBytes caps how much of a file or HTTP response is read.
const MaxBodyBytes = 5 << 20

// Input kinds recorded in Result.InputType.
const (
	InputFile = "file"
	InputURL  = "url"
	InputRaw  = "raw"
)

// Result holds extracted content details
type Result struct {
	Body        string
	MIMEType    string  // e.g. "text/html"
	ContentType string  // models.ContentTypeHTML or models.ContentTypeText
	InputType   string  // InputFile, InputURL or InputRaw
	FilePath    *string // Absolute path for file input
	URL         *string // Source URL for URL input
}

// Processor turns a CLI argument into snippet content.
type Processor interface {
	Process(ctx context.Context, input string) (Result, error)
}

// New creates a processor. A nil client uses a client with a 30s timeout.
func New(client *http.Client) Processor {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &defaultProcessor{client: client}
}

type defaultProcessor struct {
	client *http.Client
}

var _ Processor = (*defaultProcessor)(nil)

// Process treats input as a file path if one exists, then as an http(s) URL,
// and otherwise as the snippet text itself.
func (p *defaultProcessor) Process(ctx context.Context, input string) (Result, error) {
	if strings.TrimSpace(input) == "" {
		return Result{}, fmt.Errorf("%w: input is empty", models.ErrValidation)
	}

	// --- Detect File ---
	fi, err := os.Stat(input)
	switch {
	case err == nil && fi.IsDir():
		return Result{}, fmt.Errorf("%w: input '%s' is a directory", models.ErrValidation, input)
	case err == nil:
		return p.processFile(input)
	case !errors.Is(err, os.ErrNotExist) && !isNameError(err):
		return Result{}, fmt.Errorf("failed to stat input '%s': %w", input, err)
	}

	// --- Detect URL ---
	if parsedURL, urlErr := url.Parse(input); urlErr == nil && (parsedURL.Scheme == "http" || parsedURL.Scheme == "https") && parsedURL.Host != "" {
		return p.processURL(ctx, parsedURL)
	}

	// --- Default: Treat as Raw String ---
	log.Debug("Input is not a file or URL, treating as raw text")
	return Result{
		Body:        input,
		MIMEType:    "text/plain",
		ContentType: models.ContentTypeText,
		InputType:   InputRaw,
	}, nil
}

func (p *defaultProcessor) processFile(path string) (Result, error) {
	binary, err := util.IsLikelyBinary(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read file '%s': %w", path, err)
	}
	if binary {
		return Result{}, fmt.Errorf("%w: file '%s' looks binary", models.ErrValidation, path)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return Result{}, fmt.Errorf("permission denied reading file '%s': %w", path, err)
		}
		return Result{}, fmt.Errorf("failed to read file '%s': %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxBodyBytes))
	if err != nil {
		return Result{}, fmt.Errorf("failed to read file '%s': %w", path, err)
	}

	absPath, pathErr := filepath.Abs(path)
	if pathErr != nil {
		log.WithError(pathErr).Warnf("Failed to get absolute path for '%s', using it as given", path)
		absPath = path
	}

	mimeType := mimeFromExt(path)
	if mimeType == "" {
		mimeType = baseMIME(http.DetectContentType(data))
	}
	log.WithField("path", absPath).Debug("Input detected as a file")

	return Result{
		Body:        string(data),
		MIMEType:    mimeType,
		ContentType: contentTypeFor(mimeType),
		InputType:   InputFile,
		FilePath:    &absPath,
	}, nil
}

func (p *defaultProcessor) processURL(ctx context.Context, u *url.URL) (Result, error) {
	urlStr := u.String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create request for URL '%s': %w", urlStr, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("failed to fetch URL '%s': %w", urlStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		hint, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return Result{}, fmt.Errorf("failed to fetch URL '%s': status code %d %s - Body Hint: %s",
			urlStr, resp.StatusCode, http.StatusText(resp.StatusCode), string(hint))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return Result{}, fmt.Errorf("failed to read response body from URL '%s': %w", urlStr, err)
	}

	mimeType := baseMIME(resp.Header.Get("Content-Type"))
	if mimeType == "" {
		mimeType = baseMIME(http.DetectContentType(data))
	}
	log.WithFields(log.Fields{"url": urlStr, "mime": mimeType}).Debug("Input detected as a URL")

	return Result{
		Body:        string(data),
		MIMEType:    mimeType,
		ContentType: contentTypeFor(mimeType),
		InputType:   InputURL,
		URL:         &urlStr,
	}, nil
}

// baseMIME drops parameters such as charset from a Content-Type value.
func baseMIME(v string) string {
	if v == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(v)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.SplitN(v, ";", 2)[0]))
	}
	return mt
}

func mimeFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return "text/html"
	case ".md", ".markdown":
		return "text/markdown"
	case ".txt":
		return "text/plain"
	}
	return ""
}

func contentTypeFor(mimeType string) string {
	if mimeType == "text/html" || mimeType == "application/xhtml+xml" {
		return models.ContentTypeHTML
	}
	return models.ContentTypeText
}

// isNameError reports stat failures caused by text that cannot be a path,
// such as a sentence longer than the file name limit.
func isNameError(err error) bool {
	var pathErr *os.PathError
	if !errors.As(err, &pathErr) {
		return false
	}
	msg := pathErr.Err.Error()
	return strings.Contains(msg, "file name too long") || strings.Contains(msg, "invalid argument") || strings.Contains(msg, "not a directory")
}
