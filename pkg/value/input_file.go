package value

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// InputFile is a file argument of an outgoing operation: either a reference
// Telegram already understands (file_id or URL) or a local upload.
type InputFile struct {
	remote string
	upload *Upload
}

// InputFileID reuses a file already stored on Telegram servers.
func InputFileID(id string) (InputFile, error) {
	if strings.TrimSpace(id) == "" {
		return InputFile{}, invalid("file id must not be empty")
	}

	return InputFile{remote: id}, nil
}

// InputFileURL lets Telegram fetch the file from an HTTP(S) URL.
func InputFileURL(rawURL string) (InputFile, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return InputFile{}, invalid("file url %q must be an absolute http(s) url", rawURL)
	}

	return InputFile{remote: parsed.String()}, nil
}

// UploadFile wraps a local stream. Ownership of r moves to the returned
// InputFile; whoever transmits the payload closes it.
func UploadFile(name string, r io.ReadCloser) (InputFile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return InputFile{}, invalid("upload file name must not be empty")
	}
	if r == nil {
		return InputFile{}, invalid("upload reader is required")
	}

	return InputFile{upload: &Upload{name: name, r: r}}, nil
}

// OpenFile opens a local path for upload.
func OpenFile(path string) (InputFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return InputFile{}, fmt.Errorf("open upload file: %w", err)
	}

	return UploadFile(filepath.Base(path), f)
}

// InputFileFromWire reads a remote reference. Uploads have no inline wire form.
func InputFileFromWire(raw any) (InputFile, error) {
	s, err := String(raw)
	if err != nil {
		return InputFile{}, err
	}

	return InputFileID(s)
}

// Upload returns the local upload, if any.
func (f InputFile) Upload() (*Upload, bool) {
	return f.upload, f.upload != nil
}

// IsUpload reports whether the file is a local stream.
func (f InputFile) IsUpload() bool { return f.upload != nil }

// IsZero reports whether no file was set.
func (f InputFile) IsZero() bool { return f.remote == "" && f.upload == nil }

func (f InputFile) String() string {
	if f.upload != nil {
		return "upload:" + f.upload.name
	}

	return f.remote
}

// Wire returns the remote reference, or an empty string for uploads.
func (f InputFile) Wire() any { return f.remote }

// Upload is a named byte stream attached to a multipart payload.
type Upload struct {
	name string
	r    io.ReadCloser

	closeOnce sync.Once
	closeErr  error
}

// Name is the file name sent with the multipart part.
func (u *Upload) Name() string { return u.name }

func (u *Upload) Read(p []byte) (int, error) { return u.r.Read(p) }

// Close releases the stream. Later calls return the first result.
func (u *Upload) Close() error {
	u.closeOnce.Do(func() {
		u.closeErr = u.r.Close()
	})

	return u.closeErr
}
