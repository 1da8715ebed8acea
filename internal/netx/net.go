// Package netx contains low-level HTTP plumbing shared by the API client.
package netx

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strings"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// MultipartFile encodes a single file into a multipart/form-data body.
// It returns the body and the Content-Type header value carrying the
// boundary. The declared MIME type is preserved in the part header so the
// server sees the picker-reported type rather than a generic octet-stream.
func MultipartFile(field, filename, mimeType string, data io.Reader) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(filepath.Base(filename))))
	if mimeType != "" {
		h.Set("Content-Type", mimeType)
	}

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("create part: %w", err)
	}
	if _, err := io.Copy(part, data); err != nil {
		return nil, "", fmt.Errorf("copy file data: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}

	return body, w.FormDataContentType(), nil
}
