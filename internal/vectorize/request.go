// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package vectorize

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/google/uuid"
)

// ImageField is the multipart field carrying the image bytes.
const ImageField = "image"

// RequestIDHeader carries a per-conversion id for log correlation.
const RequestIDHeader = "X-Request-ID"

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// BuildRequest assembles the multipart POST for img. The image part comes
// first, followed by one text field per parameter. The only failure source
// is reading the image through opener.
func BuildRequest(ctx context.Context, endpoint string, img SelectedImage, params Parameters, opener ImageOpener) (*http.Request, error) {
	body, contentType, err := encodeForm(img, params, opener)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEndpoint, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "image/svg+xml, application/json, text/plain")
	req.Header.Set(RequestIDHeader, uuid.NewString())
	return req, nil
}

func encodeForm(img SelectedImage, params Parameters, opener ImageOpener) (*bytes.Buffer, string, error) {
	rc, err := opener.Open(img.URI)
	if err != nil {
		return nil, "", err
	}
	defer rc.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		ImageField, quoteEscaper.Replace(img.Name)))
	h.Set("Content-Type", img.MIMEType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create image part: %w", err)
	}
	if _, err := io.Copy(part, rc); err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}

	for _, f := range params.Fields() {
		if err := w.WriteField(f.Key, f.Value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", f.Key, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
