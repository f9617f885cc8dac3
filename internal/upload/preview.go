package upload

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

// Preview returns a data URL for r, as the upload widgets show before submit.
// Inputs larger than limit bytes are refused (no limit when limit <= 0).
func Preview(r io.Reader, contentType string, limit int64) (string, error) {
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if limit > 0 && int64(len(raw)) > limit {
		return "", fmt.Errorf("preview: file exceeds %s", FormatFileSize(limit))
	}
	ct := normalizeType(contentType)
	if ct == "" {
		ct = "application/octet-stream"
	}
	var b strings.Builder
	b.WriteString("data:")
	b.WriteString(ct)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(raw))
	return b.String(), nil
}
