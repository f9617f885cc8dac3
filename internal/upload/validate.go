// Package upload validates, inspects and stores media uploaded through the
// booking form and the admin panel.
package upload

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const MB = 1024 * 1024

// DefaultAllowedTypes is the list accepted by the generic upload endpoints.
var DefaultAllowedTypes = []string{
	"image/jpeg", "image/jpg", "image/png", "image/gif",
	"video/mp4", "video/mov", "video/avi", "video/webm",
}

// AttachmentTypes are accepted for booking attachments on the public upload
// endpoints. Entries ending in "/*" match the whole family.
var AttachmentTypes = []string{
	"image/jpeg", "image/png", "image/gif", "image/webp",
	"video/*",
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"text/plain",
}

// typeAliases maps sniffed types to the names browsers report.
var typeAliases = map[string]string{
	"video/quicktime": "video/mov",
	"video/x-msvideo": "video/avi",
	"image/jpg":       "image/jpeg",
}

type Options struct {
	MaxSize      int64
	AllowedTypes []string
}

func (o Options) withDefaults() Options {
	if o.MaxSize <= 0 {
		o.MaxSize = 50 * MB
	}
	if len(o.AllowedTypes) == 0 {
		o.AllowedTypes = DefaultAllowedTypes
	}
	return o
}

// ValidateFile checks size first, then type, mirroring the upload widget.
func ValidateFile(contentType string, size int64, opts Options) error {
	opts = opts.withDefaults()
	if size > opts.MaxSize {
		return fmt.Errorf("File size must be less than %dMB", int64(math.Round(float64(opts.MaxSize)/MB)))
	}
	if matchType(contentType, opts.AllowedTypes) {
		return nil
	}
	return fmt.Errorf("File type %s is not allowed. Allowed types: %s", contentType, strings.Join(opts.AllowedTypes, ", "))
}

// ValidateFileType accepts AttachmentTypes.
func ValidateFileType(contentType string) error {
	if matchType(contentType, AttachmentTypes) {
		return nil
	}
	return fmt.Errorf("File type %s is not supported. Please upload images (JPG, PNG, GIF, WebP), videos (MP4, MOV, AVI, MKV, WebM, M4V), or documents (PDF, DOC, DOCX, TXT).", contentType)
}

// ValidateFileSize rejects files above maxMB (10 when maxMB <= 0).
func ValidateFileSize(size int64, maxMB int) error {
	if maxMB <= 0 {
		maxMB = 10
	}
	if size <= int64(maxMB)*MB {
		return nil
	}
	return fmt.Errorf("File size %s exceeds the maximum limit of %dMB.", FormatFileSize(size), maxMB)
}

// FormatFileSize renders bytes with up to two decimals: "0 Bytes", "1.5 KB".
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	sizes := []string{"Bytes", "KB", "MB", "GB"}
	v := float64(bytes)
	i := 0
	for v >= 1024 && i < len(sizes)-1 {
		v /= 1024
		i++
	}
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64) + " " + sizes[i]
}

func matchType(contentType string, allowed []string) bool {
	ct := normalizeType(contentType)
	if ct == "" {
		return false
	}
	alias := typeAliases[ct]
	for _, t := range allowed {
		switch {
		case t == ct, alias != "" && t == alias:
			return true
		case strings.HasSuffix(t, "/*") && strings.HasPrefix(ct, strings.TrimSuffix(t, "*")):
			return true
		}
	}
	return false
}

func normalizeType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct
}
