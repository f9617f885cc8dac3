package upload

import (
	"bytes"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// FileType labels a stored URL for the admin tables ("PDF", "JPG", "MP4"...).
func FileType(url string) string {
	u := strings.ToLower(url)
	switch {
	case u == "":
		return ""
	case strings.Contains(u, ".pdf"):
		return "PDF"
	case strings.Contains(u, ".docx"):
		return "DOCX"
	case strings.Contains(u, ".doc"):
		return "DOC"
	case strings.Contains(u, ".txt"):
		return "TXT"
	case strings.Contains(u, ".jpg"), strings.Contains(u, ".jpeg"):
		return "JPG"
	case strings.Contains(u, ".png"):
		return "PNG"
	case strings.Contains(u, ".gif"):
		return "GIF"
	case strings.Contains(u, ".webp"):
		return "WebP"
	case strings.Contains(u, ".mp4"):
		return "MP4"
	case strings.Contains(u, ".mov"):
		return "MOV"
	case strings.Contains(u, ".avi"):
		return "AVI"
	case strings.Contains(u, ".mkv"):
		return "MKV"
	case strings.Contains(u, ".webm"):
		return "WebM"
	case strings.Contains(u, ".m4v"):
		return "M4V"
	}
	return "File"
}

func containsAny(s string, subs ...string) bool {
	s = strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func IsDocument(url string) bool {
	return url != "" && containsAny(url, ".pdf", ".doc", ".txt")
}

func IsImage(url string) bool {
	return url != "" && containsAny(url, ".jpg", ".jpeg", ".png", ".gif", ".webp")
}

func IsVideo(url string) bool {
	return url != "" && containsAny(url, ".mp4", ".mov", ".avi", ".mkv", ".webm", ".m4v")
}

// IconType picks the icon family for a stored file.
func IconType(url string) string {
	switch {
	case url == "":
		return "default"
	case containsAny(url, ".pdf"):
		return "pdf"
	case containsAny(url, ".doc"):
		return "doc"
	case containsAny(url, ".txt"):
		return "txt"
	case IsImage(url):
		return "image"
	case IsVideo(url):
		return "video"
	}
	return "default"
}

// Detect sniffs the content type from the head of r and returns a reader
// that still yields the full content.
func Detect(r io.Reader) (string, io.Reader, error) {
	head := make([]byte, 3072)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", nil, err
	}
	head = head[:n]
	mt := mimetype.Detect(head)
	return normalizeType(mt.String()), io.MultiReader(bytes.NewReader(head), r), nil
}

// Extension returns the canonical extension (with dot) for a content type.
func Extension(contentType string) string {
	if mt := mimetype.Lookup(normalizeType(contentType)); mt != nil {
		return mt.Extension()
	}
	return ""
}
