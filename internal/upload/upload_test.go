package upload

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidateFile(t *testing.T) {
	if err := ValidateFile("image/png", 1024, Options{}); err != nil {
		t.Fatalf("expected png accepted, got %v", err)
	}
	if err := ValidateFile("image/jpeg; charset=binary", 1024, Options{}); err != nil {
		t.Fatalf("expected params ignored, got %v", err)
	}

	err := ValidateFile("image/png", 51*MB, Options{})
	if err == nil || err.Error() != "File size must be less than 50MB" {
		t.Fatalf("unexpected size error: %v", err)
	}

	err = ValidateFile("application/zip", 10, Options{AllowedTypes: []string{"image/png", "image/gif"}})
	if err == nil || err.Error() != "File type application/zip is not allowed. Allowed types: image/png, image/gif" {
		t.Fatalf("unexpected type error: %v", err)
	}
}

func TestValidateFileTypeAndSize(t *testing.T) {
	for _, ct := range []string{"image/webp", "video/x-flv", "application/pdf", "text/plain"} {
		if err := ValidateFileType(ct); err != nil {
			t.Fatalf("%s: %v", ct, err)
		}
	}
	if err := ValidateFileType("application/zip"); err == nil {
		t.Fatalf("expected zip rejected")
	}

	if err := ValidateFileSize(10*MB, 0); err != nil {
		t.Fatalf("exactly 10MB should pass: %v", err)
	}
	err := ValidateFileSize(15*MB, 0)
	if err == nil || err.Error() != "File size 15 MB exceeds the maximum limit of 10MB." {
		t.Fatalf("unexpected: %v", err)
	}
}

func TestFormatFileSize(t *testing.T) {
	cases := map[int64]string{
		0:           "0 Bytes",
		512:         "512 Bytes",
		1024:        "1 KB",
		1536:        "1.5 KB",
		1234567:     "1.18 MB",
		3 * 1 << 30: "3 GB",
	}
	for in, want := range cases {
		if got := FormatFileSize(in); got != want {
			t.Fatalf("FormatFileSize(%d)=%q want %q", in, got, want)
		}
	}
}

func TestFileTypeHelpers(t *testing.T) {
	require.Equal(t, "PDF", FileType("https://cdn/x/brief.PDF"))
	require.Equal(t, "DOCX", FileType("/uploads/a.docx"))
	require.Equal(t, "JPG", FileType("/uploads/a.jpeg"))
	require.Equal(t, "M4V", FileType("/uploads/clip.m4v"))
	require.Equal(t, "File", FileType("/uploads/blob"))
	require.Equal(t, "", FileType(""))

	require.True(t, IsImage("a.webp"))
	require.True(t, IsVideo("a.MOV"))
	require.True(t, IsDocument("notes.txt"))
	require.False(t, IsImage(""))

	require.Equal(t, "pdf", IconType("x.pdf"))
	require.Equal(t, "doc", IconType("x.docx"))
	require.Equal(t, "image", IconType("x.png"))
	require.Equal(t, "video", IconType("x.webm"))
	require.Equal(t, "default", IconType("x.zip"))
}

func TestDetectKeepsContent(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDRrest-of-file")
	ct, r, err := Detect(bytes.NewReader(png))
	require.NoError(t, err)
	require.Equal(t, "image/png", ct)

	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)
	require.Equal(t, png, buf.Bytes())
}

func TestPreview(t *testing.T) {
	got, err := Preview(strings.NewReader("hi"), "text/plain", 0)
	require.NoError(t, err)
	require.Equal(t, "data:text/plain;base64,aGk=", got)

	got, err = Preview(strings.NewReader("he"), "", 2)
	require.NoError(t, err)
	require.Equal(t, "data:application/octet-stream;base64,aGU=", got)

	got, err = Preview(strings.NewReader("hello"), "text/plain", 2)
	require.Error(t, err)
	require.Empty(t, got)
}

func TestProgressCapsAndFinishes(t *testing.T) {
	var mu sync.Mutex
	var seen []int
	p := &Progress{
		Rand: func() float64 { return 1 },
		OnChange: func(v int) {
			mu.Lock()
			seen = append(seen, v)
			mu.Unlock()
		},
	}
	for i := 0; i < 6; i++ {
		p.Tick()
	}
	if p.Value() != 90 {
		t.Fatalf("expected cap at 90, got %d", p.Value())
	}
	p.Done()
	p.Tick()
	if p.Value() != 100 {
		t.Fatalf("expected 100 after Done, got %d", p.Value())
	}

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []int{20, 40, 60, 80, 90, 90, 100}, seen)
}

func TestProgressFailStopsTicker(t *testing.T) {
	p := &Progress{Rand: func() float64 { return 0.5 }}
	p.Start(context.Background())
	p.Tick()
	p.Fail()
	if p.Value() != 0 {
		t.Fatalf("expected reset to 0, got %d", p.Value())
	}
	p.Fail()
}

func TestProgressStartAfterFinishIsNoop(t *testing.T) {
	var calls int
	p := &Progress{Interval: time.Millisecond, OnChange: func(int) { calls++ }}
	p.Done()
	p.Start(context.Background())

	p.mu.Lock()
	started := p.stop != nil
	p.mu.Unlock()
	if started {
		t.Fatalf("ticker started after Done")
	}
	time.Sleep(10 * time.Millisecond)
	require.Equal(t, 1, calls)
	require.Equal(t, 100, p.Value())
}

func TestLocalStorageSaveDelete(t *testing.T) {
	dir := t.TempDir()
	st, err := NewLocalStorage(dir, "http://localhost:5000/")
	require.NoError(t, err)

	saved, err := st.Save(context.Background(), Object{
		Name:        "Reel.MP4",
		ContentType: "video/mp4",
		Folder:      "portfolio",
		Body:        strings.NewReader("video-bytes"),
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(saved.PublicID, "portfolio/"))
	require.True(t, strings.HasSuffix(saved.PublicID, ".mp4"))
	require.Equal(t, "http://localhost:5000/uploads/"+saved.PublicID, saved.URL)
	require.Equal(t, int64(len("video-bytes")), saved.Size)
	require.Equal(t, "MP4", saved.FileType)

	raw, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(saved.PublicID)))
	require.NoError(t, err)
	require.Equal(t, "video-bytes", string(raw))

	require.NoError(t, st.Delete(context.Background(), saved.PublicID))
	require.ErrorIs(t, st.Delete(context.Background(), saved.PublicID), os.ErrNotExist)
	require.ErrorIs(t, st.Delete(context.Background(), "../etc/passwd"), ErrInvalidPublicID)
}

func TestValidateFileAcceptsSniffedAliases(t *testing.T) {
	if err := ValidateFile("video/quicktime", MB, Options{}); err != nil {
		t.Fatalf("quicktime should pass as video/mov: %v", err)
	}
	if err := ValidateFile("video/x-msvideo", MB, Options{}); err != nil {
		t.Fatalf("x-msvideo should pass as video/avi: %v", err)
	}
}

func TestValidateFileAttachmentTypes(t *testing.T) {
	opts := Options{MaxSize: 10 * MB, AllowedTypes: AttachmentTypes}
	for _, ct := range []string{"application/pdf", "text/plain; charset=utf-8", "image/webp", "video/x-matroska",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document"} {
		if err := ValidateFile(ct, MB, opts); err != nil {
			t.Fatalf("%s: %v", ct, err)
		}
	}
	if err := ValidateFile("application/zip", MB, opts); err == nil {
		t.Fatalf("expected zip rejected")
	}
	if err := ValidateFile("application/pdf", MB, Options{}); err == nil {
		t.Fatalf("expected pdf rejected by the media list")
	}
}
