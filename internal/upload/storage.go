package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidPublicID = errors.New("invalid public id")

// Object is a file on its way to a Storage backend.
type Object struct {
	Name        string
	ContentType string
	Size        int64
	Folder      string
	Body        io.Reader
}

// Stored describes a saved file as returned to API callers.
type Stored struct {
	PublicID     string `json:"public_id"`
	URL          string `json:"url"`
	OriginalName string `json:"original_name,omitempty"`
	ContentType  string `json:"content_type,omitempty"`
	Size         int64  `json:"size"`
	FileType     string `json:"file_type,omitempty"`
	ResourceType string `json:"resource_type,omitempty"`
}

type Storage interface {
	Save(ctx context.Context, obj Object) (Stored, error)
	Delete(ctx context.Context, publicID string) error
}

// LocalStorage writes files under Dir and serves them below BaseURL.
type LocalStorage struct {
	Dir     string
	BaseURL string
}

func NewLocalStorage(dir, baseURL string) (*LocalStorage, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "./uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalStorage) Save(ctx context.Context, obj Object) (Stored, error) {
	if err := ctx.Err(); err != nil {
		return Stored{}, err
	}
	ext := strings.ToLower(filepath.Ext(obj.Name))
	if ext == "" {
		ext = Extension(obj.ContentType)
	}
	folder := strings.Trim(path.Clean("/"+obj.Folder), "/")
	publicID := uuid.NewString() + ext
	if folder != "" {
		publicID = folder + "/" + publicID
	}

	full := filepath.Join(s.Dir, filepath.FromSlash(publicID))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return Stored{}, err
	}
	f, err := os.Create(full)
	if err != nil {
		return Stored{}, err
	}
	n, err := io.Copy(f, obj.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(full)
		return Stored{}, err
	}

	url := s.BaseURL + "/uploads/" + publicID
	return Stored{
		PublicID:     publicID,
		URL:          url,
		OriginalName: obj.Name,
		ContentType:  obj.ContentType,
		Size:         n,
		FileType:     FileType(url),
	}, nil
}

func (s *LocalStorage) Delete(ctx context.Context, publicID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	clean := path.Clean("/" + publicID)
	if publicID == "" || clean == "/" || strings.Contains(publicID, "..") {
		return ErrInvalidPublicID
	}
	err := os.Remove(filepath.Join(s.Dir, filepath.FromSlash(strings.TrimPrefix(clean, "/"))))
	if errors.Is(err, os.ErrNotExist) {
		return os.ErrNotExist
	}
	return err
}
