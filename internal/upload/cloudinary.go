package upload

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// CloudinaryStorage keeps media on Cloudinary, the hosted store the admin
// panel was built around.
type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	Folder string
}

func NewCloudinaryStorage(cloudName, apiKey, apiSecret, folder string) (*CloudinaryStorage, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	if folder == "" {
		folder = "cinecraft"
	}
	return &CloudinaryStorage{cld: cld, Folder: folder}, nil
}

func (s *CloudinaryStorage) Save(ctx context.Context, obj Object) (Stored, error) {
	folder := s.Folder
	if obj.Folder != "" {
		folder = path.Join(folder, obj.Folder)
	}
	res, err := s.cld.Upload.Upload(ctx, obj.Body, uploader.UploadParams{
		PublicID:     uuid.NewString(),
		Folder:       folder,
		ResourceType: "auto",
	})
	if err != nil {
		return Stored{}, err
	}
	if res.Error.Message != "" {
		return Stored{}, errors.New(res.Error.Message)
	}
	size := int64(res.Bytes)
	if size == 0 {
		size = obj.Size
	}
	return Stored{
		PublicID:     res.PublicID,
		URL:          res.SecureURL,
		OriginalName: obj.Name,
		ContentType:  obj.ContentType,
		Size:         size,
		FileType:     FileType(res.SecureURL),
		ResourceType: res.ResourceType,
	}, nil
}

// destroyTypes are tried in order; "auto" uploads land in one of them and
// Destroy only looks inside the type it is given.
var destroyTypes = []string{"image", "video", "raw"}

func (s *CloudinaryStorage) Delete(ctx context.Context, publicID string) error {
	if strings.TrimSpace(publicID) == "" {
		return ErrInvalidPublicID
	}
	for _, rt := range destroyTypes {
		res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID, ResourceType: rt})
		if err != nil {
			return err
		}
		if res.Error.Message != "" {
			return errors.New(res.Error.Message)
		}
		if res.Result != "not found" {
			return nil
		}
	}
	return os.ErrNotExist
}
