package services

import (
	"context"
	"fmt"
	"io"

	apperrors "fupa/errors"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// MediaRef points at an uploaded verification photo.
type MediaRef struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// MediaStore is the external image host.
type MediaStore interface {
	Upload(ctx context.Context, file io.Reader) (MediaRef, error)
	// SoftDelete asks the host to drop the asset. Callers treat failures as non-fatal.
	SoftDelete(ctx context.Context, publicID string) error
}

type CloudinaryMedia struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryMedia(cld *cloudinary.Cloudinary, folder string) *CloudinaryMedia {
	return &CloudinaryMedia{cld: cld, folder: folder}
}

func (m *CloudinaryMedia) Upload(ctx context.Context, file io.Reader) (MediaRef, error) {
	resp, err := m.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: m.folder})
	if err != nil {
		return MediaRef{}, apperrors.NewAppError(apperrors.ErrCodeUploadFailed, "Photo upload failed", err)
	}
	if resp.Error.Message != "" {
		return MediaRef{}, apperrors.NewAppError(apperrors.ErrCodeUploadFailed, "Photo upload failed",
			fmt.Errorf("cloudinary: %s", resp.Error.Message))
	}
	return MediaRef{URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}

func (m *CloudinaryMedia) SoftDelete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	resp, err := m.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return err
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("cloudinary: %s", resp.Error.Message)
	}
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary: destroy %s: %s", publicID, resp.Result)
	}
	return nil
}
