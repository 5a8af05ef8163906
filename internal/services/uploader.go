package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// Uploader stores an image for a vehicle and returns the URL (or media
// path) it can be served from.
type Uploader interface {
	Upload(ctx context.Context, vehicleID, filename string, r io.Reader) (string, error)
}

var ErrUnsupportedImage = errors.New("unsupported image type")

var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

func imageExt(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !imageExts[ext] {
		return "", ErrUnsupportedImage
	}
	return ext, nil
}

// CloudinaryUploader pushes images to a Cloudinary folder per vehicle.
type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	Folder string
}

func NewCloudinaryUploader(cloudinaryURL, folder string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	return &CloudinaryUploader{cld: cld, Folder: folder}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, vehicleID, filename string, r io.Reader) (string, error) {
	if _, err := imageExt(filename); err != nil {
		return "", err
	}
	res, err := u.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:   path.Join(u.Folder, vehicleID),
		PublicID: uuid.NewString(),
	})
	if err != nil {
		return "", err
	}
	if res.Error.Message != "" {
		return "", errors.New(res.Error.Message)
	}
	return res.SecureURL, nil
}

// DiskUploader writes images under Dir; the returned path is relative to
// the /media mount.
type DiskUploader struct {
	Dir string
}

func (u *DiskUploader) Upload(ctx context.Context, vehicleID, filename string, r io.Reader) (string, error) {
	ext, err := imageExt(filename)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	rel := path.Join("vehicles", vehicleID, uuid.NewString()+ext)
	dst := filepath.Join(u.Dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return "", err
	}
	return rel, f.Close()
}
