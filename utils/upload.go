package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const maxImageWidth = 1600

// SaveImage decodes an uploaded image, bounds it to maxImageWidth and
// writes it under dir with a uuid filename. Returns the public path.
func SaveImage(file multipart.File, header *multipart.FileHeader, dir string) (string, error) {
	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".png" && ext != ".gif" {
		ext = ".jpg"
	}
	filename := uuid.NewString() + ext

	fullDir := "./public/uploads/" + dir
	if err := os.MkdirAll(fullDir, os.ModePerm); err != nil {
		return "", err
	}

	if err := imaging.Save(img, filepath.Join(fullDir, filename)); err != nil {
		return "", err
	}
	return "/uploads/" + dir + "/" + filename, nil
}
