package uploads

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"campusdesk/app/models"
)

const (
	PhotoDir     = "photos"
	maxPhotoSide = 400
)

var ErrUnsupportedImage = errors.New("photo must be a png, jpg, jpeg or gif image")

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

var allowedExt = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// SanitizeFilename strips directories and anything outside [A-Za-z0-9._-].
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	safe := strings.Trim(unsafeChars.ReplaceAllString(name, "_"), "._")
	if safe == "" {
		return "photo"
	}
	return safe
}

// PhotoName is the stored file name for a student's photo.
func PhotoName(studentID int64, original string) string {
	return fmt.Sprintf("student_%d_%s", studentID, SanitizeFilename(original))
}

func AllowedImage(filename string) bool {
	return allowedExt[strings.ToLower(filepath.Ext(filename))]
}

// PhotoPath resolves a stored photo name under the upload dir.
func PhotoPath(uploadDir, name string) string {
	return filepath.Join(uploadDir, PhotoDir, filepath.Base(name))
}

// SaveStudentPhoto decodes the upload, downsizes it to fit 400x400 and writes it under
// <uploadDir>/photos. It returns the stored file name.
func SaveStudentPhoto(uploadDir string, studentID int64, fh *multipart.FileHeader) (string, error) {
	if !AllowedImage(fh.Filename) {
		return "", ErrUnsupportedImage
	}

	src, err := fh.Open()
	if err != nil {
		return "", errors.Wrap(err, "open upload")
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", errors.Wrap(ErrUnsupportedImage, err.Error())
	}

	b := img.Bounds()
	if b.Dx() > maxPhotoSide || b.Dy() > maxPhotoSide {
		img = imaging.Fit(img, maxPhotoSide, maxPhotoSide, imaging.Lanczos)
	}

	dir := filepath.Join(uploadDir, PhotoDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "create photo dir")
	}

	name := PhotoName(studentID, fh.Filename)
	if err := imaging.Save(img, filepath.Join(dir, name)); err != nil {
		return "", errors.Wrap(err, "save photo")
	}
	return name, nil
}

// RemovePhoto deletes a stored photo; the shared default photo is never removed.
func RemovePhoto(uploadDir, name string) error {
	if name == "" || name == models.DefaultPhoto {
		return nil
	}
	err := os.Remove(PhotoPath(uploadDir, name))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove photo")
	}
	return nil
}
