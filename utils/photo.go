package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/clinicdesk/patient-booking/models"
)

// UploadDir is where uploaded files land on disk; doctor photos go under
// <UploadDir>/doctors.
func UploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "./uploads"
}

// DoctorPhotoPath builds the on-disk and public paths for a doctor photo,
// keyed by the owning user's id so replacements are predictable.
func DoctorPhotoPath(userID uint, filename string) (diskPath string, urlPath string) {
	name := fmt.Sprintf("%d_%s", userID, filepath.Base(filename))
	return filepath.Join(UploadDir(), "doctors", name), "/uploads/doctors/" + name
}

// EnsurePhotoDir creates the doctor photo directory if it is missing.
func EnsurePhotoDir() error {
	return os.MkdirAll(filepath.Join(UploadDir(), "doctors"), 0o755)
}

// RemovePhoto deletes a previously stored photo file. The reserved
// default image and anything outside the upload tree are left alone.
func RemovePhoto(urlPath string) error {
	if urlPath == "" || urlPath == models.DefaultDoctorPhoto {
		return nil
	}
	rel, ok := strings.CutPrefix(urlPath, "/uploads/")
	if !ok {
		return nil
	}
	diskPath := filepath.Join(UploadDir(), filepath.FromSlash(rel))
	if err := os.Remove(diskPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
