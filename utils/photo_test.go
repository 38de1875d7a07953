package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/patient-booking/models"
)

func TestDoctorPhotoPath(t *testing.T) {
	t.Setenv("UPLOAD_DIR", "/srv/uploads")

	disk, url := DoctorPhotoPath(42, "portrait.png")
	assert.Equal(t, filepath.Join("/srv/uploads", "doctors", "42_portrait.png"), disk)
	assert.Equal(t, "/uploads/doctors/42_portrait.png", url)

	// Path components in the upload name are stripped
	disk, _ = DoctorPhotoPath(42, "../../etc/passwd")
	assert.Equal(t, filepath.Join("/srv/uploads", "doctors", "42_passwd"), disk)
}

func TestRemovePhoto(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("UPLOAD_DIR", dir)

	require.NoError(t, EnsurePhotoDir())
	path := filepath.Join(dir, "doctors", "7_photo.png")
	require.NoError(t, os.WriteFile(path, []byte("img"), 0o644))

	require.NoError(t, RemovePhoto("/uploads/doctors/7_photo.png"))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Deleting an already-gone file is not an error
	assert.NoError(t, RemovePhoto("/uploads/doctors/7_photo.png"))
}

func TestRemovePhotoSkipsDefaultImage(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("UPLOAD_DIR", dir)

	assert.NoError(t, RemovePhoto(models.DefaultDoctorPhoto))
	assert.NoError(t, RemovePhoto(""))
	// Paths outside the upload tree are ignored
	assert.NoError(t, RemovePhoto("/images/other.png"))
}
