package fileio

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateFileType is returned when a file type is registered twice.
	ErrDuplicateFileType = errors.New("fileio: file type already registered")
	// ErrUnknownFileType is returned for operations on unregistered file types.
	ErrUnknownFileType = errors.New("fileio: unknown file type")
	// ErrInvalidFileType is returned when a file type name is empty.
	ErrInvalidFileType = errors.New("fileio: invalid file type name")
	// ErrNilMigration is returned when a migration is registered without a function.
	ErrNilMigration = errors.New("fileio: migration function is nil")
	// ErrInvalidVersion is returned when a version value is not a triple of integers.
	ErrInvalidVersion = errors.New("fileio: invalid version")
	// ErrEqualVersions is returned when a migration starts and ends at the same version.
	ErrEqualVersions = errors.New("fileio: migration start and end versions are equal")
	// ErrNonAdvancingMigration is returned when a migration target is older than its source.
	ErrNonAdvancingMigration = errors.New("fileio: migration end version must be newer than start version")
	// ErrAppVersionNotSet is returned by save/load before SetAppVersion.
	ErrAppVersionNotSet = errors.New("fileio: app version not set")
	// ErrAppNameNotSet is returned by per-user file helpers before SetAppName.
	ErrAppNameNotSet = errors.New("fileio: app name not set")
	// ErrMalformedEnvelope is returned when decoded data lacks version, type or data.
	ErrMalformedEnvelope = errors.New("fileio: malformed envelope")
	// ErrTypeMismatch is returned when the envelope type differs from the requested one.
	ErrTypeMismatch = errors.New("fileio: file type mismatch")
	// ErrFutureVersion is returned when data is newer than the running application.
	ErrFutureVersion = errors.New("fileio: data version is newer than app version")
	// ErrNoMigrationPath is returned when the chain stops before the target version.
	ErrNoMigrationPath = errors.New("fileio: no migration path")
	// ErrMigrationStepFailed matches every MigrationError.
	ErrMigrationStepFailed = errors.New("fileio: migration step failed")
)

// MigrationError reports a failed migration function along with the
// transition it was attempting.
type MigrationError struct {
	FileType string
	From     Version
	To       Version
	Err      error
}

func (e *MigrationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("fileio: error upgrading %s data from %s to %s: %v", e.FileType, e.From, e.To, e.Err)
}

// Unwrap exposes both ErrMigrationStepFailed and the migration's own error.
func (e *MigrationError) Unwrap() []error {
	if e == nil {
		return nil
	}
	if e.Err == nil {
		return []error{ErrMigrationStepFailed}
	}
	return []error{ErrMigrationStepFailed, e.Err}
}

func wrapMigrationError(fileType string, from, to Version, err error) error {
	if err == nil {
		return nil
	}
	return &MigrationError{
		FileType: fileType,
		From:     from,
		To:       to,
		Err:      err,
	}
}
