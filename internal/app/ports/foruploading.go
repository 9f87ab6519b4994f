package ports

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by a ForUploading adapter when a key or
	// file does not exist in the storage backend.
	ErrNotFound error = errors.New("no such file or key")
)

type ForUploadingRequest struct {
	// Bucket or store to upload to.
	Store string
	// Key or name of target. If empty, default to the From field.
	To string
	// From is the local path to upload.
	From string
	// ContentType is detected from the file when empty.
	ContentType string
	// StorageClass only used for AWS. Can be STANDARD,
	// REDUCED_REDUNDANCY, STANDARD_IA, ONEZONE_IA, INTELLIGENT_TIERING,
	// GLACIER, DEEP_ARCHIVE, and GLACIER_IR. If empty, STANDARD is the
	// default.
	StorageClass string
}

type ForUploading interface {
	Upload(ctx context.Context, request *ForUploadingRequest) error
	// Diff logs a unified diff between the stored object and the
	// local file. Returns ErrNotFound when there is no stored object.
	Diff(ctx context.Context, bucketOrStore, keyOrName, fileToDiff string) error
}
