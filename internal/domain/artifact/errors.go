package artifact

import "errors"

var (
	ErrNotFound     = errors.New("artifact not found")
	ErrInvalidPath  = errors.New("invalid path")
	ErrIsDirectory  = errors.New("cannot download a directory")
	ErrRootDeletion = errors.New("cannot delete root directory")
	ErrWriteFailed  = errors.New("failed to write artifact")
	ErrDeleteFailed = errors.New("failed to delete")
)
