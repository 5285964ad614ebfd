package core

import "errors"

// Failure classes surfaced by the edit and create workflows. Callers wrap them
// with additional context and test for them with errors.Is.
var (
	// ErrIO indicates a copy, read, write or permission failure on the backup
	// or the target file.
	ErrIO = errors.New("i/o error")

	// ErrCipher indicates the cipher backend reported a failure. For the gpg
	// backend this is a non-zero exit status, which is the only signal for a
	// wrong passphrase or corrupt input.
	ErrCipher = errors.New("cipher error")

	// ErrEditorLaunch indicates the editor process could not be started.
	ErrEditorLaunch = errors.New("editor could not be started")

	// ErrEditorAborted indicates the editor was killed by a signal, which is
	// how a user abandons an edit.
	ErrEditorAborted = errors.New("editor was killed, edit abandoned")

	// ErrNoChange indicates the user exited the editor without modifying the
	// plaintext.
	ErrNoChange = errors.New("nothing was changed, no file was written")

	// ErrInsufficientHistory indicates a change check on a file that was never
	// snapshotted.
	ErrInsufficientHistory = errors.New("change check requested before a snapshot was taken")

	// ErrAlreadyExists indicates a strict scratch area already exists on disk.
	ErrAlreadyExists = errors.New("scratch area already exists")

	// ErrLocked indicates another process holds the advisory lock on the target.
	ErrLocked = errors.New("target is locked by another process")
)
