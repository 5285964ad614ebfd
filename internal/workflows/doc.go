// Package workflows composes the scratch area, backup, stat tracker, cipher
// and editor into the user facing operations.
//
// Edit is a transaction over an encrypted target:
//
//	Start -> Backed Up -> Scratch Ready -> Decrypted -> Edited -> Encrypted -> Cleaned Up
//
// Every path out of it, successful or not, removes the scratch area and the
// backup. When an error occurs after the backup was taken and the target's
// size or modification time differ from the start of the transaction, the
// backup is copied back over the target before the error is returned. If that
// copy fails the backup is left in place and reported in a RecoveryError.
//
// Two invocations sharing a scratch root, or editing the same target without
// the advisory lock, are not safe to run concurrently.
package workflows
