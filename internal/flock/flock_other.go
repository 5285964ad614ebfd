//go:build !(linux || darwin || freebsd || openbsd || netbsd || dragonfly)

package flock

// Lock is a no-op on platforms without flock(2).
type Lock struct{}

// Acquire always succeeds on platforms without flock(2).
func Acquire(target string) (*Lock, error) {
	return &Lock{}, nil
}

// Release is a no-op on platforms without flock(2).
func (l *Lock) Release() error {
	return nil
}
