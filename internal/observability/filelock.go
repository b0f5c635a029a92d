package observability

import (
	"fmt"
	"os"
	"syscall"
)

// lockFile takes an exclusive advisory lock (LOCK_EX) on f so appends from
// separate todos processes sharing one event log do not interleave. The
// returned function releases the lock; it does not close f.
func lockFile(f *os.File) (unlock func() error, err error) {
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return nil, fmt.Errorf("acquiring event log lock: %w", err)
	}
	return func() error {
		return syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
	}, nil
}
