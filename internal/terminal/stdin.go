package terminal

import (
	"errors"
	"os"
	"syscall"
	"time"
)

// pollInterval is how long the byte source sleeps between non-blocking
// read attempts while a poll window is open.
const pollInterval = 5 * time.Millisecond

// Stdin reads single bytes from a terminal file descriptor within
// bounded windows. The descriptor is flipped to non-blocking for the
// duration of each poll so a window can expire without a byte, which
// is what distinguishes a bare Escape from an escape sequence.
type Stdin struct {
	f   *os.File
	buf [1]byte
}

// NewStdin wraps f, normally os.Stdin.
func NewStdin(f *os.File) *Stdin {
	return &Stdin{f: f}
}

// Poll tries to read one byte within the window. ok is false when the
// window expired without input. Errors other than the non-blocking
// "try again" are returned, ending the caller's loop.
func (s *Stdin) Poll(window time.Duration) (b byte, ok bool, err error) {
	fd := int(s.f.Fd())
	if err := syscall.SetNonblock(fd, true); err != nil {
		return s.readBlocking()
	}
	defer syscall.SetNonblock(fd, false)

	deadline := time.Now().Add(window)
	for {
		n, err := s.f.Read(s.buf[:])
		if n > 0 {
			return s.buf[0], true, nil
		}
		if err != nil && !errors.Is(err, syscall.EAGAIN) {
			return 0, false, err
		}
		if !time.Now().Before(deadline) {
			return 0, false, nil
		}
		time.Sleep(pollInterval)
	}
}

// readBlocking serves descriptors that refuse non-blocking mode. The
// poll window is lost but reads still work.
func (s *Stdin) readBlocking() (byte, bool, error) {
	n, err := s.f.Read(s.buf[:])
	if n > 0 {
		return s.buf[0], true, nil
	}
	if err != nil {
		return 0, false, err
	}
	return 0, false, nil
}
