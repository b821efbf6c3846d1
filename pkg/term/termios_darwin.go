package term

import "golang.org/x/sys/unix"

// Darwin uses the TIOCGETA/TIOCSETA ioctl pair for termios access.
const (
	ioctlGetTermios = unix.TIOCGETA
	ioctlSetTermios = unix.TIOCSETA
)
