package term

import "golang.org/x/sys/unix"

// Linux uses the TCGETS/TCSETS ioctl pair for termios access.
const (
	ioctlGetTermios = unix.TCGETS
	ioctlSetTermios = unix.TCSETS
)
