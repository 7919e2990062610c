package serialport

import "unsafe"

import ioctl "github.com/daedaluz/goioctl"

// Termios2 mirrors the Linux struct termios2, which carries arbitrary
// input/output speeds via ISpeed/OSpeed instead of the legacy CBAUD-encoded
// Cflag bits.
type Termios2 struct {
	Iflag  uint32
	Oflag  uint32
	Cflag  uint32
	Lflag  uint32
	Line   byte
	Cc     [19]byte
	ISpeed uint32
	OSpeed uint32
}

// Control-mode bits (termios Cflag) this package sets explicitly.
const (
	csize  = 0000060
	cs7    = 0000040
	cs8    = 0000060
	cstopb = 0000100
	cread  = 0000200
	parenb = 0000400
	parodd = 0001000
	clocal = 0004000
	bother = 0010000 // Cflag carries BOTHER; actual speed goes in ISpeed/OSpeed
)

// RS485Flag is the flag word of the kernel's serial_rs485 struct.
type RS485Flag uint32

const (
	rs485Enabled       = RS485Flag(1 << 0)
	rs485RTSOnSend     = RS485Flag(1 << 1)
	rs485RTSAfterSend  = RS485Flag(1 << 2)
)

// RS485 mirrors struct serial_rs485, used to hand DE/RE control to the UART
// driver itself when the hardware supports automatic line turnaround.
type RS485 struct {
	Flags              RS485Flag
	DelayRTSBeforeSend uint32
	DelayRTSAfterSend  uint32
	padding            [5]uint32
}

// ModemLine is a TIOCM_* bit, used for manual DE/RE control over RTS when
// the UART has no hardware RS485 support.
type ModemLine int32

const tiocmRTS = ModemLine(0x004)

var (
	tcgets2    = ioctl.IOR('T', 0x2A, unsafe.Sizeof(Termios2{}))
	tcsets2    = ioctl.IOW('T', 0x2B, unsafe.Sizeof(Termios2{}))
	tiocmbis   = uintptr(0x5416)
	tiocmbic   = uintptr(0x5417)
	tiocgrs485 = uintptr(0x542E)
	tiocsrs485 = uintptr(0x542F)
	tcflshNum  = uintptr(0x540B)
)
