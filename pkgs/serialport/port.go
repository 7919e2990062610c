// Package serialport opens and configures the UART the RTU transport rides
// on: baud rate, data bits, stop bits and parity, plus DE/RE line control
// for half-duplex RS-485 transceivers that don't turn the line around in
// hardware.
package serialport

import (
	"fmt"
	"sync/atomic"
	"syscall"
	"time"
	"unsafe"

	ioctl "github.com/daedaluz/goioctl"
	"github.com/daedaluz/fdev/poll"
)

// Parity selects the UART parity mode.
type Parity byte

const (
	ParityNone Parity = 'N'
	ParityEven Parity = 'E'
	ParityOdd  Parity = 'O'
)

// Config describes the line settings the gateway's RTU transport needs.
// DataBits must be 7 or 8; StopBits must be 1 or 2.
type Config struct {
	Device   string
	BaudRate uint32
	DataBits int
	StopBits int
	Parity   Parity
}

// ErrClosed is returned by any operation on a Port after Close.
var ErrClosed = fmt.Errorf("serialport: port already closed")

// Port is an opened, configured UART, exposing only what the RTU transport
// (pkgs/rtu) needs: raw read/write, input flush, and transmit-enable
// toggling for manual DE/RE control.
type Port struct {
	fd     int
	closed atomic.Bool
}

// Open opens and configures the device named in cfg.
func Open(cfg Config) (*Port, error) {
	if cfg.DataBits != 7 && cfg.DataBits != 8 {
		return nil, fmt.Errorf("serialport: invalid data bits %d (want 7 or 8)", cfg.DataBits)
	}
	if cfg.StopBits != 1 && cfg.StopBits != 2 {
		return nil, fmt.Errorf("serialport: invalid stop bits %d (want 1 or 2)", cfg.StopBits)
	}
	fd, err := syscall.Open(cfg.Device, syscall.O_RDWR|syscall.O_NOCTTY, 0)
	if err != nil {
		return nil, fmt.Errorf("serialport: open %s: %w", cfg.Device, err)
	}
	p := &Port{fd: fd}
	if err := p.configure(cfg); err != nil {
		syscall.Close(fd)
		return nil, err
	}
	return p, nil
}

func (p *Port) configure(cfg Config) error {
	t := Termios2{}
	t.Cflag = cread | clocal | bother
	switch cfg.DataBits {
	case 7:
		t.Cflag |= cs7
	default:
		t.Cflag |= cs8
	}
	if cfg.StopBits == 2 {
		t.Cflag |= cstopb
	}
	switch cfg.Parity {
	case ParityEven:
		t.Cflag |= parenb
	case ParityOdd:
		t.Cflag |= parenb | parodd
	}
	t.ISpeed = cfg.BaudRate
	t.OSpeed = cfg.BaudRate
	// VMIN=1, VTIME=0: block for at least one byte, no inter-byte timer;
	// the byte-gap deadline on receive is enforced by the caller via
	// poll.WaitInput, not by the line discipline.
	t.Cc[6] = 1
	t.Cc[5] = 0
	return ioctl.Ioctl(uintptr(p.fd), tcsets2, uintptr(unsafe.Pointer(&t)))
}

// Write writes data to the port.
func (p *Port) Write(data []byte) (int, error) {
	if p.closed.Load() {
		return 0, ErrClosed
	}
	return syscall.Write(p.fd, data)
}

// ReadTimeout blocks until at least one byte is available or timeout
// elapses, then performs a single non-blocking read.
func (p *Port) ReadTimeout(data []byte, timeout time.Duration) (int, error) {
	if p.closed.Load() {
		return 0, ErrClosed
	}
	if err := poll.WaitInput(p.fd, timeout); err != nil {
		return 0, err
	}
	return syscall.Read(p.fd, data)
}

// Flush discards any bytes the kernel has buffered on input, so a stale
// reply from a prior, abandoned transceive doesn't leak into the next one.
func (p *Port) Flush() error {
	if p.closed.Load() {
		return ErrClosed
	}
	const tcIFlush = 0
	return ioctl.Ioctl(uintptr(p.fd), tcflshNum, uintptr(tcIFlush))
}

// SetRS485 hands DE/RE control to the UART driver: the kernel raises RTS
// for the duration of each transmit and lowers it once the last bit has
// cleared the shift register. Use this when the hardware/driver supports
// it; otherwise drive DE/RE manually with SetTransmitEnable.
func (p *Port) SetRS485(delayBeforeMs, delayAfterMs uint32) error {
	cfg := RS485{
		Flags:              rs485Enabled | rs485RTSOnSend,
		DelayRTSBeforeSend: delayBeforeMs,
		DelayRTSAfterSend:  delayAfterMs,
	}
	return ioctl.Ioctl(uintptr(p.fd), tiocsrs485, uintptr(unsafe.Pointer(&cfg)))
}

// SetTransmitEnable manually raises (on=true) or lowers (on=false) RTS,
// used as the DE/RE line on adapters without automatic RS-485 turnaround.
func (p *Port) SetTransmitEnable(on bool) error {
	if p.closed.Load() {
		return ErrClosed
	}
	line := tiocmRTS
	op := tiocmbic
	if on {
		op = tiocmbis
	}
	return ioctl.Ioctl(uintptr(p.fd), op, uintptr(unsafe.Pointer(&line)))
}

// Close closes the underlying file descriptor. Safe to call once.
func (p *Port) Close() error {
	if p.closed.Swap(true) {
		return ErrClosed
	}
	return syscall.Close(p.fd)
}
