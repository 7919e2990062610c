package ioreg

import (
	"context"
	"encoding/binary"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/higebu/netfd"
)

// TCP adapts a Modbus-TCP connection (MBAP header + PDU) to the RegisterIO
// boundary, for adapters reachable over Ethernet instead of the RTU bus.
type TCP struct {
	conn    net.Conn
	unitID  byte
	timeout time.Duration
	txID    atomic.Uint32
	mu      sync.Mutex
}

// DialTCP connects to addr and tunes TCP_NODELAY on the raw socket via
// netfd, since Modbus-TCP is latency-sensitive request/reply traffic that
// gains nothing from Nagle's algorithm batching small PDUs.
func DialTCP(addr string, unitID byte, timeout time.Duration) (*TCP, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("ioreg: dial %s: %w", addr, err)
	}
	if fd := netfd.GetFdFromConn(conn); fd >= 0 {
		_ = syscall.SetsockoptInt(fd, syscall.IPPROTO_TCP, syscall.TCP_NODELAY, 1)
	}
	return &TCP{conn: conn, unitID: unitID, timeout: timeout}, nil
}

func (t *TCP) nextTxID() uint16 {
	return uint16(t.txID.Add(1))
}

// mbapRequest builds a full MBAP-framed PDU: transaction id, protocol id
// (0), length, unit id, then the Modbus PDU (function code + payload).
func (t *TCP) mbapRequest(pdu []byte) []byte {
	frame := make([]byte, 7+len(pdu))
	binary.BigEndian.PutUint16(frame[0:], t.nextTxID())
	binary.BigEndian.PutUint16(frame[2:], 0)
	binary.BigEndian.PutUint16(frame[4:], uint16(1+len(pdu)))
	frame[6] = t.unitID
	copy(frame[7:], pdu)
	return frame
}

func (t *TCP) roundTrip(pdu []byte, expectedPDULen int) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	req := t.mbapRequest(pdu)
	if err := t.conn.SetDeadline(time.Now().Add(t.timeout)); err != nil {
		return nil, fmt.Errorf("ioreg: set deadline: %w", err)
	}
	if _, err := t.conn.Write(req); err != nil {
		return nil, fmt.Errorf("ioreg: write: %w", err)
	}

	header := make([]byte, 7)
	if _, err := readFull(t.conn, header); err != nil {
		return nil, fmt.Errorf("ioreg: read mbap header: %w", err)
	}
	txID := binary.BigEndian.Uint16(header[0:])
	if txID != uint16(t.txID.Load()) {
		return nil, fmt.Errorf("ioreg: transaction id mismatch")
	}
	length := binary.BigEndian.Uint16(header[4:])
	if length == 0 || int(length) > expectedPDULen+1+64 {
		return nil, fmt.Errorf("ioreg: implausible mbap length %d", length)
	}
	pduReply := make([]byte, int(length)-1)
	if _, err := readFull(t.conn, pduReply); err != nil {
		return nil, fmt.Errorf("ioreg: read pdu: %w", err)
	}
	return pduReply, nil
}

func readFull(conn net.Conn, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := conn.Read(buf[total:])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func (t *TCP) ReadRegisters(ctx context.Context, kind Kind, addr, count uint16) ([]uint16, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fn := byte(0x04)
	if kind == Holding {
		fn = 0x03
	}
	pdu := make([]byte, 5)
	pdu[0] = fn
	binary.BigEndian.PutUint16(pdu[1:], addr)
	binary.BigEndian.PutUint16(pdu[3:], count)

	reply, err := t.roundTrip(pdu, int(count)*2+2)
	if err != nil {
		return nil, err
	}
	if len(reply) < 2 || reply[0] != fn {
		return nil, fmt.Errorf("ioreg: unexpected function code in reply")
	}
	byteCount := int(reply[1])
	if byteCount != int(count)*2 || len(reply) != 2+byteCount {
		return nil, fmt.Errorf("ioreg: byte count mismatch")
	}
	words := make([]uint16, count)
	for i := range words {
		words[i] = binary.BigEndian.Uint16(reply[2+i*2:])
	}
	return words, nil
}

func (t *TCP) WriteRegisters(ctx context.Context, addr uint16, words []uint16) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	byteCount := len(words) * 2
	pdu := make([]byte, 6+byteCount)
	pdu[0] = 0x10
	binary.BigEndian.PutUint16(pdu[1:], addr)
	binary.BigEndian.PutUint16(pdu[3:], uint16(len(words)))
	pdu[5] = byte(byteCount)
	for i, w := range words {
		binary.BigEndian.PutUint16(pdu[6+i*2:], w)
	}

	reply, err := t.roundTrip(pdu, 5)
	if err != nil {
		return err
	}
	if len(reply) != 5 || reply[0] != 0x10 {
		return fmt.Errorf("ioreg: unexpected write reply")
	}
	gotAddr := binary.BigEndian.Uint16(reply[1:])
	gotCount := binary.BigEndian.Uint16(reply[3:])
	if gotAddr != addr || int(gotCount) != len(words) {
		return fmt.Errorf("ioreg: echoed address/count mismatch")
	}
	return nil
}

// Close closes the underlying TCP connection.
func (t *TCP) Close() error { return t.conn.Close() }
