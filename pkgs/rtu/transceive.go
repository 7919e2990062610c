package rtu

import (
	"time"
)

// Link is the byte-level contract the transceive procedure needs from a
// UART: flush pending input, manually drive DE/RE, write the request, and
// read the reply with a deadline. pkgs/serialport.Port satisfies this.
type Link interface {
	Flush() error
	SetTransmitEnable(on bool) error
	Write(data []byte) (int, error)
	ReadTimeout(data []byte, timeout time.Duration) (int, error)
}

// Transport drives the Modbus-RTU wire protocol over a Link: function
// codes 03/04/10, CRC-16/MODBUS, and the flush/DE-RE/write/read transceive
// sequence from spec §4.C.
type Transport struct {
	link    Link
	slaveID byte
	timeout time.Duration
}

// NewTransport binds a Transport to link, addressing slave and bounding the
// receive phase of every transceive by timeout. The request write is not
// bounded by timeout, and there is no wait for transmit completion before
// DE/RE is lowered.
func NewTransport(link Link, slave byte, timeout time.Duration) *Transport {
	return &Transport{link: link, slaveID: slave, timeout: timeout}
}

// transceive runs one request/reply cycle: flush, raise DE/RE, write,
// lower DE/RE, read until expectedLen bytes arrive or timeout elapses from
// the start of the receive phase.
func (t *Transport) transceive(request []byte, expectedLen int) ([]byte, error) {
	if t.link == nil {
		return nil, newErr(InvalidState, "transport used before init")
	}
	if err := t.link.Flush(); err != nil {
		return nil, wrapErr(TransportError, "flush", err)
	}
	if err := t.link.SetTransmitEnable(true); err != nil {
		return nil, wrapErr(TransportError, "raise DE/RE", err)
	}
	n, err := t.link.Write(request)
	if err != nil {
		_ = t.link.SetTransmitEnable(false)
		return nil, wrapErr(TransportError, "write request", err)
	}
	if n != len(request) {
		_ = t.link.SetTransmitEnable(false)
		return nil, newErr(IoFailure, "short write")
	}
	if err := t.link.SetTransmitEnable(false); err != nil {
		return nil, wrapErr(TransportError, "lower DE/RE", err)
	}

	deadline := time.Now().Add(t.timeout)
	buf := make([]byte, 0, expectedLen)
	scratch := make([]byte, expectedLen)
	for len(buf) < expectedLen {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}
		got, err := t.link.ReadTimeout(scratch[:expectedLen-len(buf)], remaining)
		if err != nil {
			return nil, wrapErr(TransportError, "read reply", err)
		}
		if got == 0 {
			break
		}
		buf = append(buf, scratch[:got]...)
	}
	if len(buf) < 5 || len(buf) != expectedLen {
		return nil, newErr(Timeout, "receive deadline expired before expected length arrived")
	}
	return buf, nil
}

// ReadRegisters reads count registers of the given function code (03
// holding or 04 input) starting at addr.
func (t *Transport) ReadRegisters(fn byte, addr, count uint16) ([]uint16, error) {
	if count == 0 {
		return nil, newErr(InvalidArgument, "count must be non-zero")
	}
	if fn != FuncReadHolding && fn != FuncReadInput {
		return nil, newErr(InvalidArgument, "unsupported read function code")
	}
	req := buildReadFrame(t.slaveID, fn, addr, count)
	reply, err := t.transceive(req, expectedReadReplyLen(count))
	if err != nil {
		return nil, err
	}
	return parseReadReply(reply, t.slaveID, fn, count)
}

// WriteRegisters writes words starting at addr via function 10.
func (t *Transport) WriteRegisters(addr uint16, words []uint16) error {
	req, err := buildWriteFrame(t.slaveID, addr, words)
	if err != nil {
		return err
	}
	reply, err := t.transceive(req, expectedWriteReplyLen)
	if err != nil {
		return err
	}
	return parseWriteReply(reply, t.slaveID, addr, len(words))
}
