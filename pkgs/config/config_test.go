package config

import "testing"

func validRTU() RTU {
	return RTU{
		Device:    "/dev/ttyUSB0",
		BaudRate:  9600,
		DataBits:  8,
		StopBits:  1,
		Parity:    "N",
		SlaveID:   1,
		TimeoutMs: 500,
	}
}

func TestRTUValidateAcceptsDefaults(t *testing.T) {
	r := validRTU()
	if err := r.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRTUValidateRejectsBadDataBits(t *testing.T) {
	r := validRTU()
	r.DataBits = 6
	if err := r.Validate(); err == nil {
		t.Fatalf("expected error for data bits 6")
	}
}

func TestRTUValidateRejectsBadStopBits(t *testing.T) {
	r := validRTU()
	r.StopBits = 3
	if err := r.Validate(); err == nil {
		t.Fatalf("expected error for stop bits 3")
	}
}

func TestRTUValidateRejectsBadParity(t *testing.T) {
	r := validRTU()
	r.Parity = "X"
	if err := r.Validate(); err == nil {
		t.Fatalf("expected error for parity X")
	}
}

func TestRTUValidateRejectsEmptyDevice(t *testing.T) {
	r := validRTU()
	r.Device = ""
	if err := r.Validate(); err == nil {
		t.Fatalf("expected error for empty device")
	}
}

func TestRTUValidateRejectsZeroBaud(t *testing.T) {
	r := validRTU()
	r.BaudRate = 0
	if err := r.Validate(); err == nil {
		t.Fatalf("expected error for zero baud rate")
	}
}

func TestRTUValidateRejectsZeroTimeout(t *testing.T) {
	r := validRTU()
	r.TimeoutMs = 0
	if err := r.Validate(); err == nil {
		t.Fatalf("expected error for zero timeout")
	}
}
