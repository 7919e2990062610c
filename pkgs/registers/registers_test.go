package registers

import "testing"

func TestSystemStatusBits(t *testing.T) {
	var s SystemStatus
	s.Words[0] = 0b11
	if !s.Initialised() || !s.OtherControllerPresent() {
		t.Fatalf("expected both flags set from word 0 = 0b11")
	}
	s.Words[1] = 1 << 5 // bit 16+5 = 21
	if !s.UnitConnected(5) {
		t.Fatalf("expected unit 5 connected")
	}
	if s.UnitConnected(4) || s.UnitConnected(6) {
		t.Fatalf("expected only unit 5 connected")
	}
	if s.UnitConnected(-1) || s.UnitConnected(MaxUnits) {
		t.Fatalf("out-of-range unit index must report false, not panic")
	}
}

func TestCapabilitySetpointBounds(t *testing.T) {
	var c Capability
	// bit 0..2 flags, bits 16..23 CoolUpper = -5 (signed 8-bit sign-magnitude)
	c.Words[0] = 0b1 // HasFan
	c.Words[1] = 0x0085 // magnitude 5, sign bit 23 (bit 7 of word 1) set
	if !c.HasFan() || c.HasCool() {
		t.Fatalf("capability flags mismatched: %+v", c)
	}
	if got := c.CoolUpperC(); got != -5 {
		t.Fatalf("CoolUpperC: want -5, got %d", got)
	}
}

func TestStatusModeForcesPower(t *testing.T) {
	var s Status
	s.SetPower(false)
	s.SetMode(ModeCool)
	if !s.Power() {
		t.Fatalf("SetMode must force power on")
	}
	if s.CommandedMode() != ModeCool {
		t.Fatalf("CommandedMode: want cool, got %v", s.CommandedMode())
	}
}

func TestStatusSetpointRoundTrip(t *testing.T) {
	cases := []float64{21.5, -3.25, 0, 18.05, -0.05}
	for _, c := range cases {
		var s Status
		s.SetSetpointC(c)
		got := s.SetpointC()
		want := float64(roundTenths(c)) / 10
		if diff := got - want; diff > 0.05 || diff < -0.05 {
			t.Fatalf("setpoint %v: roundtrip mismatch got %v", c, got)
		}
	}
}

func TestHoldingSyncFromStatusKeepsFilterResetAndEnablesFanControl(t *testing.T) {
	var h Holding
	h.AssertFilterReset()
	h.Dirty = false

	var s Status
	s.SetPower(true)
	s.SetFanSpeed(FanHigh)
	s.SetFanDir(FanDirSwing)
	s.SetMode(ModeCool)

	h.SyncFromStatus(&s)

	if !h.FilterResetAsserted() {
		t.Fatalf("SyncFromStatus must not touch filter-reset")
	}
	if h.FanSpeed() != FanHigh || h.FanDir() != FanDirSwing || h.Mode() != ModeCool {
		t.Fatalf("holding did not pick up status fields: %+v", h)
	}
	if !h.FanControlEnabled() {
		t.Fatalf("changing fan speed/dir must assert fan-control-enable")
	}
	if !h.Dirty {
		t.Fatalf("expected dirty after a real field change")
	}
}

func TestHoldingSyncFromStatusNoopWhenUnchanged(t *testing.T) {
	var h Holding
	h.SetPower(true)
	h.SetFanSpeed(FanLow)
	h.SetFanDir(FanDirP0)
	h.SetMode(ModeFan)
	h.Dirty = false

	var s Status
	s.SetPower(true)
	s.SetFanSpeed(FanLow)
	s.SetFanDir(FanDirP0)
	s.SetMode(ModeFan)

	before := h.Words
	h.SyncFromStatus(&s)
	if h.Words != before {
		t.Fatalf("no field changed, words must stay identical: before=%v after=%v", before, h.Words)
	}
}

func TestFilterResetPulse(t *testing.T) {
	var h Holding
	h.AssertFilterReset()
	if !h.FilterResetAsserted() {
		t.Fatalf("expected filter-reset asserted after AssertFilterReset")
	}
	h.ClearFilterReset()
	if h.FilterResetAsserted() {
		t.Fatalf("expected filter-reset cleared after ClearFilterReset")
	}
}

func TestUnitErrorDecode(t *testing.T) {
	var e UnitError
	// 'E' = 0x45, '1' = 0x31, subcode=7, error+warning set, unit=3
	e.Words[0] = uint16('E') | uint16('1')<<8
	e.Words[1] = (7 << 0) | (1 << 8) | (1 << 10) | (3 << 12)
	if e.Code() != "E1" {
		t.Fatalf("Code: want E1, got %q", e.Code())
	}
	if e.Subcode() != 7 {
		t.Fatalf("Subcode: want 7, got %d", e.Subcode())
	}
	if !e.IsError() || e.IsAlarm() || !e.IsWarning() {
		t.Fatalf("flag decode mismatch: error=%v alarm=%v warning=%v", e.IsError(), e.IsAlarm(), e.IsWarning())
	}
	if e.UnitNumber() != 3 {
		t.Fatalf("UnitNumber: want 3, got %d", e.UnitNumber())
	}
	if !e.Active() {
		t.Fatalf("expected Active true")
	}
}

func TestUnitErrorEmptyCode(t *testing.T) {
	var e UnitError
	if e.Code() != "" {
		t.Fatalf("zero record should decode to empty code, got %q", e.Code())
	}
	if e.Active() {
		t.Fatalf("zero record must not be active")
	}
}
