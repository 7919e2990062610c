package gateway

import (
	"context"

	"github.com/d3netgw/bridge/pkgs/ioreg"
	"github.com/d3netgw/bridge/pkgs/registers"
	"github.com/sirupsen/logrus"
)

func holdingAddr(i int) uint16 { return uint16(2000 + 3*i) }

// prepareWrite refreshes unit i's holding shadow from the adapter when it
// has never been read, or when it's clean and both the last read and the
// last write are older than CacheWriteS. A dirty shadow is left alone —
// reloading it now would discard a staged, uncommitted change. After a
// reload, status is folded in immediately; if that reconciliation produces
// a dirty shadow, it's flushed right away so the operator's subsequent
// mutation diffs against current adapter state.
func (g *Gateway) prepareWrite(ctx context.Context, log logrus.FieldLogger, i int) error {
	u := g.Unit(i)
	h := &u.Holding
	now := g.clock.NowMs()

	needReload := h.LastReadMs == 0 ||
		(!h.Dirty && !withinS(h.LastReadMs, now, g.cfg.CacheWriteS) && !withinS(h.LastWriteMs, now, g.cfg.CacheWriteS))
	if !needReload {
		return nil
	}

	words, err := g.readRegisters(ctx, log, ioreg.Holding, holdingAddr(i), registers.HoldingWords)
	if err != nil {
		return err
	}
	copy(h.Words[:], words)
	h.Dirty = false
	h.LastReadMs = g.clock.NowMs()

	h.SyncFromStatus(&u.Status)
	if h.Dirty {
		if err := g.writeRegisters(ctx, log, holdingAddr(i), h.Words[:]); err != nil {
			return err
		}
		h.LastWriteMs = g.clock.NowMs()
		h.Dirty = false
	}
	return nil
}

// commitWrite folds the current status view into the holding shadow and
// flushes it if that produced a diff, then — if the shadow carries an
// asserted filter-reset — clears it with a second write, completing the
// 15->0 pulse the adapter latches on.
func (g *Gateway) commitWrite(ctx context.Context, log logrus.FieldLogger, i int) error {
	u := g.Unit(i)
	h := &u.Holding

	h.SyncFromStatus(&u.Status)
	if h.Dirty {
		if err := g.writeRegisters(ctx, log, holdingAddr(i), h.Words[:]); err != nil {
			return err
		}
		h.LastWriteMs = g.clock.NowMs()
		h.Dirty = false
	}

	if h.FilterResetAsserted() {
		h.ClearFilterReset()
		if err := g.writeRegisters(ctx, log, holdingAddr(i), h.Words[:]); err != nil {
			return err
		}
		h.LastWriteMs = g.clock.NowMs()
		h.Dirty = false
	}
	return nil
}
