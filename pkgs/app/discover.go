package app

import "context"

// DiscoverAction runs one discovery sweep and reports the discovered count.
func (a *GatewayApp) DiscoverAction() error {
	if err := a.GW.Discover(context.Background()); err != nil {
		return err
	}
	a.GW.Lock()
	count := a.GW.DiscoveredCount()
	a.GW.Unlock()
	a.P.Printf("discovered %d unit(s)\n", count)
	return nil
}

// PollAction runs one poll sweep over every previously-discovered unit.
func (a *GatewayApp) PollAction() error {
	a.GW.Poll(context.Background())
	a.P.Printf("poll complete\n")
	return nil
}
