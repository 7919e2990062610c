package app

import "time"

func timeoutFromMs(ms uint32) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
