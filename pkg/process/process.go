// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package process

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Ctx returns a context cancelled on SIGINT or SIGTERM, driving graceful
// shutdown of the serve loop.
func Ctx() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
