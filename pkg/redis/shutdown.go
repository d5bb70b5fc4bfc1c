package redis

import (
	"context"
	"io"
)

// Shutdown returns a shutdown hook that closes client.
//
//	app := essencek.New(essencek.WithShutdownHook(redis.Shutdown(client)))
func Shutdown(client io.Closer) func(context.Context) error {
	return func(context.Context) error {
		return client.Close()
	}
}
