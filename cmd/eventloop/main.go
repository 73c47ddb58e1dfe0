/*
Eventloop drives the engine by hand: it polls the window events itself and
moves a circle across the screen until the window is closed or Escape is
pressed.
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/anima2d/engine"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/platform"
	"github.com/spaghettifunk/anima2d/testbed/eventloop"
)

func main() {
	ctx, events, err := engine.NewContextBuilder("eventloop", "anima").
		AddResourcePath(resourceDir()).
		WindowSetup("anima2d event loop").
		Build()
	if err != nil {
		core.LogFatal("%v", err)
	}
	defer ctx.Close()

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// a signal is turned into a close request for the loop to handle
	go func() {
		<-sigCh
		if inj, ok := events.(platform.Injector); ok {
			inj.Push(core.WindowEvent{Kind: core.WindowCloseRequested})
		}
	}()

	if err := eventloop.Run(ctx, events); err != nil {
		ctx.Close()
		core.LogFatal("%v", err)
	}
}

func resourceDir() string {
	if dir := os.Getenv("ANIMA_RESOURCES"); dir != "" {
		return dir
	}
	return "./resources"
}
