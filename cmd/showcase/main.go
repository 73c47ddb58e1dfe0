/*
Showcase hands the loop to engine.Run: it shows an image, text and random
lines, and plays a sound once at startup.
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/anima2d/engine"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/platform"
	"github.com/spaghettifunk/anima2d/testbed/showcase"
)

func main() {
	ctx, events, err := engine.NewContextBuilder("showcase", "anima").
		AddResourcePath(resourceDir()).
		WindowSetup("anima2d showcase").
		Build()
	if err != nil {
		core.LogFatal("%v", err)
	}

	state, err := showcase.NewMainState(ctx)
	if err != nil {
		ctx.Close()
		core.LogFatal("%v", err)
	}

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

	// Run closes the context
	if err := engine.Run(ctx, events, state); err != nil {
		core.LogFatal("%v", err)
	}
}

func resourceDir() string {
	if dir := os.Getenv("ANIMA_RESOURCES"); dir != "" {
		return dir
	}
	return "./resources"
}
