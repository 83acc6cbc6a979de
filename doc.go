/*
Package marquee is a cyclic layout presentation engine: a fixed set of items
is re-arranged through an ordered sequence of layout modes, with animated
transitions, narrative-driven reveals, particle effects and a once-per-cycle
finale.

# Concept

The cycle is a small state machine (pkg/cycle). Every transition runs through
the orchestrator, which guarantees single flight: a request arriving while
another transition runs is dropped, never queued. Inside a transition the mode
changes at exactly one point, hidden by a fade. Geometry captured before the
change is animated to the new layout with an inverse-FLIP reflow.

Animation is behind the ports.Animator interface. anim.Engine interpolates
frame by frame on a pausable clock; anim.Instant settles every timeline at
once, which makes whole cycles deterministic under a virtual clock.

# Usage

	package main

	import (
		"context"
		"log"
		"os/signal"
		"syscall"

		"github.com/aretw0/marquee"
	)

	func main() {
		p, err := marquee.New(nil) // embedded defaults
		if err != nil {
			log.Fatal(err)
		}
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// Drives frames and the transition loop until interrupted.
		if err := p.Run(ctx); err != nil {
			log.Fatal(err)
		}
	}

For headless traces, Runner runs a presentation on a virtual clock with the
discrete-event animator and prints one line per lifecycle event.
*/
package marquee
