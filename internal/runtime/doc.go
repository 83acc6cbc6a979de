// Package runtime implements the transition orchestrator: the single-flight
// guard around the ordered steps that move the presentation from one layout
// mode to the next.
package runtime
