// Package emitter implements short-lived, self-terminating particle effects.
//
// An Emitter spawns particles onto a host at jittered intervals and stops itself
// after a bounded lifetime. Every spawned particle is removed from its host when
// its own animation settles, whether or not the emitter is still active.
package emitter
