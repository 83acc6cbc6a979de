package domain

import (
	"errors"
	"fmt"
)

// ErrContract marks caller contract violations (programmer errors). They fail
// fast and are never retried.
var ErrContract = errors.New("contract violation")

// ErrMissingTarget is returned when a phase references a nil target or callback.
var ErrMissingTarget = fmt.Errorf("%w: missing target", ErrContract)

// ErrMissingNarrative is returned when an item key has no narrative entry.
var ErrMissingNarrative = fmt.Errorf("%w: missing narrative", ErrContract)

// ErrNegativeDuration is returned when a timing value is below zero.
var ErrNegativeDuration = fmt.Errorf("%w: negative duration", ErrContract)

// ErrEmptySequence is returned when a cycle is built without modes.
var ErrEmptySequence = fmt.Errorf("%w: empty layout sequence", ErrContract)

// ErrUnknownEase is returned when an easing identifier cannot be resolved.
var ErrUnknownEase = fmt.Errorf("%w: unknown ease", ErrContract)
