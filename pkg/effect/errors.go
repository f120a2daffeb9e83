package effect

import "errors"

// ErrInvalidPeriod is raised when a PeriodicData.Period evaluates to <= 0,
// at initial apply or after a level change (spec §7). Callers must guard
// against level curves that can produce non-positive periods.
var ErrInvalidPeriod = errors.New("effect: periodic data evaluated to a non-positive period")

// ErrUnappliedContribution is raised when the engine attempts to unapply a
// modifier contribution that was never registered on the target attribute.
// This signals an invariant violation in the Apply/Unapply pipeline and is
// a programmer error (spec §7).
var ErrUnappliedContribution = errors.New("effect: attempted to unapply a contribution that was never applied")
