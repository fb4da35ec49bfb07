package blkid

import (
	"errors"

	log "github.com/dsoprea/go-logging"
)

// Sentinel errors returned at the package's API boundary. Internal
// validation failures are raised with log.Panic and recovered at the
// nearest exported entry point, the same pattern the teacher's
// ParseSuperblock uses.
var (
	ErrNilSession     = errors.New("blkid: session is nil")
	ErrNoDevice       = errors.New("blkid: no device bound")
	ErrShortRead      = errors.New("blkid: short read from device")
	ErrTagStoreFull   = errors.New("blkid: tag store is full")
	ErrValueTooLong   = errors.New("blkid: value exceeds MaxValueBytes")
	ErrInvalidArgs    = errors.New("blkid: invalid arguments")
	ErrFilterNoUsage  = errors.New("blkid: usage mask must be non-zero")
	ErrFilterNoNames  = errors.New("blkid: names must be non-empty")

	// ErrNoMatch is the canonical "not this one" rejection a ProbeFunc
	// returns; the dispatch loop treats any non-nil error identically
	// (spec.md §7: soft failures and rejections share one path), but
	// probers return this specific sentinel when their own validation
	// (not a read failure) is what rejected the candidate.
	ErrNoMatch = errors.New("blkid: prober did not match")
)

var probeLog = log.NewLogger("blkid.probe")

// recoverErr converts a panic carrying an error (log.Panic's contract)
// into a plain returned error. Callers defer recoverErr(&err) at the top
// of any exported function that may internally log.Panic.
func recoverErr(err *error) {
	if state := recover(); state != nil {
		if asErr, ok := state.(error); ok {
			*err = log.Wrap(asErr)
			return
		}
		panic(state)
	}
}
