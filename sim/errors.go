package sim

import (
	"errors"
	"fmt"

	"github.com/simverse/simverse/remoteapi"
)

// SDK error taxonomy. Every remote failure wraps one of these
// sentinels; callers match with errors.Is.
var (
	// ErrNotConnected is returned before any remote call is attempted
	// when there is no live connection to the simulator server.
	ErrNotConnected = errors.New("not connected to simulator server")

	// ErrAlreadyConnected is returned by Connect on a live session.
	ErrAlreadyConnected = errors.New("already connected")

	// ErrServer is returned when a remote call completed but the
	// server reported a non-success status.
	ErrServer = errors.New("simulator server error")

	// ErrRemoved is returned for any handle-dependent operation on an
	// object after it has been removed from the scene.
	ErrRemoved = errors.New("object removed from scene")

	// ErrMissingName is returned when a wrapper is constructed without
	// a name to resolve.
	ErrMissingName = errors.New("missing name")

	// ErrSimulationRunning is returned by kinematic mutators invoked
	// while the simulation runs, unless explicitly overridden.
	ErrSimulationRunning = errors.New("simulation is running")

	// ErrBadScriptType is returned for a script invocation with an
	// unknown script type.
	ErrBadScriptType = errors.New("unsupported script type")
)

// ServerErr wraps ErrServer with the failed operation and the status
// the server returned.
func ServerErr(op string, status remoteapi.Status) error {
	return fmt.Errorf("%s: %w (%s)", op, ErrServer, status)
}
