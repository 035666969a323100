// Package sim manages a session with the simulator's remote API
// server: connection lifecycle, simulation control, and server
// parameters. Scene wrappers are built on top of a Session.
package sim

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/simverse/simverse/internal/observability/log"
	"github.com/simverse/simverse/pkg/vec"
	"github.com/simverse/simverse/remoteapi"
	"github.com/simverse/simverse/remoteapi/ws"
)

// FloatPrec is the precision, in decimal digits, used when rounding
// float values the server is known to report slightly imprecisely.
const FloatPrec = 4

// Session is a live connection to the simulator server. All remote
// calls are blocking; the session is used serially.
type Session struct {
	api    remoteapi.Client
	config Config
	logger log.Log

	connected int32 // atomic bool
}

// Connect dials the configured server and returns a live session.
func Connect(ctx context.Context, config Config) (*Session, error) {
	logger := log.New(config.LogLevel).With(log.String("component", "sim"))

	client, err := ws.Dial(ctx, config.ServerURL, ws.Config{
		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", config.ServerURL, err)
	}

	s := &Session{
		api:    client,
		config: config,
		logger: logger,
	}
	atomic.StoreInt32(&s.connected, 1)

	logger.Info("Session established", log.String("url", config.ServerURL))
	return s, nil
}

// Wrap builds a session around an existing remote API client. Used by
// tests and by callers that bring their own transport.
func Wrap(api remoteapi.Client, config Config) *Session {
	s := &Session{
		api:    api,
		config: config,
		logger: log.Nop(),
	}
	atomic.StoreInt32(&s.connected, 1)
	return s
}

// Disconnect closes the connection. Further operations on the session
// and on wrappers built from it fail with ErrNotConnected.
func (s *Session) Disconnect() error {
	if !atomic.CompareAndSwapInt32(&s.connected, 1, 0) {
		return ErrNotConnected
	}
	err := s.api.Close()
	s.logger.Info("Session closed")
	return err
}

// Connected reports whether the session holds a live connection.
func (s *Session) Connected() bool {
	return atomic.LoadInt32(&s.connected) == 1
}

// API exposes the underlying remote API client.
func (s *Session) API() remoteapi.Client {
	return s.api
}

// Logger returns the session logger.
func (s *Session) Logger() log.Log {
	return s.logger
}

// Guard returns ErrNotConnected when no remote call should be
// attempted.
func (s *Session) Guard() error {
	if !s.Connected() {
		return ErrNotConnected
	}
	return nil
}

// Version retrieves the server program version, rendered x.y.z.
func (s *Session) Version() (string, error) {
	if err := s.Guard(); err != nil {
		return "", fmt.Errorf("retrieve server version: %w", err)
	}
	v, st := s.api.IntParam(remoteapi.ParamProgramVersion)
	if st != remoteapi.StatusOK {
		return "", ServerErr("retrieve server version", st)
	}
	return fmt.Sprintf("%d.%d.%d", v/10000, (v/100)%100, v%100), nil
}

var dynEngineNames = map[int]string{
	0: "Bullet",
	1: "ODE",
	2: "Vortex",
	3: "Newton",
}

// DynEngineName retrieves the name of the active dynamics engine.
func (s *Session) DynEngineName() (string, error) {
	if err := s.Guard(); err != nil {
		return "", fmt.Errorf("retrieve dynamics engine name: %w", err)
	}
	id, st := s.api.IntParam(remoteapi.ParamDynamicEngine)
	if st != remoteapi.StatusOK {
		return "", ServerErr("retrieve dynamics engine name", st)
	}
	name, ok := dynEngineNames[id]
	if !ok {
		return "", fmt.Errorf("unknown dynamics engine id %d", id)
	}
	return name, nil
}

// SimStep retrieves the simulation time step. The server reports the
// value slightly imprecisely, so it is rounded to FloatPrec digits.
func (s *Session) SimStep() (float64, error) {
	if err := s.Guard(); err != nil {
		return 0, fmt.Errorf("retrieve simulation time step: %w", err)
	}
	dt, st := s.api.FloatParam(remoteapi.ParamSimTimeStep)
	if st != remoteapi.StatusOK {
		return 0, ServerErr("retrieve simulation time step", st)
	}
	return vec.Round(dt, FloatPrec), nil
}

// DynEngineStep retrieves the dynamics engine time step, rounded like
// SimStep.
func (s *Session) DynEngineStep() (float64, error) {
	if err := s.Guard(); err != nil {
		return 0, fmt.Errorf("retrieve dynamics engine time step: %w", err)
	}
	dt, st := s.api.FloatParam(remoteapi.ParamDynamicStep)
	if st != remoteapi.StatusOK {
		return 0, ServerErr("retrieve dynamics engine time step", st)
	}
	return vec.Round(dt, FloatPrec), nil
}

// ScenePath retrieves the path of the currently loaded scene.
func (s *Session) ScenePath() (string, error) {
	if err := s.Guard(); err != nil {
		return "", fmt.Errorf("retrieve scene path: %w", err)
	}
	path, st := s.api.StringParam(remoteapi.ParamScenePath)
	if st != remoteapi.StatusOK {
		return "", ServerErr("retrieve scene path", st)
	}
	return path, nil
}

// Start enables synchronous operation mode and starts the simulation.
func (s *Session) Start() error {
	if err := s.Guard(); err != nil {
		return fmt.Errorf("start simulation: %w", err)
	}
	if st := s.api.SetSynchronous(true); st != remoteapi.StatusOK {
		return ServerErr("enable synchronous mode", st)
	}
	// The server replies with the no-value flag when the start command
	// lands between simulation passes; that is still a success.
	if st := s.api.StartSimulation(); st != remoteapi.StatusOK && st != remoteapi.StatusNoValue {
		return ServerErr("start simulation", st)
	}
	s.logger.Info("Simulation started")
	return nil
}

// Stop stops the simulation.
func (s *Session) Stop() error {
	if err := s.Guard(); err != nil {
		return fmt.Errorf("stop simulation: %w", err)
	}
	if st := s.api.StopSimulation(); st != remoteapi.StatusOK && st != remoteapi.StatusNoValue {
		return ServerErr("stop simulation", st)
	}
	s.logger.Info("Simulation stopped")
	return nil
}

// Running reports whether a simulation is started on the server. The
// answer may lag right after Start or Stop.
func (s *Session) Running() (bool, error) {
	if err := s.Guard(); err != nil {
		return false, fmt.Errorf("retrieve simulation state: %w", err)
	}
	running, st := s.api.SimulationRunning()
	if st != remoteapi.StatusOK {
		return false, ServerErr("retrieve simulation state", st)
	}
	return running, nil
}

// TriggerStep advances the simulation by one step in synchronous mode.
func (s *Session) TriggerStep() error {
	if err := s.Guard(); err != nil {
		return fmt.Errorf("trigger simulation step: %w", err)
	}
	if st := s.api.Step(); st != remoteapi.StatusOK {
		return ServerErr("trigger simulation step", st)
	}
	return nil
}
