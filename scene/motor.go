package scene

import (
	"fmt"

	"github.com/simverse/simverse/remoteapi"
	"github.com/simverse/simverse/sim"
)

// Motor wraps a motorized joint.
type Motor struct {
	*Object
}

// NewMotor resolves name to a motor.
func NewMotor(sess *sim.Session, name string) (*Motor, error) {
	obj, err := NewObject(sess, name)
	if err != nil {
		return nil, err
	}
	return &Motor{Object: obj}, nil
}

// SetVelocity sets the joint target velocity in rad/s. Velocity is a
// simulation-time command, so it is allowed while the simulation runs.
func (m *Motor) SetVelocity(velocity float64) error {
	h, err := m.liveHandle()
	if err != nil {
		return fmt.Errorf("set velocity of %q: %w", m.name, err)
	}
	if st := m.sess.API().SetJointTargetVelocity(h, velocity); st != remoteapi.StatusOK {
		return sim.ServerErr(fmt.Sprintf("set velocity of %q", m.name), st)
	}
	return nil
}
