package scene

import (
	"fmt"

	"github.com/simverse/simverse/remoteapi"
	"github.com/simverse/simverse/sim"
)

// ProximitySensor wraps a proximity sensor.
type ProximitySensor struct {
	*Object
}

// NewProximitySensor resolves name to a proximity sensor.
func NewProximitySensor(sess *sim.Session, name string) (*ProximitySensor, error) {
	obj, err := NewObject(sess, name)
	if err != nil {
		return nil, err
	}
	return &ProximitySensor{Object: obj}, nil
}

// InvDistance reads the sensor and reports the inverted detection
// depth, 1 - depth, so that a larger value means a closer obstacle.
// Both "nothing detected" and "no value ready on the server" read as
// 0.0; the two states are deliberately not distinguished.
func (s *ProximitySensor) InvDistance() (float64, error) {
	h, err := s.liveHandle()
	if err != nil {
		return 0, fmt.Errorf("read proximity sensor %q: %w", s.name, err)
	}
	reading, st := s.sess.API().ReadProximitySensor(h)
	switch {
	case st == remoteapi.StatusNoValue:
		return 0, nil
	case st != remoteapi.StatusOK:
		return 0, sim.ServerErr(fmt.Sprintf("read proximity sensor %q", s.name), st)
	}
	if !reading.Detected {
		return 0, nil
	}
	return 1 - reading.Point[2], nil
}

// Read implements Sensor.
func (s *ProximitySensor) Read() (float64, error) {
	return s.InvDistance()
}
