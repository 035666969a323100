package scene

import "github.com/simverse/simverse/sim"

// Model wraps the root object of a simulated model.
type Model struct {
	*Object
}

// NewModel resolves name to a model root.
func NewModel(sess *sim.Session, name string) (*Model, error) {
	obj, err := NewObject(sess, name)
	if err != nil {
		return nil, err
	}
	return &Model{Object: obj}, nil
}

// PioneerBot wraps a Pioneer P3-DX robot: a model root plus its ring
// of ultrasonic sensors and its two wheel motors.
type PioneerBot struct {
	*Model

	Sonars *ProximitySensorArray
	Wheels *MotorArray
}

// NewPioneerBot resolves the model root, the ultrasonic sensors, and
// the wheel motors, in that order.
func NewPioneerBot(sess *sim.Session, name string, sonarNames, motorNames []string) (*PioneerBot, error) {
	model, err := NewModel(sess, name)
	if err != nil {
		return nil, err
	}
	sonars, err := NewProximitySensorArray(sess, sonarNames)
	if err != nil {
		return nil, err
	}
	wheels, err := NewMotorArray(sess, motorNames)
	if err != nil {
		return nil, err
	}
	return &PioneerBot{Model: model, Sonars: sonars, Wheels: wheels}, nil
}
