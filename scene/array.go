package scene

import (
	"fmt"
	"iter"

	"github.com/simverse/simverse/sim"
)

// Element is the behavior arrays need from their members.
type Element interface {
	Name() string
}

// Sensor is a scene entity producing a scalar reading.
type Sensor interface {
	Element
	Read() (float64, error)
}

// Array is a fixed-size ordered container of scene wrappers, built
// once at construction. No members are added or removed afterwards.
type Array[T Element] struct {
	items []T
}

func newArray[T Element](names []string, construct func(string) (T, error)) (Array[T], error) {
	items := make([]T, 0, len(names))
	for _, name := range names {
		item, err := construct(name)
		if err != nil {
			return Array[T]{}, err
		}
		items = append(items, item)
	}
	return Array[T]{items: items}, nil
}

// Len returns the number of members.
func (a *Array[T]) Len() int {
	return len(a.items)
}

// At returns the member at position i.
func (a *Array[T]) At(i int) T {
	return a.items[i]
}

// Contains reports whether a member with the given name is held.
func (a *Array[T]) Contains(name string) bool {
	for _, item := range a.items {
		if item.Name() == name {
			return true
		}
	}
	return false
}

// All iterates the members in order.
func (a *Array[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, item := range a.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// MotorArray is a fixed-size ordered container of motors.
type MotorArray struct {
	Array[*Motor]
}

// NewMotorArray resolves each name to a motor, in order.
func NewMotorArray(sess *sim.Session, names []string) (*MotorArray, error) {
	arr, err := newArray(names, func(name string) (*Motor, error) {
		return NewMotor(sess, name)
	})
	if err != nil {
		return nil, err
	}
	return &MotorArray{Array: arr}, nil
}

// SetVelocities applies one target velocity per motor, by position.
// The velocity count must match the motor count.
func (a *MotorArray) SetVelocities(velocities []float64) error {
	if len(velocities) != a.Len() {
		return fmt.Errorf("velocity count %d does not match motor count %d",
			len(velocities), a.Len())
	}
	for i, m := range a.items {
		if err := m.SetVelocity(velocities[i]); err != nil {
			return err
		}
	}
	return nil
}

// ProximitySensorArray is a fixed-size ordered container of proximity
// sensors.
type ProximitySensorArray struct {
	Array[*ProximitySensor]
}

// NewProximitySensorArray resolves each name to a proximity sensor, in
// order.
func NewProximitySensorArray(sess *sim.Session, names []string) (*ProximitySensorArray, error) {
	arr, err := newArray(names, func(name string) (*ProximitySensor, error) {
		return NewProximitySensor(sess, name)
	})
	if err != nil {
		return nil, err
	}
	return &ProximitySensorArray{Array: arr}, nil
}

// ReadAll reads every sensor in order.
func (a *ProximitySensorArray) ReadAll() ([]float64, error) {
	out := make([]float64, a.Len())
	for i, s := range a.items {
		v, err := s.InvDistance()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// SensorArray is a fixed-size ordered container over any sensor kind.
type SensorArray struct {
	Array[Sensor]
}

// NewSensorArray builds an array from already-constructed sensors.
func NewSensorArray(sensors ...Sensor) *SensorArray {
	items := make([]Sensor, len(sensors))
	copy(items, sensors)
	return &SensorArray{Array: Array[Sensor]{items: items}}
}

// ReadAll reads every sensor in order.
func (a *SensorArray) ReadAll() ([]float64, error) {
	out := make([]float64, a.Len())
	for i, s := range a.items {
		v, err := s.Read()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
