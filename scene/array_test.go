package scene_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simverse/simverse/remoteapi"
	"github.com/simverse/simverse/scene"
	"github.com/simverse/simverse/sim"
)

func TestMotorArray(t *testing.T) {
	sess, fake := newScene(t)
	left := fake.AddObject("left")
	right := fake.AddObject("right")
	rear := fake.AddObject("rear")

	arr, err := scene.NewMotorArray(sess, []string{"left", "right", "rear"})
	require.NoError(t, err)

	assert.Equal(t, 3, arr.Len())
	assert.Equal(t, "right", arr.At(1).Name())
	assert.True(t, arr.Contains("rear"))
	assert.False(t, arr.Contains("front"))

	var names []string
	for _, m := range arr.All() {
		names = append(names, m.Name())
	}
	assert.Equal(t, []string{"left", "right", "rear"}, names)

	require.NoError(t, arr.SetVelocities([]float64{1, 2, 3}))
	assert.Equal(t, 1.0, left.Velocity)
	assert.Equal(t, 2.0, right.Velocity)
	assert.Equal(t, 3.0, rear.Velocity)
}

func TestMotorArraySetVelocitiesLengthMismatch(t *testing.T) {
	sess, fake := newScene(t)
	fake.AddObject("left")
	fake.AddObject("right")
	fake.AddObject("rear")

	arr, err := scene.NewMotorArray(sess, []string{"left", "right", "rear"})
	require.NoError(t, err)

	assert.Error(t, arr.SetVelocities([]float64{1, 2}))
	assert.Error(t, arr.SetVelocities([]float64{1, 2, 3, 4}))
}

func TestMotorArrayUnknownMember(t *testing.T) {
	sess, fake := newScene(t)
	fake.AddObject("left")

	_, err := scene.NewMotorArray(sess, []string{"left", "no_such_motor"})
	assert.ErrorIs(t, err, sim.ErrServer)
}

func TestProximitySensorArrayReadAll(t *testing.T) {
	sess, fake := newScene(t)
	near := fake.AddObject("near")
	near.Proximity = remoteapi.ProximityReading{Detected: true, Point: [3]float64{0, 0, 0.2}}
	fake.AddObject("clear")

	arr, err := scene.NewProximitySensorArray(sess, []string{"near", "clear"})
	require.NoError(t, err)

	readings, err := arr.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []float64{0.8, 0}, readings)
}

func TestSensorArray(t *testing.T) {
	sess, fake := newScene(t)
	sonar := fake.AddObject("sonar")
	sonar.Proximity = remoteapi.ProximityReading{Detected: true, Point: [3]float64{0, 0, 0.5}}

	s, err := scene.NewProximitySensor(sess, "sonar")
	require.NoError(t, err)

	arr := scene.NewSensorArray(s)
	assert.Equal(t, 1, arr.Len())
	assert.True(t, arr.Contains("sonar"))

	readings, err := arr.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5}, readings)
}

func TestPioneerBot(t *testing.T) {
	sess, fake := newScene(t)
	fake.AddObject("pioneer")
	fake.AddObject("sonar1")
	fake.AddObject("sonar2")
	fake.AddObject("wheelL")
	fake.AddObject("wheelR")

	bot, err := scene.NewPioneerBot(sess, "pioneer",
		[]string{"sonar1", "sonar2"}, []string{"wheelL", "wheelR"})
	require.NoError(t, err)

	assert.Equal(t, "pioneer", bot.Name())
	assert.Equal(t, 2, bot.Sonars.Len())
	assert.Equal(t, 2, bot.Wheels.Len())

	require.NoError(t, bot.Wheels.SetVelocities([]float64{1.5, -1.5}))
}

func TestPioneerBotMissingPart(t *testing.T) {
	sess, fake := newScene(t)
	fake.AddObject("pioneer")
	fake.AddObject("sonar1")

	_, err := scene.NewPioneerBot(sess, "pioneer",
		[]string{"sonar1"}, []string{"no_such_wheel"})
	assert.ErrorIs(t, err, sim.ErrServer)
}
