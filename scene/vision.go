package scene

import (
	"fmt"

	"github.com/simverse/simverse/remoteapi"
	"github.com/simverse/simverse/sim"
)

// RGB is one color pixel.
type RGB [3]uint8

// VisionSensor wraps a vision sensor.
type VisionSensor struct {
	*Object
}

// NewVisionSensor resolves name to a vision sensor.
func NewVisionSensor(sess *sim.Session, name string) (*VisionSensor, error) {
	obj, err := NewObject(sess, name)
	if err != nil {
		return nil, err
	}
	return &VisionSensor{Object: obj}, nil
}

// Image captures a color image. The server delivers pixels as signed
// bytes with rows bottom-up; the result has unsigned components and
// row 0 at the top.
func (v *VisionSensor) Image() ([][]RGB, error) {
	data, err := v.capture(false)
	if err != nil {
		return nil, err
	}
	if len(data.Pixels) != data.Width*data.Height*3 {
		return nil, fmt.Errorf("capture image of %q: buffer length %d does not match %dx%dx3",
			v.name, len(data.Pixels), data.Width, data.Height)
	}
	rows := make([][]RGB, data.Height)
	for r := 0; r < data.Height; r++ {
		src := (data.Height - 1 - r) * data.Width * 3
		row := make([]RGB, data.Width)
		for c := 0; c < data.Width; c++ {
			i := src + c*3
			row[c] = RGB{
				uint8(data.Pixels[i]),
				uint8(data.Pixels[i+1]),
				uint8(data.Pixels[i+2]),
			}
		}
		rows[r] = row
	}
	return rows, nil
}

// ImageGray captures a grayscale image, one unsigned intensity per
// pixel, row 0 at the top.
func (v *VisionSensor) ImageGray() ([][]uint8, error) {
	data, err := v.capture(true)
	if err != nil {
		return nil, err
	}
	if len(data.Pixels) != data.Width*data.Height {
		return nil, fmt.Errorf("capture image of %q: buffer length %d does not match %dx%d",
			v.name, len(data.Pixels), data.Width, data.Height)
	}
	rows := make([][]uint8, data.Height)
	for r := 0; r < data.Height; r++ {
		src := (data.Height - 1 - r) * data.Width
		row := make([]uint8, data.Width)
		for c := 0; c < data.Width; c++ {
			row[c] = uint8(data.Pixels[src+c])
		}
		rows[r] = row
	}
	return rows, nil
}

func (v *VisionSensor) capture(grayscale bool) (remoteapi.ImageData, error) {
	h, err := v.liveHandle()
	if err != nil {
		return remoteapi.ImageData{}, fmt.Errorf("capture image of %q: %w", v.name, err)
	}
	data, st := v.sess.API().VisionSensorImage(h, grayscale)
	if st != remoteapi.StatusOK {
		return remoteapi.ImageData{}, sim.ServerErr(fmt.Sprintf("capture image of %q", v.name), st)
	}
	return data, nil
}
