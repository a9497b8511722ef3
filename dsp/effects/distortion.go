package effects

import (
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/core"
)

const defaultDistortionDriveDB = 25.0

// Distortion is a memoryless tanh waveshaper: y = tanh(drive * x).
type Distortion struct {
	driveDB float64
	drive   float64
}

// NewDistortion returns a distortion with 25 dB of drive.
func NewDistortion() *Distortion {
	d := &Distortion{}
	_ = d.SetDrive(defaultDistortionDriveDB)

	return d
}

// SetDrive sets the input drive in dB.
func (d *Distortion) SetDrive(dB float64) error {
	if err := checkFinite("distortion drive", dB); err != nil {
		return err
	}

	d.driveDB = dB
	d.drive = core.DBToLinear(dB)

	return nil
}

// Drive returns the drive in dB.
func (d *Distortion) Drive() float64 { return d.driveDB }

// ProcessSample shapes one sample.
func (d *Distortion) ProcessSample(x float64) float64 {
	return math.Tanh(d.drive * x)
}

// ProcessInPlace shapes buf in place.
func (d *Distortion) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = math.Tanh(d.drive * x)
	}
}
