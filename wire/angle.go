package wire

import (
	"io"
	"math"
)

// Angle is a rotation stored as 256ths of a full turn in one byte.
// It cannot exceed a full rotation and has no negative values.
type Angle uint8

// AngleFromDegrees converts degrees to the wire format. Negative
// values are reflected and whole turns are discarded; precision is
// lost going to 256ths.
func AngleFromDegrees(deg float64) Angle {
	deg = math.Mod(math.Abs(deg), 360)
	return Angle(deg / 360 * 256)
}

// AngleFromRadians converts radians to the wire format with the same
// normalization as AngleFromDegrees.
func AngleFromRadians(rad float64) Angle {
	rad = math.Mod(math.Abs(rad), 2*math.Pi)
	return Angle(rad / (2 * math.Pi) * 256)
}

// Degrees reports the angle in degrees.
func (a Angle) Degrees() float64 { return float64(a) / 256 * 360 }

// Radians reports the angle in radians.
func (a Angle) Radians() float64 { return a.Degrees() * math.Pi / 180 }

func AppendAngle(dst []byte, a Angle) []byte { return append(dst, byte(a)) }

func ReadAngle(r io.Reader) (Angle, error) {
	b, err := ReadUint8(r)
	return Angle(b), err
}
