package dial

import "math"

// Noon is the modeled solar noon in hours. The sun rises at Noon-6 and sets
// at Noon+6.
const Noon = 12.0

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// radToDeg converts radians to degrees.
func radToDeg(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// sunPhase is sin(time*pi/12): +1 at 06:00, 0 at noon, -1 at 18:00.
func sunPhase(time float64) float64 {
	return math.Sin(time * math.Pi / Noon)
}

// TimeRotation returns how far the sun has swept the dial, in degrees.
// The sweep is pi/2*sin(time*pi/12) radians: +90 at sunrise, -90 at sunset.
func TimeRotation(time float64) float64 {
	return radToDeg((math.Pi / 2) * sunPhase(time))
}

// RotationAngle returns the canvas rotation in degrees for the given time in
// hours and device azimuth. The azimuth term keeps the dial pointing north;
// the time term advances the shadow across the day. The result is not
// wrapped and may exceed +/-180.
func RotationAngle(time, azimuth float64) float64 {
	return -azimuth - TimeRotation(time)
}

// ShadowLength returns the shadow length in pixels for a pole of reference
// length baseLength. The pitch, roll and time contributions are summed as
// scalars:
//
//	L*cos(pitch) + L*cos(roll) + |L*sin(time*pi/12)|
func ShadowLength(pitch, roll, time, baseLength float64) float64 {
	length := baseLength * math.Cos(degToRad(pitch))
	length += baseLength * math.Cos(degToRad(roll))
	length += math.Abs(baseLength * sunPhase(time))
	return length
}

// Compute evaluates both outputs on the same snapshot.
func Compute(in Input, baseLength float64) Geometry {
	t := in.Time.Hours()
	return Geometry{
		RotationAngle: RotationAngle(t, in.Orientation.Azimuth),
		ShadowLength:  ShadowLength(in.Orientation.Pitch, in.Orientation.Roll, t, baseLength),
	}
}

// NormalizeDegrees wraps deg into [0, 360). It is meant for display only;
// the engine never wraps its own output.
func NormalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}
