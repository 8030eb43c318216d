package enum

import "fmt"

// Rotation is the quarter turn applied to all label text, in degrees
type Rotation int

const (
	Rotation90  Rotation = 90
	Rotation270 Rotation = 270
)

// ParseRotation accepts 90 or 270.
func ParseRotation(degrees int) (Rotation, error) {
	switch Rotation(degrees) {
	case Rotation90, Rotation270:
		return Rotation(degrees), nil
	}
	return Rotation90, fmt.Errorf("unsupported rotation %d (use 90 or 270)", degrees)
}

// Escapement converts the rotation to tenths of a degree, the unit device
// contexts use for escapement and orientation.
func (r Rotation) Escapement() int {
	if r == Rotation270 {
		return 2700
	}
	return 900
}
