package wlkit

import "fmt"

// NativeID identifies a native backend object. It plays the role of the
// object's address: stable for the object's whole life, never reused while
// any handle to the object is still held, and the basis for handle equality
// and hashing. The zero value never names a real object.
type NativeID uint64

func (id NativeID) String() string {
	return fmt.Sprintf("0x%X", uint64(id))
}

// Origin is a point in layout space.
type Origin struct {
	X int32
	Y int32
}

// Size is a width/height pair in pixels.
type Size struct {
	Width  int32
	Height int32
}

// Area is a rectangle in layout space.
type Area struct {
	Origin Origin
	Size   Size
}

// Contains reports whether the point lies inside the area.
func (a Area) Contains(p Origin) bool {
	return p.X >= a.Origin.X && p.X < a.Origin.X+a.Size.Width &&
		p.Y >= a.Origin.Y && p.Y < a.Origin.Y+a.Size.Height
}

// Transform describes the rotation/flip applied to an output.
type Transform uint8

const (
	TransformNormal Transform = iota
	Transform90
	Transform180
	Transform270
	TransformFlipped
	TransformFlipped90
	TransformFlipped180
	TransformFlipped270
)

// Swapped reports whether the transform exchanges width and height.
func (t Transform) Swapped() bool {
	switch t {
	case Transform90, Transform270, TransformFlipped90, TransformFlipped270:
		return true
	}
	return false
}

// Subpixel describes the subpixel geometry of an output.
type Subpixel uint8

const (
	SubpixelUnknown Subpixel = iota
	SubpixelNone
	SubpixelHorizontalRGB
	SubpixelHorizontalBGR
	SubpixelVerticalRGB
	SubpixelVerticalBGR
)
