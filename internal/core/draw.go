package core

// DrawCall is a renderer-agnostic sprite request. Position is the sprite
// centre in world units; Rotation is in degrees.
type DrawCall struct {
	Texture  string
	X, Y     float64
	Rotation float64
	Scale    float64
}
