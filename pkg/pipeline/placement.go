// Package pipeline turns a scene description into pixels: it builds and
// places every figure, then rasterizes the faces in order.
package pipeline

import (
	"github.com/taigrr/tori/pkg/math3d"
	"github.com/taigrr/tori/pkg/scene"
)

// Placement is an ordered list of transforms. A vertex is mapped through
// the stages from first to last.
type Placement []math3d.Transform

// Compose reduces the placement into a single transform.
func (p Placement) Compose() math3d.Transform {
	return math3d.Compose(p...)
}

// World composes every stage except the final eye stage, giving the
// object-to-world transform.
func (p Placement) World() math3d.Transform {
	if len(p) == 0 {
		return math3d.Identity()
	}
	return math3d.Compose(p[:len(p)-1]...)
}

// FigurePlacement returns the stages that take a figure from object space
// to eye space: rotation about X, rotation about Z, translation to the
// figure center, then the eye transform. The rotation matrices turn
// clockwise, so the counter-clockwise figure angles are negated.
//
// Rotation about Y and scale are not part of the placement.
func FigurePlacement(f scene.Figure, eye math3d.Transform) Placement {
	return Placement{
		math3d.RotationX(-f.RotateX),
		math3d.RotationZ(-f.RotateZ),
		math3d.Translation(f.Center),
		eye,
	}
}
