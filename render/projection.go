// Package render draws the cube scene and the stats text with ebiten.
package render

import (
	"math"

	"github.com/plus3/cubespawn/cubes"
)

// Projection maps world positions to screen pixels for one camera and
// viewport size.
type Projection struct {
	eye     cubes.Vec3
	right   cubes.Vec3
	up      cubes.Vec3
	forward cubes.Vec3
	near    float32

	// scale is the pixel length of one unit at depth one.
	scale   float32
	centerX float32
	centerY float32
}

// NewProjection builds a perspective projection looking from camera.Eye
// towards camera.Target. The vertical field of view spans the full height.
func NewProjection(camera cubes.Camera, width, height int) Projection {
	forward := cubes.NormV3(cubes.SubV3(camera.Target, camera.Eye))
	right := cubes.NormV3(cubes.Cross(forward, camera.Up))
	up := cubes.Cross(right, forward)

	halfHeight := float32(height) / 2
	focal := 1 / float32(math.Tan(float64(camera.FovY)/2))

	return Projection{
		eye:     camera.Eye,
		right:   right,
		up:      up,
		forward: forward,
		near:    camera.Near,
		scale:   focal * halfHeight,
		centerX: float32(width) / 2,
		centerY: halfHeight,
	}
}

// Depth returns the distance of p along the view direction.
func (p *Projection) Depth(world cubes.Vec3) float32 {
	return cubes.DotV3(cubes.SubV3(world, p.eye), p.forward)
}

// Project returns the screen position of world and its view depth. ok is
// false when the point lies behind the near plane.
func (p *Projection) Project(world cubes.Vec3) (x, y, depth float32, ok bool) {
	d := cubes.SubV3(world, p.eye)
	depth = cubes.DotV3(d, p.forward)
	if depth < p.near {
		return 0, 0, depth, false
	}

	x = p.centerX + cubes.DotV3(d, p.right)*p.scale/depth
	y = p.centerY - cubes.DotV3(d, p.up)*p.scale/depth
	return x, y, depth, true
}

// Eye returns the camera position.
func (p *Projection) Eye() cubes.Vec3 {
	return p.eye
}
