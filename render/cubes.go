package render

import (
	"image"
	"image/color"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/cubespawn/cubes"
	"github.com/plus3/cubespawn/ecs"
)

// maxBatchVertices keeps indices within uint16.
const maxBatchVertices = 1<<16 - 4

var whiteSubImage *ebiten.Image

// solidSource returns a white pixel to draw untextured triangles from. The
// one-pixel border keeps sampling from bleeding in transparent edges.
func solidSource() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

type face struct {
	normal  cubes.Vec3
	corners [4]int
	shade   float32
}

// Corner i has bit 0 set for +X, bit 1 for +Y and bit 2 for +Z.
var cubeFaces = [6]face{
	{normal: cubes.Vec3{X: 1}, corners: [4]int{1, 3, 7, 5}, shade: 0.8},
	{normal: cubes.Vec3{X: -1}, corners: [4]int{0, 4, 6, 2}, shade: 0.55},
	{normal: cubes.Vec3{Y: 1}, corners: [4]int{2, 6, 7, 3}, shade: 1},
	{normal: cubes.Vec3{Y: -1}, corners: [4]int{0, 1, 5, 4}, shade: 0.4},
	{normal: cubes.Vec3{Z: 1}, corners: [4]int{4, 5, 7, 6}, shade: 0.9},
	{normal: cubes.Vec3{Z: -1}, corners: [4]int{0, 2, 3, 1}, shade: 0.6},
}

type sortedCube struct {
	center cubes.Vec3
	depth  float32
}

// CubeRenderer draws every cube as flat-shaded faces, far cubes first.
// Its buffers are reused between frames.
type CubeRenderer struct {
	view     *ecs.View[struct{ *cubes.Transform }]
	order    []sortedCube
	vertices []ebiten.Vertex
	indices  []uint16
}

// NewCubeRenderer creates a renderer drawing the cubes in storage.
func NewCubeRenderer(storage *ecs.Storage) *CubeRenderer {
	return &CubeRenderer{
		view: ecs.NewView[struct{ *cubes.Transform }](storage),
	}
}

// Draw renders every cube seen through proj onto screen.
func (r *CubeRenderer) Draw(screen *ebiten.Image, proj *Projection, assets *cubes.CubeAssets) {
	r.order = r.order[:0]
	for cube := range r.view.Values() {
		center := cube.Transform.Translation
		depth := proj.Depth(center)
		if depth < 0 {
			continue
		}
		r.order = append(r.order, sortedCube{center: center, depth: depth})
	}
	slices.SortFunc(r.order, func(a, b sortedCube) int {
		switch {
		case a.depth > b.depth:
			return -1
		case a.depth < b.depth:
			return 1
		}
		return 0
	})

	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	for _, cube := range r.order {
		if len(r.vertices)+12 > maxBatchVertices {
			r.flush(screen)
		}
		r.appendCube(proj, cube.center, assets)
	}
	r.flush(screen)
}

func (r *CubeRenderer) appendCube(proj *Projection, center cubes.Vec3, assets *cubes.CubeAssets) {
	half := assets.Size / 2

	var screenPos [8][2]float32
	for i := range screenPos {
		corner := center
		corner.X += signed(i&1 != 0, half)
		corner.Y += signed(i&2 != 0, half)
		corner.Z += signed(i&4 != 0, half)

		x, y, _, ok := proj.Project(corner)
		if !ok {
			return
		}
		screenPos[i] = [2]float32{x, y}
	}

	cr, cg, cb, ca := float32(assets.Color.R)/255, float32(assets.Color.G)/255, float32(assets.Color.B)/255, float32(assets.Color.A)/255

	for _, f := range cubeFaces {
		faceCenter := cubes.AddV3(center, cubes.ScaleV3(half, f.normal))
		if cubes.DotV3(f.normal, cubes.SubV3(proj.Eye(), faceCenter)) <= 0 {
			continue
		}

		base := uint16(len(r.vertices))
		for _, c := range f.corners {
			r.vertices = append(r.vertices, ebiten.Vertex{
				DstX:   screenPos[c][0],
				DstY:   screenPos[c][1],
				SrcX:   1,
				SrcY:   1,
				ColorR: cr * f.shade,
				ColorG: cg * f.shade,
				ColorB: cb * f.shade,
				ColorA: ca,
			})
		}
		r.indices = append(r.indices, base, base+1, base+2, base, base+2, base+3)
	}
}

func (r *CubeRenderer) flush(screen *ebiten.Image) {
	if len(r.indices) > 0 {
		screen.DrawTriangles(r.vertices, r.indices, solidSource(), &ebiten.DrawTrianglesOptions{})
	}
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
}

func signed(positive bool, v float32) float32 {
	if positive {
		return v
	}
	return -v
}
