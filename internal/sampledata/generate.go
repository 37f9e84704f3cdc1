// Package sampledata generates synthetic CT volumes so the platform can be
// exercised without patient data. Volumes mimic an abdominal study: air
// background, an elliptical soft-tissue body, a bony spine, a liver band in
// the middle slices, and gaussian noise on top.
package sampledata

import (
	"fmt"
	"os"
	"path/filepath"

	exprand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"readstudy/internal/volume"
)

// Params controls synthetic volume generation.
type Params struct {
	Depth  int
	Height int
	Width  int
	Seed   uint64
}

// DefaultParams mirrors the study's acquisition geometry.
func DefaultParams() Params {
	return Params{Depth: 100, Height: 512, Width: 512, Seed: 42}
}

// Volume builds one synthetic volume in memory.
func Volume(identity string, params Params) (*volume.Volume, error) {
	if params.Depth <= 0 || params.Height <= 0 || params.Width <= 0 {
		return nil, fmt.Errorf("sample volume dimensions must be positive, got %dx%dx%d",
			params.Depth, params.Height, params.Width)
	}

	src := exprand.NewSource(params.Seed)
	tissue := distuv.Uniform{Min: 20, Max: 60, Src: src}
	spineHU := distuv.Uniform{Min: 400, Max: 800, Src: src}
	liverHU := distuv.Uniform{Min: 50, Max: 70, Src: src}
	noise := distuv.Normal{Mu: 0, Sigma: 10, Src: src}

	shape := volume.Shape{Depth: params.Depth, Height: params.Height, Width: params.Width}
	data := make([]float32, shape.Count())

	centerY := float64(params.Height) / 2
	centerX := float64(params.Width) / 2
	radiusY := float64(params.Height) / 3
	radiusX := float64(params.Width) / 3

	// Organ sizes scale with the body extent so small test geometries keep
	// the same anatomy instead of one structure swallowing the slice.
	spineX := centerX + radiusX*0.6
	spineRadius := radiusX * 0.12

	liverCenterY := centerY - radiusY*0.3
	liverCenterX := centerX - radiusX*0.3
	liverRadiusY := radiusY * 0.35
	liverRadiusX := radiusX * 0.47

	// The liver band occupies the middle of the stack, as in a torso scan.
	liverLo := params.Depth * 3 / 10
	liverHi := params.Depth * 7 / 10

	idx := 0
	for z := 0; z < params.Depth; z++ {
		inLiverBand := z >= liverLo && z <= liverHi
		for y := 0; y < params.Height; y++ {
			dy := float64(y) - centerY
			for x := 0; x < params.Width; x++ {
				dx := float64(x) - centerX

				value := -1000.0 // air
				inBody := dy*dy/(radiusY*radiusY)+dx*dx/(radiusX*radiusX) <= 1
				if inBody {
					value = tissue.Rand()
					if inLiverBand {
						ly := float64(y) - liverCenterY
						lx := float64(x) - liverCenterX
						if ly*ly/(liverRadiusY*liverRadiusY)+lx*lx/(liverRadiusX*liverRadiusX) <= 1 {
							value = liverHU.Rand()
						}
					}
				}
				sx := float64(x) - spineX
				if dy*dy+sx*sx <= spineRadius*spineRadius {
					value = spineHU.Rand()
				}

				data[idx] = float32(value + noise.Rand())
				idx++
			}
		}
	}

	return volume.New(identity, shape, data)
}

// WriteSamples generates count patient volumes under dir, named
// patient_001.npy onward. Depths vary slightly per patient the way real
// acquisitions do. Returns the identities written.
func WriteSamples(dir string, count int, params Params) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	depthJitter := distuv.Uniform{Min: -20, Max: 20, Src: exprand.NewSource(params.Seed)}

	identities := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		identity := fmt.Sprintf("patient_%03d", i)

		patientParams := params
		patientParams.Seed = params.Seed + uint64(i)
		patientParams.Depth = params.Depth + int(depthJitter.Rand())
		if patientParams.Depth < 1 {
			patientParams.Depth = 1
		}

		vol, err := Volume(identity, patientParams)
		if err != nil {
			return identities, err
		}

		path := filepath.Join(dir, identity+".npy")
		if err := vol.WriteFile(path); err != nil {
			return identities, fmt.Errorf("write %s: %w", identity, err)
		}
		identities = append(identities, identity)
	}
	return identities, nil
}
