// Package voxel samples signed distance functions on regular grids to
// probe properties of a solid such as its volume, the extent of its
// material and whether it is made up of a single connected piece.
package voxel

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"

	"github.com/chewxy/math32"
	"github.com/soypat/candycane/internal/d3"
	"github.com/soypat/candycane/sdf"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"
)

// MaxCells is the largest amount of cells a Grid may hold.
const MaxCells = 1 << 26

// ErrTooManyCells is returned when sampling a solid at the requested
// cell size would exceed MaxCells.
var ErrTooManyCells = errors.New("voxel: too many cells")

// Grid holds the signed distance of a solid sampled at the centers of
// cubic cells. The grid covers the bounds of the solid plus an empty
// border one cell wide.
type Grid struct {
	origin     r3.Vec // center of cell (0,0,0)
	cell       float64
	nx, ny, nz int
	dist       []float32
}

// Sample evaluates s at the center of every cell of a grid with the given cell
// side length. Slices of the grid are evaluated concurrently.
func Sample(ctx context.Context, s sdf.SDF3, cell float64) (*Grid, error) {
	if s == nil {
		return nil, errors.New("voxel: nil SDF3")
	}
	if cell <= 0 || math.IsNaN(cell) {
		return nil, fmt.Errorf("voxel: invalid cell size %v", cell)
	}
	bb := d3.Box(s.Bounds())
	if sdf.IsEmpty(s) {
		bb = d3.Box{}
	}
	size := bb.Size()
	g := &Grid{
		cell: cell,
		nx:   int(math.Ceil(size.X/cell)) + 2,
		ny:   int(math.Ceil(size.Y/cell)) + 2,
		nz:   int(math.Ceil(size.Z/cell)) + 2,
	}
	if float64(g.nx)*float64(g.ny)*float64(g.nz) > MaxCells {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrTooManyCells, g.nx, g.ny, g.nz)
	}
	// Center the grid on the bounds.
	span := r3.Scale(cell, r3.Vec{X: float64(g.nx - 1), Y: float64(g.ny - 1), Z: float64(g.nz - 1)})
	g.origin = r3.Sub(bb.Center(), r3.Scale(0.5, span))
	g.dist = make([]float32, g.nx*g.ny*g.nz)

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(runtime.GOMAXPROCS(0))
	for k := 0; k < g.nz; k++ {
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// Each slice writes to its own section of dist.
			for j := 0; j < g.ny; j++ {
				for i := 0; i < g.nx; i++ {
					g.dist[g.index(i, j, k)] = float32(s.Evaluate(g.Center(i, j, k)))
				}
			}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Grid) index(i, j, k int) int {
	return i + g.nx*(j+g.ny*k)
}

// Size returns the amount of cells along each axis.
func (g *Grid) Size() (nx, ny, nz int) { return g.nx, g.ny, g.nz }

// Cell returns the side length of the grid cells.
func (g *Grid) Cell() float64 { return g.cell }

// Center returns the position of the center of cell (i,j,k).
func (g *Grid) Center(i, j, k int) r3.Vec {
	return r3.Add(g.origin, r3.Scale(g.cell, r3.Vec{X: float64(i), Y: float64(j), Z: float64(k)}))
}

// Dist returns the sampled distance at the center of cell (i,j,k).
func (g *Grid) Dist(i, j, k int) float32 {
	return g.dist[g.index(i, j, k)]
}

// Inside reports whether the center of cell (i,j,k) is inside the solid.
// Cells outside the grid are never inside.
func (g *Grid) Inside(i, j, k int) bool {
	if i < 0 || j < 0 || k < 0 || i >= g.nx || j >= g.ny || k >= g.nz {
		return false
	}
	return g.dist[g.index(i, j, k)] < 0
}

// Volume estimates the volume of the solid by counting the cells whose center
// is inside. It only relies on the sign of the distance so it holds for
// fields that underestimate distances, such as unions of thin pieces.
func (g *Grid) Volume() float64 {
	n := 0
	for _, d := range g.dist {
		if d < 0 {
			n++
		}
	}
	return float64(n) * g.cell * g.cell * g.cell
}

// SmoothVolume estimates the volume of the solid crediting cells crossed by
// the surface with the fraction of the cell estimated from the distance at
// its center. It is more accurate than Volume for exact distance fields and
// underestimates the volume of fields that are shallower than the true
// distance inside.
func (g *Grid) SmoothVolume() float64 {
	cell := float32(g.cell)
	var sum float64
	for _, d := range g.dist {
		frac := math32.Max(0, math32.Min(1, 0.5-d/cell))
		sum += float64(frac)
	}
	return sum * g.cell * g.cell * g.cell
}

// OccupiedBounds returns the box enclosing all cells whose center is inside
// the solid. ok is false if no cell is inside.
func (g *Grid) OccupiedBounds() (bb r3.Box, ok bool) {
	var box d3.Box
	half := d3.Elem(g.cell / 2)
	for k := 0; k < g.nz; k++ {
		for j := 0; j < g.ny; j++ {
			for i := 0; i < g.nx; i++ {
				if !g.Inside(i, j, k) {
					continue
				}
				c := g.Center(i, j, k)
				cb := d3.Box{Min: r3.Sub(c, half), Max: r3.Add(c, half)}
				if !ok {
					box, ok = cb, true
				} else {
					box = box.Extend(cb)
				}
			}
		}
	}
	return r3.Box(box), ok
}

// Components returns the amount of 6-connected groups of inside cells.
func (g *Grid) Components() int {
	return len(g.ComponentSizes())
}

// ComponentSizes returns the cell count of every 6-connected group of inside
// cells, largest first.
func (g *Grid) ComponentSizes() []int {
	seen := make([]bool, len(g.dist))
	var stack [][3]int
	var sizes []int
	for k := 0; k < g.nz; k++ {
		for j := 0; j < g.ny; j++ {
			for i := 0; i < g.nx; i++ {
				idx := g.index(i, j, k)
				if seen[idx] || g.dist[idx] >= 0 {
					continue
				}
				seen[idx] = true
				stack = append(stack[:0], [3]int{i, j, k})
				n := 0
				for len(stack) > 0 {
					c := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					n++
					for _, nb := range neighbours(c) {
						if !g.Inside(nb[0], nb[1], nb[2]) {
							continue
						}
						nidx := g.index(nb[0], nb[1], nb[2])
						if seen[nidx] {
							continue
						}
						seen[nidx] = true
						stack = append(stack, nb)
					}
				}
				sizes = append(sizes, n)
			}
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sizes)))
	return sizes
}

func neighbours(c [3]int) [6][3]int {
	i, j, k := c[0], c[1], c[2]
	return [6][3]int{
		{i - 1, j, k}, {i + 1, j, k},
		{i, j - 1, k}, {i, j + 1, k},
		{i, j, k - 1}, {i, j, k + 1},
	}
}
