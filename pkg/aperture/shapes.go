package aperture

import (
	"math"
	"math/rand"
	"time"
)

// Placement positions a shape on the grid: a center offset from the grid
// center (m) and an optional rotation of the rasterized mask (degrees).
type Placement struct {
	CenterX, CenterY float64
	RotationDeg      float64
}

// Shape is an aperture geometry that can stamp its open region onto a
// transmittance mask. Dimensions are physical (m) and assumed positive;
// callers validate before rasterizing. The one exception is the Annulus,
// which clamps an inverted radius pair instead of failing.
type Shape interface {
	placement() Placement
	stamp(g Grid, mask [][]float64, rng *rand.Rand)
}

// Circle is a circular aperture of the given radius.
type Circle struct {
	Placement
	Radius float64
}

// Square is a square aperture with the given side length.
type Square struct {
	Placement
	Side float64
}

// Slit is a single rectangular slit, Width along x and Height along y.
type Slit struct {
	Placement
	Width, Height float64
}

// DoubleSlit is a pair of identical slits whose centers sit at
// x = ±Separation/2 relative to the shape center.
type DoubleSlit struct {
	Placement
	Width, Height, Separation float64
}

// Rectangle is an axis-aligned rectangular aperture.
type Rectangle struct {
	Placement
	Width, Height float64
}

// Ellipse is an elliptical aperture with semi-major axis Diameter/2 along
// x and semi-minor axis a*sqrt(1-e^2) along y.
type Ellipse struct {
	Placement
	Diameter     float64
	Eccentricity float64
}

// Annulus is a ring aperture between InnerRadius and OuterRadius.
// If InnerRadius exceeds OuterRadius the pair is clamped, never rejected.
type Annulus struct {
	Placement
	InnerRadius, OuterRadius float64
}

// Cross is the union of a wide horizontal bar (Width x Height/5) and a
// tall vertical bar (Width/5 x Height) sharing the shape center.
type Cross struct {
	Placement
	Width, Height float64
}

// Triangle is an isosceles triangle with its base (length Base) at
// y = -Height/2 and its apex at y = +Height/2.
type Triangle struct {
	Placement
	Base, Height float64
}

// Scatter is a 3x3 lattice of circular sub-apertures of radius CellRadius
// at CellSpacing intervals. Jitter > 0 displaces each cell by a uniform
// random offset; positions are redrawn on every rasterization from the
// random source passed to Rasterize.
type Scatter struct {
	Placement
	CellRadius  float64
	CellSpacing float64
	Jitter      float64 // disorder amount, 0 = perfectly periodic
}

// LShape is an L-shaped union of a vertical bar along the left edge and a
// horizontal bar along the bottom edge of a Width x Height bounding box.
type LShape struct {
	Placement
	Width, Height float64
}

func (p Placement) placement() Placement { return p }

// Option configures a rasterization call.
type Option func(*config)

type config struct {
	rng *rand.Rand
}

// WithRand supplies the random source used for stochastic shapes
// (Scatter jitter). Tests seed this explicitly for determinism; without
// it a time-seeded source is used and repeated calls differ.
func WithRand(rng *rand.Rand) Option {
	return func(c *config) { c.rng = rng }
}

// Rasterize renders the shape onto a fresh transmittance mask over the
// grid. Values are confined to [0, 1]. A nonzero rotation angle resamples
// the finished mask about the grid center with bilinear interpolation,
// filling uncovered samples as opaque.
func Rasterize(g Grid, s Shape, opts ...Option) [][]float64 {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	mask := g.NewMask()
	s.stamp(g, mask, cfg.rng)

	if deg := s.placement().RotationDeg; deg != 0 {
		mask = rotateMask(mask, deg)
	}
	return mask
}

// forEachSample visits every grid sample with its physical coordinates
// relative to the placement center.
func forEachSample(g Grid, p Placement, visit func(r, c int, x, y float64)) {
	xs := g.XCoords()
	ys := g.YCoords()
	for r := 0; r < g.Rows; r++ {
		y := ys[r] - p.CenterY
		for c := 0; c < g.Cols; c++ {
			visit(r, c, xs[c]-p.CenterX, y)
		}
	}
}

func (s Circle) stamp(g Grid, mask [][]float64, _ *rand.Rand) {
	r2 := s.Radius * s.Radius
	forEachSample(g, s.Placement, func(r, c int, x, y float64) {
		if x*x+y*y <= r2 {
			mask[r][c] = 1
		}
	})
}

func (s Square) stamp(g Grid, mask [][]float64, _ *rand.Rand) {
	half := s.Side / 2
	forEachSample(g, s.Placement, func(r, c int, x, y float64) {
		if math.Abs(x) <= half && math.Abs(y) <= half {
			mask[r][c] = 1
		}
	})
}

func (s Slit) stamp(g Grid, mask [][]float64, _ *rand.Rand) {
	stampRect(g, s.Placement, s.Width, s.Height, mask)
}

func (s Rectangle) stamp(g Grid, mask [][]float64, _ *rand.Rand) {
	stampRect(g, s.Placement, s.Width, s.Height, mask)
}

// stampRect fills the axis-aligned w x h region around the placement
// center. Overlap simply re-stamps 1, keeping the mask in [0, 1].
func stampRect(g Grid, p Placement, w, h float64, mask [][]float64) {
	halfW, halfH := w/2, h/2
	forEachSample(g, p, func(r, c int, x, y float64) {
		if math.Abs(x) <= halfW && math.Abs(y) <= halfH {
			mask[r][c] = 1
		}
	})
}

func (s DoubleSlit) stamp(g Grid, mask [][]float64, _ *rand.Rand) {
	left := s.Placement
	left.CenterX -= s.Separation / 2
	right := s.Placement
	right.CenterX += s.Separation / 2
	stampRect(g, left, s.Width, s.Height, mask)
	stampRect(g, right, s.Width, s.Height, mask)
}

func (s Ellipse) stamp(g Grid, mask [][]float64, _ *rand.Rand) {
	a := s.Diameter / 2
	b := a * math.Sqrt(1-s.Eccentricity*s.Eccentricity)
	if a <= 0 || b <= 0 {
		return
	}
	forEachSample(g, s.Placement, func(r, c int, x, y float64) {
		if (x*x)/(a*a)+(y*y)/(b*b) <= 1 {
			mask[r][c] = 1
		}
	})
}

func (s Annulus) stamp(g Grid, mask [][]float64, _ *rand.Rand) {
	inner, outer := s.InnerRadius, s.OuterRadius
	// Inverted input clamps to a valid ring rather than failing.
	if inner > outer {
		inner = outer
	}
	forEachSample(g, s.Placement, func(r, c int, x, y float64) {
		d := math.Sqrt(x*x + y*y)
		if d >= inner && d <= outer {
			mask[r][c] = 1
		}
	})
}

func (s Cross) stamp(g Grid, mask [][]float64, _ *rand.Rand) {
	forEachSample(g, s.Placement, func(r, c int, x, y float64) {
		horizontal := math.Abs(x) < s.Width/2 && math.Abs(y) < s.Height/10
		vertical := math.Abs(x) < s.Width/10 && math.Abs(y) < s.Height/2
		if horizontal || vertical {
			mask[r][c] = 1
		}
	})
}

func (s Triangle) stamp(g Grid, mask [][]float64, _ *rand.Rand) {
	halfH := s.Height / 2
	forEachSample(g, s.Placement, func(r, c int, x, y float64) {
		if y < -halfH || y > halfH {
			return
		}
		// Permitted half-width shrinks linearly from Base/2 at the base
		// (y = -H/2) to zero at the apex (y = +H/2).
		bound := (s.Base / 2) * (1 - (y+halfH)/s.Height)
		if math.Abs(x) <= bound {
			mask[r][c] = 1
		}
	})
}

func (s Scatter) stamp(g Grid, mask [][]float64, rng *rand.Rand) {
	r2 := s.CellRadius * s.CellRadius
	jitterRange := (s.Jitter / 4) * s.CellSpacing * 0.3

	type site struct{ x, y float64 }
	sites := make([]site, 0, 9)
	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			x := float64(i) * s.CellSpacing
			y := float64(j) * s.CellSpacing
			if s.Jitter > 0 {
				x += uniform(rng, -jitterRange, jitterRange)
				y += uniform(rng, -jitterRange, jitterRange)
			}
			sites = append(sites, site{x, y})
		}
	}

	forEachSample(g, s.Placement, func(r, c int, x, y float64) {
		for _, p := range sites {
			dx, dy := x-p.x, y-p.y
			if dx*dx+dy*dy <= r2 {
				mask[r][c] = 1
				return
			}
		}
	})
}

func (s LShape) stamp(g Grid, mask [][]float64, _ *rand.Rand) {
	halfW, halfH := s.Width/2, s.Height/2
	forEachSample(g, s.Placement, func(r, c int, x, y float64) {
		verticalBar := x > -halfW && x < -halfW+s.Width/5 &&
			y > -halfH && y < halfH
		horizontalBar := x > -halfW && x < halfW &&
			y > -halfH && y < -halfH+s.Height/5
		if verticalBar || horizontalBar {
			mask[r][c] = 1
		}
	})
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
