package export

import (
	"cmp"
	"slices"

	"tm-spectators/internal/mathutil"
)

// ExtraRotation builds the configured extra rotation. The Y and Z inputs
// trade places like the position axes do, then compose in XZY order.
func (c Config) ExtraRotation() mathutil.Quat {
	return mathutil.EulerToQuat(
		mathutil.Deg2Rad(c.Rotation[0]),
		mathutil.Deg2Rad(c.Rotation[2]),
		mathutil.Deg2Rad(c.Rotation[1]),
		mathutil.OrderXZY,
	)
}

// Transform converts particles into rows: sorted by raw height, made
// relative to pivot, swapped to Y-up, rounded, rotated and mirrored.
// The input slice is not modified.
func Transform(particles []Particle, pivot mathutil.Vec3, cfg Config) []Row {
	sorted := slices.Clone(particles)
	slices.SortStableFunc(sorted, func(a, b Particle) int {
		return cmp.Compare(a.Position.Z(), b.Position.Z())
	})

	extra := cfg.ExtraRotation()
	rows := make([]Row, 0, len(sorted))
	for _, p := range sorted {
		local := p.Position.Sub(pivot)

		// Z-up -> Y-up
		pos := [3]float64{
			mathutil.Round(local.X(), PositionPrecision),
			mathutil.Round(local.Z()+cfg.VerticalOffset, PositionPrecision),
			mathutil.Round(local.Y(), PositionPrecision),
		}

		q := mathutil.WXYZ(p.Rotation.Mul(extra))
		for i := range q {
			q[i] = mathutil.Round(q[i], RotationPrecision)
		}

		// Mirrors act on the swapped axes.
		if cfg.MirrorX {
			pos[0] = negate(pos[0])
		}
		if cfg.MirrorY {
			pos[2] = negate(pos[2])
		}
		if cfg.MirrorZ {
			pos[1] = negate(pos[1])
		}

		rows = append(rows, Row{Quat: q, Pos: pos})
	}
	return rows
}

// Dedup keeps the first row for every distinct position.
func Dedup(rows []Row) ([]Row, int) {
	seen := make(map[[3]float64]struct{}, len(rows))
	unique := make([]Row, 0, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.Pos]; ok {
			continue
		}
		seen[r.Pos] = struct{}{}
		unique = append(unique, r)
	}
	return unique, len(rows) - len(unique)
}

func negate(v float64) float64 {
	if v == 0 {
		return 0
	}
	return -v
}
