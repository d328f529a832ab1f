package mathutil

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

func TestRound_HalfCasesFollowBinaryValue(t *testing.T) {
	require.Equal(t, 2.67, Round(2.675, 2))
	require.Equal(t, 0.5, Round(0.45, 1))
	require.Equal(t, 0.9, Round(0.95, 1))
	require.Equal(t, -1.23, Round(-1.2345, 2))
	require.Equal(t, 3.0, Round(2.999, 2))
}

func TestRound_NegativeZeroBecomesZero(t *testing.T) {
	r := Round(-0.001, 2)
	require.Equal(t, 0.0, r)
	require.False(t, math.Signbit(r), "expected +0, got -0")
}

func TestRound_NonFinitePassesThrough(t *testing.T) {
	require.True(t, math.IsNaN(Round(math.NaN(), 2)))
	require.True(t, math.IsInf(Round(math.Inf(1), 2), 1))
}

func TestEulerToQuat_ZeroIsIdentity(t *testing.T) {
	q := EulerToQuat(0, 0, 0, OrderXZY)
	require.True(t, q.ApproxEqual(mgl64.QuatIdent()))
}

func TestEulerToQuat_SingleAxis(t *testing.T) {
	half := math.Sqrt2 / 2
	q := EulerToQuat(0, 0, Deg2Rad(90), OrderXZY)
	require.InDelta(t, half, q.W, 1e-12)
	require.InDelta(t, half, q.V[2], 1e-12)

	v := q.Rotate(AxisX)
	require.InDelta(t, 0, v[0], 1e-12)
	require.InDelta(t, 1, v[1], 1e-12)
}

func TestEulerToQuat_OrderMatters(t *testing.T) {
	rx, ry, rz := Deg2Rad(30), Deg2Rad(45), Deg2Rad(60)

	xzy := EulerToQuat(rx, ry, rz, OrderXZY)
	want := mgl64.QuatRotate(ry, AxisY).
		Mul(mgl64.QuatRotate(rz, AxisZ)).
		Mul(mgl64.QuatRotate(rx, AxisX))
	require.True(t, xzy.ApproxEqualThreshold(want, 1e-12))

	xyz := EulerToQuat(rx, ry, rz, OrderXYZ)
	require.False(t, xyz.ApproxEqualThreshold(xzy, 1e-6))
}

func TestParseOrder(t *testing.T) {
	o, err := ParseOrder(" xzy ")
	require.NoError(t, err)
	require.Equal(t, OrderXZY, o)

	_, err = ParseOrder("XXY")
	require.Error(t, err)
}

func TestWXYZ(t *testing.T) {
	q := QuatWXYZ(0.5, 0.1, 0.2, 0.3)
	require.Equal(t, [4]float64{0.5, 0.1, 0.2, 0.3}, WXYZ(q))
}

func TestIsFinite(t *testing.T) {
	require.True(t, IsFinite(Vec3{1, 2, 3}))
	require.False(t, IsFinite(Vec3{1, math.NaN(), 3}))
	require.False(t, QuatIsFinite(QuatWXYZ(math.Inf(-1), 0, 0, 0)))
	require.True(t, QuatIsFinite(mgl64.QuatIdent()))
}
