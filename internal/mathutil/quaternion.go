package mathutil

import "github.com/go-gl/mathgl/mgl64"

// Quat is a rotation quaternion stored as W + V(x, y, z).
type Quat = mgl64.Quat

// QuatWXYZ builds a quaternion from components in (w, x, y, z) order,
// the order the authoring tool and the CSV columns use.
func QuatWXYZ(w, x, y, z float64) Quat {
	return Quat{W: w, V: mgl64.Vec3{x, y, z}}
}

// WXYZ returns the components of q in (w, x, y, z) order.
func WXYZ(q Quat) [4]float64 {
	return [4]float64{q.W, q.V[0], q.V[1], q.V[2]}
}

// EulerToQuat converts Euler angles (radians) about X, Y and Z to a quaternion.
// order lists the axes in the sequence they are applied: OrderXZY rotates
// about X first, then Z, then Y, giving q = Ry · Rz · Rx.
func EulerToQuat(rx, ry, rz float64, order Order) Quat {
	q := mgl64.QuatIdent()
	for _, axis := range order.axes() {
		var r Quat
		switch axis {
		case 'X':
			r = mgl64.QuatRotate(rx, AxisX)
		case 'Y':
			r = mgl64.QuatRotate(ry, AxisY)
		case 'Z':
			r = mgl64.QuatRotate(rz, AxisZ)
		}
		q = r.Mul(q)
	}
	return q
}

// QuatIsFinite reports whether every component of q is a finite number.
func QuatIsFinite(q Quat) bool {
	return isFinite(q.W) && IsFinite(q.V)
}
