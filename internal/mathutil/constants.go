package mathutil

// Unit axes of the authoring tool's right-handed, Z-up frame.
var (
	AxisX = Vec3{1, 0, 0}
	AxisY = Vec3{0, 1, 0}
	AxisZ = Vec3{0, 0, 1}
)
