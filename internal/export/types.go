package export

import (
	"strconv"

	"tm-spectators/internal/mathutil"
)

// Output precision in decimal places.
const (
	PositionPrecision = 2
	RotationPrecision = 1
)

// DefaultName is the file name (without extension) used when none is configured.
const DefaultName = "PosExport"

// DefaultVerticalOffset corrects the 1 m height difference observed between
// the authoring tool and the game.
const DefaultVerticalOffset = -1.0

// Particle is one particle sample taken from the host at export time.
type Particle struct {
	Position mathutil.Vec3
	Rotation mathutil.Quat
}

// Source is the host side of an export: the selected object's origin and
// its evaluated particle transforms.
type Source interface {
	Pivot() mathutil.Vec3
	Particles() ([]Particle, error)
}

// Config holds the per-call export settings. Start from DefaultConfig:
// the zero value has no file name and a VerticalOffset of 0, which turns
// the -1 height calibration off.
type Config struct {
	// Rotation is an extra rotation in degrees about X, Y and Z.
	Rotation [3]float64

	MirrorX bool
	MirrorY bool
	MirrorZ bool

	Path    string // output directory, may be relative
	Name    string // file name without ".csv"
	BaseDir string // relative Path is resolved against this

	Append bool
	Header bool

	// VerticalOffset is added to the height after the axis swap. Zero is a
	// valid setting, not "use the default".
	VerticalOffset float64
}

// DefaultConfig returns a Config with the default file name and offset.
func DefaultConfig() Config {
	return Config{
		Name:           DefaultName,
		VerticalOffset: DefaultVerticalOffset,
	}
}

// Row is one exported spectator: rounded rotation and position.
type Row struct {
	Quat [4]float64 // w, x, y, z
	Pos  [3]float64 // x, height, depth (columns posX, posZ, posY)
}

// Fields returns the row as CSV fields in column order.
func (r Row) Fields() []string {
	return []string{
		strconv.FormatFloat(r.Quat[0], 'f', RotationPrecision, 64),
		strconv.FormatFloat(r.Quat[1], 'f', RotationPrecision, 64),
		strconv.FormatFloat(r.Quat[2], 'f', RotationPrecision, 64),
		strconv.FormatFloat(r.Quat[3], 'f', RotationPrecision, 64),
		strconv.FormatFloat(r.Pos[0], 'f', PositionPrecision, 64),
		strconv.FormatFloat(r.Pos[1], 'f', PositionPrecision, 64),
		strconv.FormatFloat(r.Pos[2], 'f', PositionPrecision, 64),
	}
}

// Summary describes a finished export.
type Summary struct {
	Path              string
	RowsWritten       int
	DuplicatesRemoved int
	Appended          bool
	Rows              []Row
}
