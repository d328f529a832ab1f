package mathutil

import (
	"fmt"
	"math"
	"strings"
)

// Order is an Euler rotation order, named by the axes in application order.
type Order string

const (
	OrderXYZ Order = "XYZ"
	OrderXZY Order = "XZY"
	OrderYXZ Order = "YXZ"
	OrderYZX Order = "YZX"
	OrderZXY Order = "ZXY"
	OrderZYX Order = "ZYX"
)

// ParseOrder validates an order string such as "xzy".
func ParseOrder(s string) (Order, error) {
	o := Order(strings.ToUpper(strings.TrimSpace(s)))
	switch o {
	case OrderXYZ, OrderXZY, OrderYXZ, OrderYZX, OrderZXY, OrderZYX:
		return o, nil
	}
	return "", fmt.Errorf("mathutil: unknown rotation order %q", s)
}

// axes returns the application sequence. Unknown orders fall back to XYZ.
func (o Order) axes() string {
	if _, err := ParseOrder(string(o)); err != nil {
		return string(OrderXYZ)
	}
	return string(o)
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}
