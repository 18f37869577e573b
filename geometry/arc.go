// Package geometry содержит чистые геометрические функции для построения траекторий:
// проверку аппроксимации трех точек дугой и определение направления обхода.
package geometry

import (
	"math"

	"github.com/iwtcode/gcodeAdapter/models"
)

// MaxArcRadius - радиус, начиная с которого три точки считаются почти коллинеарными
const MaxArcRadius = 1000.0

// Distance возвращает расстояние между точками в плоскости XY
func Distance(a, b models.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// TriangleArea считает площадь треугольника по формуле Герона
func TriangleArea(p1, p2, p3 models.Point) float64 {
	d1 := Distance(p1, p2)
	d2 := Distance(p2, p3)
	d3 := Distance(p3, p1)
	s := (d1 + d2 + d3) / 2
	sq := s * (s - d1) * (s - d2) * (s - d3)
	if sq <= 0 || math.IsNaN(sq) {
		return 0
	}
	return math.Sqrt(sq)
}

// CircumRadius возвращает радиус описанной окружности R = d1*d2*d3 / (4*S).
// Для вырожденного треугольника возвращает +Inf.
func CircumRadius(p1, p2, p3 models.Point) float64 {
	area := TriangleArea(p1, p2, p3)
	if area == 0 {
		return math.Inf(1)
	}
	return Distance(p1, p2) * Distance(p2, p3) * Distance(p3, p1) / (4 * area)
}

// CanFormArc сообщает, можно ли заменить три точки одной дугой:
// радиус описанной окружности меньше MaxArcRadius и площадь треугольника больше tolerance.
func CanFormArc(p1, p2, p3 models.Point, tolerance float64) bool {
	area := TriangleArea(p1, p2, p3)
	if area == 0 || area <= tolerance {
		return false
	}
	r := Distance(p1, p2) * Distance(p2, p3) * Distance(p3, p1) / (4 * area)
	return r < MaxArcRadius
}

// Cross возвращает z-компоненту векторного произведения хорд p1->p2 и p2->p3
func Cross(p1, p2, p3 models.Point) float64 {
	ax, ay := p2.X-p1.X, p2.Y-p1.Y
	bx, by := p3.X-p2.X, p3.Y-p2.Y
	return ax*by - ay*bx
}

// IsClockwise сообщает, что обход p1 -> p2 -> p3 идет по часовой стрелке (G2)
func IsClockwise(p1, p2, p3 models.Point) bool {
	return Cross(p1, p2, p3) < 0
}

// Circumcenter возвращает центр окружности, проходящей через три точки.
// ok == false для коллинеарных точек.
func Circumcenter(p1, p2, p3 models.Point) (center models.Point, ok bool) {
	d := 2 * (p1.X*(p2.Y-p3.Y) + p2.X*(p3.Y-p1.Y) + p3.X*(p1.Y-p2.Y))
	if d == 0 {
		return models.Point{}, false
	}
	s1 := p1.X*p1.X + p1.Y*p1.Y
	s2 := p2.X*p2.X + p2.Y*p2.Y
	s3 := p3.X*p3.X + p3.Y*p3.Y
	center.X = (s1*(p2.Y-p3.Y) + s2*(p3.Y-p1.Y) + s3*(p1.Y-p2.Y)) / d
	center.Y = (s1*(p3.X-p2.X) + s2*(p1.X-p3.X) + s3*(p2.X-p1.X)) / d
	return center, true
}

// SweepAngle возвращает угол дуги (радианы, 0..2π) от start к end вокруг center
func SweepAngle(start, end, center models.Point, clockwise bool) float64 {
	a0 := math.Atan2(start.Y-center.Y, start.X-center.X)
	a1 := math.Atan2(end.Y-center.Y, end.X-center.X)
	sweep := a1 - a0
	if clockwise {
		sweep = -sweep
	}
	for sweep <= 0 {
		sweep += 2 * math.Pi
	}
	for sweep > 2*math.Pi {
		sweep -= 2 * math.Pi
	}
	return sweep
}
