//go:build ignore

// This program regenerates silhouette.yaml from the dragon-curve L-system.
// Run with: go run generate.go
package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"strings"

	"github.com/Faultbox/morphfield/internal/assets"
)

const (
	iterations = 10
	step       = 0.1
)

func main() {
	cmds := "FX"
	rules := strings.NewReplacer("X", "X+YF+", "Y", "-FX-Y")
	for i := 0; i < iterations; i++ {
		cmds = rules.Replace(cmds)
	}

	// Walk the turtle
	var x, y, angle float64
	points := [][2]float64{{0, 0}}
	for _, c := range cmds {
		switch c {
		case 'F':
			x += math.Cos(angle) * step
			y += math.Sin(angle) * step
			points = append(points, [2]float64{x, y})
		case '+':
			angle += math.Pi / 2
		case '-':
			angle -= math.Pi / 2
		}
	}

	// Recentre on the origin
	minX, minY := points[0][0], points[0][1]
	maxX, maxY := minX, minY
	for _, p := range points {
		minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
		minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
	}
	cx, cy := (minX+maxX)/2, (minY+maxY)/2

	shape := &assets.Shape{Name: "dragon", Points: make([][2]float32, len(points))}
	for i, p := range points {
		shape.Points[i] = [2]float32{float32(p[0] - cx), float32(p[1] - cy)}
	}

	f, err := os.Create("silhouette.yaml")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	comment := fmt.Sprintf("Dragon curve silhouette: %d L-system iterations, unit step %g,\n"+
		"recentred on the origin. Regenerate with: go run generate.go", iterations, step)
	if err := assets.EncodeShape(f, shape, comment); err != nil {
		log.Fatal(err)
	}
}
