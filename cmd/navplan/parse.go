package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/milk9111/navshell/navmesh"
)

var errBadPoint = errors.New("point must be x,y")

func parsePoint(s string) (navmesh.Vec2, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return navmesh.Vec2{}, fmt.Errorf("%w: %q", errBadPoint, s)
	}
	var xy [2]float32
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return navmesh.Vec2{}, fmt.Errorf("%w: %q", errBadPoint, s)
		}
		xy[i] = float32(f)
	}
	p := navmesh.V2(xy[0], xy[1])
	if !p.Finite() {
		return navmesh.Vec2{}, fmt.Errorf("%w: %q is not finite", errBadPoint, s)
	}
	return p, nil
}
