package demon_test

import (
	"math/rand/v2"
	"testing"

	"pgregory.net/rapid"

	"github.com/fakeyudi/storydemon/internal/demon"
)

// Feature: storydemon, Property 7: placement stays inside the padded viewport.
func TestPlaceInsidePaddedViewport(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.Float64Range(250, 4000).Draw(t, "width")
		h := rapid.Float64Range(250, 4000).Draw(t, "height")
		pad := rapid.Float64Range(0, 100).Draw(t, "padding")
		rng := rand.New(rand.NewPCG(rapid.Uint64().Draw(t, "seed"), 1))

		var avoid *demon.Rect
		if rapid.Bool().Draw(t, "avoid") {
			r := demon.Rect{Left: w / 4, Top: h / 4, Right: w / 2, Bottom: h / 2}
			avoid = &r
		}

		x, y := demon.Place(rng, demon.Rect{Right: w, Bottom: h}, pad, avoid, 20)
		if x < pad || x >= w-pad || y < pad || y >= h-pad {
			t.Fatalf("(%v, %v) outside [%v, %v) x [%v, %v)", x, y, pad, w-pad, pad, h-pad)
		}
	})
}

func TestPlaceDegenerateViewport(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	x, y := demon.Place(rng, demon.Rect{Right: 50, Bottom: 50}, 100, nil, 20)
	if x != 100 || y != 100 {
		t.Fatalf("got (%v, %v), want the inset origin", x, y)
	}
}

func TestPlaceAcceptsLastCandidate(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	everything := demon.Rect{Left: -1, Top: -1, Right: 1e9, Bottom: 1e9}
	x, y := demon.Place(rng, demon.Rect{Right: 800, Bottom: 600}, 10, &everything, 20)
	if x < 10 || y < 10 {
		t.Fatalf("got (%v, %v)", x, y)
	}
}
