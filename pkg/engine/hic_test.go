package engine_test

import (
	"math"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/reneeyyx/Safety1st/pkg/engine"
)

func TestHIC15(t *testing.T) {
	t.Run("constant acceleration matches closed form", func(t *testing.T) {
		// A constant 50 g series longer than the window: the optimal window
		// is the full 15 ms and HIC = 0.015 * 50^2.5.
		const dt = 0.0001
		accel := make([]float64, 300)
		for i := range accel {
			accel[i] = 50 * engine.Gravity
		}

		hic := engine.HIC15(accel, dt)
		want := 0.015 * math.Pow(50, 2.5)
		gt.B(t, math.Abs(hic-want)/want < 1e-9).True()
	})

	t.Run("zero series yields zero", func(t *testing.T) {
		accel := make([]float64, 100)
		gt.Number(t, engine.HIC15(accel, 0.0001)).Equal(0.0)
	})

	t.Run("degenerate input yields zero", func(t *testing.T) {
		gt.Number(t, engine.HIC15(nil, 0.0001)).Equal(0.0)
		gt.Number(t, engine.HIC15([]float64{10}, 0.0001)).Equal(0.0)
		gt.Number(t, engine.HIC15([]float64{10, 10}, 0)).Equal(0.0)
	})

	t.Run("higher acceleration yields higher HIC", func(t *testing.T) {
		const dt = 0.0001
		low := make([]float64, 200)
		high := make([]float64, 200)
		for i := range low {
			low[i] = 20 * engine.Gravity
			high[i] = 40 * engine.Gravity
		}
		gt.B(t, engine.HIC15(high, dt) > engine.HIC15(low, dt)).True()
	})
}

func TestChestA3ms(t *testing.T) {
	t.Run("constant series returns the constant in g", func(t *testing.T) {
		accel := make([]float64, 100)
		for i := range accel {
			accel[i] = 30 * engine.Gravity
		}
		a3ms := engine.ChestA3ms(accel, 0.0001)
		gt.B(t, math.Abs(a3ms-30) < 1e-9).True()
	})

	t.Run("short spike is averaged down", func(t *testing.T) {
		// One hot sample inside a 3 ms window cannot dominate the clip value.
		accel := make([]float64, 100)
		accel[50] = 100 * engine.Gravity
		a3ms := engine.ChestA3ms(accel, 0.0001)
		gt.B(t, a3ms < 5).True()
		gt.B(t, a3ms > 0).True()
	})

	t.Run("empty series yields zero", func(t *testing.T) {
		gt.Number(t, engine.ChestA3ms(nil, 0.0001)).Equal(0.0)
	})
}
