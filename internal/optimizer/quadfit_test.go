package optimizer

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

func TestQuadMinimizerCrossCheck(t *testing.T) {
	// замкнутая форма против явного решения системы 3x3 для p1 + p2*x + p3*x^2
	f := func(x float64) float64 {
		return 0.003*math.Pow(x, 4) + 8*math.Pow(x, 3) - 3*x - 8
	}
	a, b, c := -2.0, -1.0, 3.0
	ya, yb, yc := f(a), f(b), f(c)

	got, err := quadMinimizer(a, b, c, ya, yb, yc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v := mat.NewDense(3, 3, []float64{
		1, a, a * a,
		1, b, b * b,
		1, c, c * c,
	})
	y := mat.NewVecDense(3, []float64{ya, yb, yc})
	var p mat.VecDense
	if err := p.SolveVec(v, y); err != nil {
		t.Fatalf("solve: %v", err)
	}
	want := -p.AtVec(1) / (2 * p.AtVec(2))

	if !scalar.EqualWithinAbsOrRel(got, want, 1e-9, 1e-9) {
		t.Errorf("closed form %v, linear system %v", got, want)
	}
}

func TestQuadMinimizerDegenerate(t *testing.T) {
	// значения на одной прямой — нулевой знаменатель
	x, err := quadMinimizer(0, 1, 2, 2, 1, 0)
	if !errors.Is(err, ErrDegenerateFit) {
		t.Fatalf("want ErrDegenerateFit, got %v (x=%v)", err, x)
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		t.Errorf("degenerate fit leaked non-finite value %v", x)
	}
}

func TestQuadraticFitSearchExact(t *testing.T) {
	// для параболы первый же фит точен, вторая итерация воспроизводит b
	q := quadratic{b: 3, c: 5}

	var count int
	a, b, c, err := QuadraticFitSearch(q, 0, 2, 7, 10, func(it Iter) error {
		count++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("iterations: got %d, want 1", count)
	}
	if a != 2 || b != 3 || c != 7 {
		t.Errorf("triple (%v, %v, %v), want (2, 3, 7)", a, b, c)
	}
}

func TestQuadraticFitSearchValleyInvariant(t *testing.T) {
	f := fn(func(x float64) float64 {
		return 0.05*math.Pow(x-2, 4) + (x-2)*(x-2)
	})

	eval := func(x float64) float64 {
		y, _ := f.Eval(x)
		return y
	}

	a, b, c, err := QuadraticFitSearch(f, -1, 0.5, 6, 30, func(it Iter) error {
		if !(it.A < it.B && it.B < it.C) {
			t.Errorf("iteration %d: triple out of order (%v, %v, %v)", it.K, it.A, it.B, it.C)
		}
		ya, yb, yc := eval(it.A), eval(it.B), eval(it.C)
		if yb >= ya || yb >= yc {
			t.Errorf("iteration %d: valley lost: f=(%v, %v, %v)", it.K, ya, yb, yc)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !(a <= 2 && 2 <= c) {
		t.Errorf("minimizer 2 not in [%v, %v]", a, c)
	}
	if math.Abs(b-2) > 1e-3 {
		t.Errorf("middle point %v, want close to 2", b)
	}
}

func TestQuadraticFitSearchCollinear(t *testing.T) {
	// линейная функция: тройка без "долины" отвергается, NaN не возвращается
	a, b, c, err := QuadraticFitSearch(fn(func(x float64) float64 { return x }), 0, 1, 2, 5, nil)
	if !errors.Is(err, ErrNotValley) {
		t.Fatalf("want ErrNotValley, got %v", err)
	}
	for _, v := range []float64{a, b, c} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("non-finite value leaked: %v", v)
		}
	}
}

func TestQuadraticFitSearchBadInterval(t *testing.T) {
	q := quadratic{b: 0, c: 0}
	if _, _, _, err := QuadraticFitSearch(q, 2, 1, 3, 5, nil); !errors.Is(err, ErrBadInterval) {
		t.Errorf("a > b: want ErrBadInterval, got %v", err)
	}
	if _, _, _, err := QuadraticFitSearch(q, 1, 1, 3, 5, nil); !errors.Is(err, ErrBadInterval) {
		t.Errorf("a == b: want ErrBadInterval, got %v", err)
	}
}

func TestQuadraticFitSearchStopCallback(t *testing.T) {
	f := fn(func(x float64) float64 {
		return 0.05*math.Pow(x-2, 4) + (x-2)*(x-2)
	})
	_, _, _, err := QuadraticFitSearch(f, -1, 0.5, 6, 8, func(it Iter) error {
		return ErrStopped
	})
	if !errors.Is(err, ErrStopped) {
		t.Fatalf("want ErrStopped, got %v", err)
	}
}
