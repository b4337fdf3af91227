package optimizer

import "math"

// QuadraticFitSearch уточняет тройку a < b < c с "долиной" в средней точке
// (f(a) > f(b) и f(c) > f(b)) за n итераций. На каждой итерации через три
// точки проводится парабола, её минимум x* сужает тройку.
//
// Вырожденный фит (нулевой знаменатель — значения на одной прямой) и
// нарушение предусловий возвращаются как ошибки, а не как NaN.
func QuadraticFitSearch(
	f Func,
	a, b, c float64,
	n int,
	onIter func(Iter) error,
) (float64, float64, float64, error) {
	if !(a < b && b < c) {
		return a, b, c, ErrBadInterval
	}

	ya, err := f.Eval(a)
	if err != nil {
		return a, b, c, err
	}
	yb, err := f.Eval(b)
	if err != nil {
		return a, b, c, err
	}
	yc, err := f.Eval(c)
	if err != nil {
		return a, b, c, err
	}
	if yb >= ya || yb >= yc {
		return a, b, c, ErrNotValley
	}

	for k := 1; k <= n; k++ {
		x, err := quadMinimizer(a, b, c, ya, yb, yc)
		if err != nil {
			return a, b, c, err
		}

		// защита от плохо обусловленного фита: точка не покидает [a, c]
		x = math.Max(a, math.Min(c, x))
		if x == a || x == b || x == c {
			// фит воспроизвёл имеющуюся точку, дальше уточнять нечего
			break
		}

		yx, err := f.Eval(x)
		if err != nil {
			return a, b, c, err
		}
		if yx == yb {
			// улучшение не измеримо, следующий фит был бы вырожден
			break
		}

		// точка лучше средней становится новой серединой, иначе — новым
		// краем; строгая "долина" сохраняется в обоих случаях
		if x < b {
			if yx < yb {
				c, yc = b, yb
				b, yb = x, yx
			} else {
				a, ya = x, yx
			}
		} else {
			if yx < yb {
				a, ya = b, yb
				b, yb = x, yx
			} else {
				c, yc = x, yx
			}
		}

		if onIter != nil {
			it := Iter{K: k, A: a, B: b, C: c, X: x, FX: yx, Len: c - a}
			if err := onIter(it); err != nil {
				return a, b, c, err
			}
		}
	}

	return a, b, c, nil
}

// quadMinimizer — минимум параболы через (a, ya), (b, yb), (c, yc)
// в замкнутой форме (через интерполяцию Лагранжа).
func quadMinimizer(a, b, c, ya, yb, yc float64) (float64, error) {
	den := ya*(b-c) + yb*(c-a) + yc*(a-b)
	if den == 0 {
		return 0, ErrDegenerateFit
	}
	num := ya*(b*b-c*c) + yb*(c*c-a*a) + yc*(a*a-b*b)
	return 0.5 * num / den, nil
}
