package optimizer

import "math"

// BracketMinimum расширяет интервал от стартовой точки x0, пока он не
// накроет локальный минимум унимодальной f. s — начальный шаг, k > 1 —
// коэффициент роста шага (экспоненциальное расширение).
//
// onIter вызывается после каждой пробной точки; если вернёт ErrStopped —
// алгоритм прерывается. На монотонной f метод не сходится, поэтому при
// исчерпании maxIter возвращается ErrNoBracket.
func BracketMinimum(
	f Func,
	x0, s, k float64,
	maxIter int,
	onIter func(Iter) error,
) (float64, float64, error) {
	if s == 0 {
		return 0, 0, ErrBadStep
	}
	if k <= 1 {
		return 0, 0, ErrBadGrowth
	}

	a := x0
	ya, err := f.Eval(a)
	if err != nil {
		return 0, 0, err
	}
	b := x0 + s
	yb, err := f.Eval(b)
	if err != nil {
		return 0, 0, err
	}

	// функция растёт в выбранном направлении — идём в другую сторону
	if yb > ya {
		a, b = b, a
		ya, yb = yb, ya
		s = -s
	}

	for n := 1; n <= maxIter; n++ {
		c := b + s
		yc, err := f.Eval(c)
		if err != nil {
			return math.Min(a, c), math.Max(a, c), err
		}

		if onIter != nil {
			it := Iter{
				K:   n,
				A:   math.Min(a, c),
				B:   math.Max(a, c),
				X:   c,
				FX:  yc,
				Len: math.Abs(c - a),
			}
			if err := onIter(it); err != nil {
				return math.Min(a, c), math.Max(a, c), err
			}
		}

		// функция снова пошла вверх — минимум внутри [a, c]
		if yc > yb {
			return math.Min(a, c), math.Max(a, c), nil
		}

		a, ya = b, yb
		b, yb = c, yc
		s *= k
	}

	return math.Min(a, b), math.Max(a, b), ErrNoBracket
}
