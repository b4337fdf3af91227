package optimizer

import "math"

// Bisection сужает интервал [a, b], на котором производная g меняет знак,
// до ширины не более eps. Возвращённый интервал по-прежнему содержит ноль g
// (стационарную точку целевой функции).
//
// Предусловия: a < b и sign(g(a)) != sign(g(b)); оба проверяются явно.
// Если g обращается в ноль на конце интервала, интервал схлопывается сразу.
// Число итераций детерминировано: ceil(log2((b-a)/eps)); maxIter — страховка.
func Bisection(
	g Func,
	a, b, eps float64,
	maxIter int,
	onIter func(Iter) error,
) (float64, float64, error) {
	if !(a < b) {
		return a, b, ErrBadInterval
	}
	if eps <= 0 {
		return a, b, ErrBadTolerance
	}

	ga, err := g.Eval(a)
	if err != nil {
		return a, b, err
	}
	if ga == 0 {
		return a, a, nil
	}
	gb, err := g.Eval(b)
	if err != nil {
		return a, b, err
	}
	if gb == 0 {
		return b, b, nil
	}
	if math.Signbit(ga) == math.Signbit(gb) {
		return a, b, ErrNoSignChange
	}

	for n := 1; b-a > eps; n++ {
		if n > maxIter {
			return a, b, ErrMaxIterations
		}

		x := (a + b) / 2 // середина — среднее арифметическое, не полуширина
		gx, err := g.Eval(x)
		if err != nil {
			return a, b, err
		}

		switch {
		case gx == 0:
			// точный ноль производной — интервал схлопывается
			a, b = x, x
		case math.Signbit(gx) == math.Signbit(ga):
			a, ga = x, gx
		default:
			b = x
		}

		if onIter != nil {
			it := Iter{K: n, A: a, B: b, X: x, FX: gx, Len: b - a}
			if err := onIter(it); err != nil {
				return a, b, err
			}
		}
	}

	return a, b, nil
}
