package optimizer

import "errors"

// Iter — одна итерация метода.
// Для двухточечных методов (bracket, bisection) поле C не используется.
type Iter struct {
	K   int     `json:"k"`
	A   float64 `json:"a"`
	B   float64 `json:"b"`
	C   float64 `json:"c"`
	X   float64 `json:"x"`
	FX  float64 `json:"fx"`
	Len float64 `json:"len"`
}

// ErrStopped — специальная ошибка для принудительной остановки из callback
var ErrStopped = errors.New("optimizer: stopped by callback")

// Ошибки нарушения предусловий и вырожденных случаев.
// Методы возвращают их вместо NaN/Inf или бесконечного цикла.
var (
	ErrBadStep       = errors.New("bracket: initial step is zero")
	ErrBadGrowth     = errors.New("bracket: growth factor must be greater than 1")
	ErrNoBracket     = errors.New("bracket: no minimum bracketed within iteration limit")
	ErrBadInterval   = errors.New("optimizer: interval endpoints are out of order")
	ErrBadTolerance  = errors.New("optimizer: tolerance must be positive")
	ErrNoSignChange  = errors.New("bisection: derivative has the same sign at both endpoints")
	ErrMaxIterations = errors.New("bisection: iteration limit reached before convergence")
	ErrNotValley     = errors.New("quadfit: middle point is not below both endpoints")
	ErrDegenerateFit = errors.New("quadfit: degenerate quadratic fit, zero denominator")
)
