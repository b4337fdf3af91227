package optimizer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"
)

// Func — интерфейс для абстрактной функции f(x)
type Func interface {
	Eval(x float64) (float64, error)
}

// exprFunc — реализация Func на основе govaluate
type exprFunc struct {
	expr   *govaluate.EvaluableExpression
	params map[string]interface{}
}

var exprHelpers = map[string]govaluate.ExpressionFunction{
	"sin":  func(args ...interface{}) (interface{}, error) { return math.Sin(toFloat(args[0])), nil },
	"cos":  func(args ...interface{}) (interface{}, error) { return math.Cos(toFloat(args[0])), nil },
	"tan":  func(args ...interface{}) (interface{}, error) { return math.Tan(toFloat(args[0])), nil },
	"exp":  func(args ...interface{}) (interface{}, error) { return math.Exp(toFloat(args[0])), nil },
	"log":  func(args ...interface{}) (interface{}, error) { return math.Log(toFloat(args[0])), nil },
	"sqrt": func(args ...interface{}) (interface{}, error) { return math.Sqrt(toFloat(args[0])), nil },
	"abs":  func(args ...interface{}) (interface{}, error) { return math.Abs(toFloat(args[0])), nil },
	"pow": func(args ...interface{}) (interface{}, error) {
		return math.Pow(toFloat(args[0]), toFloat(args[1])), nil
	},
}

// NewExprFunc создаёт вычислимую функцию по строке f(x)
func NewExprFunc(expr string) (Func, error) {
	// нормализуем запятые в десятичной записи
	expr = strings.ReplaceAll(expr, ",", ".")

	parsed, err := govaluate.NewEvaluableExpressionWithFunctions(expr, exprHelpers)
	if err != nil {
		return nil, err
	}

	return &exprFunc{
		expr:   parsed,
		params: map[string]interface{}{"x": 0.0},
	}, nil
}

func (f *exprFunc) Eval(x float64) (float64, error) {
	f.params["x"] = x
	v, err := f.expr.Evaluate(f.params)
	if err != nil {
		return math.NaN(), err
	}
	return toNumber(v)
}

// NewDerivFunc — производная g(x) для бисекции: либо явное выражение,
// либо центральная разность по f, если выражение не задано.
func NewDerivFunc(f Func, expr string) (Func, error) {
	if strings.TrimSpace(expr) != "" {
		return NewExprFunc(expr)
	}
	return diffFunc{f: f}, nil
}

// diffFunc — численная производная центральной разностью
type diffFunc struct {
	f Func
}

func (d diffFunc) Eval(x float64) (float64, error) {
	h := 1e-6 * math.Max(1, math.Abs(x))
	yr, err := d.f.Eval(x + h)
	if err != nil {
		return math.NaN(), err
	}
	yl, err := d.f.Eval(x - h)
	if err != nil {
		return math.NaN(), err
	}
	return (yr - yl) / (2 * h), nil
}

func toNumber(v interface{}) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case string:
		parsed, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return math.NaN(), err
		}
		return parsed, nil
	default:
		return math.NaN(), fmt.Errorf("выражение не вернуло число: %T", v)
	}
}

func toFloat(v interface{}) float64 {
	f, err := toNumber(v)
	if err != nil {
		return math.NaN()
	}
	return f
}
