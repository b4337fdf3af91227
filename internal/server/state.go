package server

import (
	"context"
	"sync"
	"time"

	"idz2_opt/internal/optimizer"
)

// имена методов в RunParams.Method
const (
	MethodBracket   = "bracket"
	MethodBisection = "bisection"
	MethodQuadFit   = "quadfit"
)

// параметры запуска метода
type RunParams struct {
	Method string `json:"method"`
	Func   string `json:"func"`
	Deriv  string `json:"deriv"` // для bisection; пусто — численная производная

	// bracket
	X0     float64 `json:"x0"`
	Step   float64 `json:"s"`
	Growth float64 `json:"k"`

	// bisection: [a, b]; quadfit: a < b < c
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`

	Eps     float64 `json:"eps"`
	N       int     `json:"n"` // число итераций quadfit
	MaxIter int     `json:"maxIter"`
}

// итог запуска: найденный интервал (и средняя точка тройки для quadfit)
type RunResult struct {
	A  float64 `json:"a"`
	B  float64 `json:"b"`
	C  float64 `json:"c,omitempty"`
	X  float64 `json:"x"`
	FX float64 `json:"fx"`
}

// состояние одного запуска
type RunState struct {
	ID        string
	Params    RunParams
	CreatedAt time.Time

	Xs, Ys []float64 // сэмплы функции для графика

	Cancel context.CancelFunc

	mu       sync.Mutex // охраняет поля ниже: пишет горутина запуска, читают хендлеры
	LastIter optimizer.Iter
	Iters    []optimizer.Iter
	Result   RunResult
	Err      string
	Done     bool
}

func (rs *RunState) appendIter(it optimizer.Iter) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.LastIter = it
	rs.Iters = append(rs.Iters, it)
}

func (rs *RunState) snapshotIters() []optimizer.Iter {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return append([]optimizer.Iter(nil), rs.Iters...)
}

func (rs *RunState) finish(res RunResult, errMsg string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.Result = res
	rs.Err = errMsg
	rs.Done = errMsg == ""
}

func (rs *RunState) status() (RunResult, bool, string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.Result, rs.Done, rs.Err
}

var (
	runsMu sync.Mutex
	runs   = map[string]*RunState{}
)

func saveRun(rs *RunState) {
	runsMu.Lock()
	defer runsMu.Unlock()
	runs[rs.ID] = rs
}

func getRun(id string) *RunState {
	runsMu.Lock()
	defer runsMu.Unlock()
	return runs[id]
}
