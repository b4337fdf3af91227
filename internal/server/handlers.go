package server

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"idz2_opt/internal/chart"
	"idz2_opt/internal/optimizer"
	"idz2_opt/internal/sse"

	"github.com/google/uuid"
)

var hub = sse.NewHub()

// StartRun запускает новый процесс поиска
func StartRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "только POST", http.StatusMethodNotAllowed)
		return
	}

	var p RunParams
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "ошибка JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	applyDefaults(&p)
	if msg := validateParams(p); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	f, err := optimizer.NewExprFunc(p.Func)
	if err != nil {
		http.Error(w, "ошибка в выражении функции: "+err.Error(), http.StatusBadRequest)
		return
	}

	// производная для бисекции: явная или численная
	var g optimizer.Func
	if p.Method == MethodBisection {
		g, err = optimizer.NewDerivFunc(f, p.Deriv)
		if err != nil {
			http.Error(w, "ошибка в выражении производной: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	// предварительно считаем значения функции для графика
	lo, hi := sampleRange(p)
	xs, ys := sampleCurve(f, lo, hi)

	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	rs := &RunState{
		ID:        id,
		Params:    p,
		CreatedAt: time.Now(),
		Cancel:    cancel,
		Xs:        xs,
		Ys:        ys,
	}
	saveRun(rs)

	// асинхронный запуск метода
	go runMethod(ctx, rs, f, g)

	resp := map[string]any{
		"id": id,
		"xs": xs,
		"ys": ys,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func applyDefaults(p *RunParams) {
	if p.MaxIter <= 0 {
		p.MaxIter = 200
	}
	if p.Eps <= 0 {
		p.Eps = 1e-5
	}
	if p.Step == 0 {
		p.Step = 0.1
	}
	if p.Growth <= 1 {
		p.Growth = 2
	}
	if p.N <= 0 {
		p.N = 10
	}
}

func validateParams(p RunParams) string {
	if p.Func == "" {
		return "требуется выражение функции"
	}
	switch p.Method {
	case MethodBracket:
		// шаг и коэффициент роста уже выставлены по умолчанию
	case MethodBisection:
		if !(p.A < p.B) {
			return "требуется a < b"
		}
	case MethodQuadFit:
		if !(p.A < p.B && p.B < p.C) {
			return "требуется a < b < c"
		}
	default:
		return "неизвестный метод: " + p.Method
	}
	return ""
}

// диапазон сэмплирования функции для графика
func sampleRange(p RunParams) (float64, float64) {
	switch p.Method {
	case MethodBracket:
		half := 50 * math.Abs(p.Step)
		return p.X0 - half, p.X0 + half
	case MethodQuadFit:
		return p.A, p.C
	default:
		return p.A, p.B
	}
}

func sampleCurve(f optimizer.Func, lo, hi float64) ([]float64, []float64) {
	const n = 400
	xs := make([]float64, n)
	ys := make([]float64, n)
	h := (hi - lo) / float64(n-1)
	for i := 0; i < n; i++ {
		x := lo + float64(i)*h
		y, err := f.Eval(x)
		if err != nil || math.IsNaN(y) || math.IsInf(y, 0) {
			y = math.NaN()
		}
		xs[i], ys[i] = x, y
	}
	return xs, ys
}

func runMethod(ctx context.Context, rs *RunState, f, g optimizer.Func) {
	id := rs.ID
	p := rs.Params
	defer hub.Close(id)

	startMsg, _ := json.Marshal(map[string]any{
		"type":   "start",
		"id":     id,
		"method": p.Method,
	})
	hub.Publish(id, string(startMsg))

	onIter := func(it optimizer.Iter) error {
		select {
		case <-ctx.Done():
			return optimizer.ErrStopped
		default:
		}

		rs.appendIter(it)

		msg, _ := json.Marshal(map[string]any{
			"type": "iter",
			"iter": it,
		})
		hub.Publish(id, string(msg))
		return nil
	}

	var res RunResult
	var err error
	switch p.Method {
	case MethodBracket:
		var a, b float64
		a, b, err = optimizer.BracketMinimum(f, p.X0, p.Step, p.Growth, p.MaxIter, onIter)
		if err == nil {
			x := (a + b) / 2
			fx, _ := f.Eval(x)
			res = RunResult{A: a, B: b, X: x, FX: fx}
		}
	case MethodBisection:
		var a, b float64
		a, b, err = optimizer.Bisection(g, p.A, p.B, p.Eps, p.MaxIter, onIter)
		if err == nil {
			x := (a + b) / 2
			fx, _ := f.Eval(x)
			res = RunResult{A: a, B: b, X: x, FX: fx}
		}
	case MethodQuadFit:
		var a, b, c float64
		a, b, c, err = optimizer.QuadraticFitSearch(f, p.A, p.B, p.C, p.N, onIter)
		if err == nil {
			fx, _ := f.Eval(b)
			res = RunResult{A: a, B: b, C: c, X: b, FX: fx}
		}
	}

	if err != nil {
		if errors.Is(err, optimizer.ErrStopped) || errors.Is(err, context.Canceled) {
			stopMsg, _ := json.Marshal(map[string]any{"type": "stopped"})
			hub.Publish(id, string(stopMsg))
			return
		}

		rs.finish(RunResult{}, "ошибка при вычислении: "+err.Error())
		errMsg, _ := json.Marshal(map[string]any{
			"type": "error",
			"err":  "ошибка при вычислении: " + err.Error(),
		})
		hub.Publish(id, string(errMsg))
		return
	}

	rs.finish(res, "")
	doneMsg, _ := json.Marshal(map[string]any{
		"type":   "done",
		"result": res,
	})
	hub.Publish(id, string(doneMsg))
}

// StopRun — прерывание процесса поиска
func StopRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "только POST", http.StatusMethodNotAllowed)
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "требуется id", http.StatusBadRequest)
		return
	}

	rs := getRun(id)
	if rs == nil {
		http.Error(w, "неизвестный id", http.StatusNotFound)
		return
	}

	if rs.Cancel != nil {
		rs.Cancel()
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExportCSV — экспорт итераций в CSV
func ExportCSV(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "требуется id", http.StatusBadRequest)
		return
	}

	rs := getRun(id)
	if rs == nil {
		http.Error(w, "неизвестный id", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=iterations_"+id+".csv")

	cw := csv.NewWriter(w)
	defer cw.Flush()

	_ = cw.Write([]string{"k", "a", "b", "c", "x", "fx", "len"})

	for _, it := range rs.snapshotIters() {
		_ = cw.Write([]string{
			strconv.Itoa(it.K),
			fmtFloat(it.A),
			fmtFloat(it.B),
			fmtFloat(it.C),
			fmtFloat(it.X),
			fmtFloat(it.FX),
			fmtFloat(it.Len),
		})
	}
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 16, 64)
}

// PlotPNG — график функции с маркерами найденного интервала
func PlotPNG(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "требуется id", http.StatusBadRequest)
		return
	}

	rs := getRun(id)
	if rs == nil {
		http.Error(w, "неизвестный id", http.StatusNotFound)
		return
	}

	res, done, _ := rs.status()
	var marks []float64
	if done {
		marks = append(marks, res.A, res.B)
		if rs.Params.Method == MethodQuadFit {
			marks = append(marks, res.C)
		}
	}

	png, err := chart.Render("f(x) = "+rs.Params.Func, rs.Xs, rs.Ys, marks)
	if err != nil {
		http.Error(w, "ошибка построения графика: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// Stream — SSE-стрим итераций
func Stream(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "требуется id", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	ch, cancel := hub.Subscribe(id)
	defer cancel()

	ctx := r.Context()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				// запуск завершён, hub закрыл канал
				return
			}
			fmt.Fprintf(w, "event: msg\n")
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
