package server

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"rootfind/internal/expr"
	"rootfind/internal/rootfind"
	"rootfind/internal/runner"
	"rootfind/internal/sse"
)

// ограничения на объём работы одного запроса
const (
	maxScanCells   = 1_000_000
	maxSubinterval = 100_000
)

var validate = validator.New()

// prepare проверяет параметры, подставляет значения по умолчанию и разбирает выражения
func (s *Server) prepare(p *RunParams) (runner.Request, error) {
	if err := validate.Struct(p); err != nil {
		return runner.Request{}, fmt.Errorf("некорректные параметры: %w", err)
	}

	def := s.cfg.Solver
	if p.Tol <= 0 {
		p.Tol = def.Tol
	}
	if p.MaxIter <= 0 {
		p.MaxIter = def.MaxIter
	}
	if p.Step <= 0 {
		p.Step = def.Step
	}
	if p.SecantStep <= 0 {
		p.SecantStep = def.SecantStep
	}
	if p.Dx <= 0 {
		p.Dx = def.Dx
	}
	if p.Resolution <= 0 {
		p.Resolution = def.Resolution
	}

	width := p.B - p.A
	if width/p.Dx > maxScanCells {
		return runner.Request{}, fmt.Errorf("слишком мелкий шаг dx=%g для отрезка длины %g", p.Dx, width)
	}
	if width/p.Step > maxSubinterval || width/p.SecantStep > maxSubinterval {
		return runner.Request{}, fmt.Errorf("слишком много подотрезков для отрезка длины %g", width)
	}

	methods := rootfind.Methods()
	if len(p.Methods) > 0 {
		methods = nil
		seen := map[rootfind.Method]bool{}
		for _, name := range p.Methods {
			m, err := rootfind.ParseMethod(name)
			if err != nil {
				return runner.Request{}, err
			}
			if !seen[m] {
				seen[m] = true
				methods = append(methods, m)
			}
		}
	}

	f, err := expr.Parse(p.Func)
	if err != nil {
		return runner.Request{}, fmt.Errorf("ошибка в выражении функции: %w", err)
	}
	df, err := expr.Derivative(p.Deriv, f)
	if err != nil {
		return runner.Request{}, fmt.Errorf("ошибка в выражении производной: %w", err)
	}

	params := def.Params()
	params.Tol = p.Tol
	params.MaxIter = p.MaxIter
	params.Step = p.Step
	params.SecantStep = p.SecantStep
	params.Dx = p.Dx
	params.Resolution = p.Resolution

	return runner.Request{
		Func:       f,
		Derivative: df,
		Interval:   rootfind.Interval{Low: p.A, High: p.B},
		Params:     params,
		Methods:    methods,
	}, nil
}

func decodeParams(w http.ResponseWriter, r *http.Request) (RunParams, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "только POST", http.StatusMethodNotAllowed)
		return RunParams{}, false
	}
	var p RunParams
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "ошибка JSON: "+err.Error(), http.StatusBadRequest)
		return RunParams{}, false
	}
	return p, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// StartRun запускает выбранные методы асинхронно; итоги приходят через /stream
func (s *Server) StartRun(w http.ResponseWriter, r *http.Request) {
	p, ok := decodeParams(w, r)
	if !ok {
		return
	}
	req, err := s.prepare(&p)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// точки для графика считаются заранее
	points := expr.Sample(req.Func, req.Interval, s.cfg.Server.PlotPoints)

	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	rs := &RunState{
		ID:        id,
		Params:    p,
		CreatedAt: time.Now(),
		Cancel:    cancel,
	}
	for _, old := range s.runs.save(rs) {
		s.hub.Forget(old)
		s.log.Debug("run evicted", "id", old)
	}
	s.log.Info("run started", "id", id, "func", p.Func, "a", p.A, "b", p.B, "methods", len(req.Methods))

	go s.execute(ctx, rs, req)

	writeJSON(w, map[string]any{
		"id":     id,
		"points": points,
	})
}

func (s *Server) execute(ctx context.Context, rs *RunState, req runner.Request) {
	defer rs.Cancel()

	s.publish(rs.ID, sse.Event{Type: "start", Data: map[string]any{"id": rs.ID}})

	rep, err := s.runner.Run(ctx, req, func(o runner.Outcome) {
		rs.addOutcome(o)
		if o.Err != "" {
			s.publish(rs.ID, sse.Event{Type: "method_error", Data: map[string]any{
				"method": o.Method,
				"err":    o.Err,
			}})
			return
		}
		s.publish(rs.ID, sse.Event{Type: "method", Data: o})
	})

	// поток закрывается до пометки done: завершённый запуск больше не пишет в hub
	switch {
	case errors.Is(err, runner.ErrStopped):
		s.publish(rs.ID, sse.Event{Type: "stopped"})
		s.hub.Close(rs.ID)
		rs.finish(rep.Summary, "")
		s.log.Info("run stopped", "id", rs.ID, "completed", len(rep.Outcomes))
	case err != nil:
		s.publish(rs.ID, sse.Event{Type: "error", Data: map[string]any{"err": err.Error()}})
		s.hub.Close(rs.ID)
		rs.finish(nil, err.Error())
		s.log.Warn("run failed", "id", rs.ID, "error", err)
	default:
		s.publish(rs.ID, sse.Event{Type: "done", Data: map[string]any{"summary": rep.Summary}})
		s.hub.Close(rs.ID)
		rs.finish(rep.Summary, "")
		s.log.Info("run done", "id", rs.ID, "roots", len(rep.Summary))
	}
}

func (s *Server) publish(id string, ev sse.Event) {
	if err := s.hub.Publish(id, ev); err != nil {
		s.log.Error("publish event", "id", id, "type", ev.Type, "error", err)
	}
}

// StopRun — прерывание запуска между методами
func (s *Server) StopRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "только POST", http.StatusMethodNotAllowed)
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "требуется id", http.StatusBadRequest)
		return
	}

	rs := s.runs.get(id)
	if rs == nil {
		http.Error(w, "неизвестный id", http.StatusNotFound)
		return
	}

	if rs.Cancel != nil {
		rs.Cancel()
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExportCSV — экспорт журнала итераций одного метода в CSV
func (s *Server) ExportCSV(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "требуется id", http.StatusBadRequest)
		return
	}
	m, err := rootfind.ParseMethod(r.URL.Query().Get("method"))
	if err != nil {
		http.Error(w, "требуется method: "+err.Error(), http.StatusBadRequest)
		return
	}

	rs := s.runs.get(id)
	if rs == nil {
		http.Error(w, "неизвестный id", http.StatusNotFound)
		return
	}
	o, ok := rs.outcome(m)
	if !ok {
		http.Error(w, "метод не выполнялся в этом запуске", http.StatusNotFound)
		return
	}
	if o.Err != "" {
		http.Error(w, "метод завершился ошибкой: "+o.Err, http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=iterations_"+id+"_"+string(m)+".csv")

	cw := csv.NewWriter(w)
	defer cw.Flush()

	header, rows := o.Result.Table()
	_ = cw.Write(header)
	for _, row := range rows {
		_ = cw.Write(row)
	}
}

// Stream — SSE-стрим событий запуска
func (s *Server) Stream(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "требуется id", http.StatusBadRequest)
		return
	}
	if s.runs.get(id) == nil {
		http.Error(w, "неизвестный id", http.StatusNotFound)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	backlog, ch, cancel := s.hub.Subscribe(id)
	defer cancel()

	for _, msg := range backlog {
		writeEvent(w, msg)
	}
	flusher.Flush()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			writeEvent(w, msg)
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, msg string) {
	fmt.Fprintf(w, "event: msg\n")
	fmt.Fprintf(w, "data: %s\n\n", msg)
}

// Solve — синхронный запуск: все выбранные методы и сводка в одном ответе
func (s *Server) Solve(w http.ResponseWriter, r *http.Request) {
	p, ok := decodeParams(w, r)
	if !ok {
		return
	}
	req, err := s.prepare(&p)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rep, err := s.runner.Run(r.Context(), req, nil)
	if err != nil {
		http.Error(w, "ошибка при вычислении: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, rep)
}

// MethodInfo — описание метода для клиента
type MethodInfo struct {
	Name    rootfind.Method `json:"name"`
	Title   string          `json:"title"`
	Columns []string        `json:"columns"`
}

// ListMethods — список методов и параметры по умолчанию
func (s *Server) ListMethods(w http.ResponseWriter, r *http.Request) {
	var list []MethodInfo
	for _, m := range rootfind.Methods() {
		list = append(list, MethodInfo{Name: m, Title: m.Title(), Columns: rootfind.Columns(m)})
	}
	writeJSON(w, map[string]any{
		"methods":  list,
		"defaults": s.cfg.Solver.Params(),
	})
}

// Status — состояние запуска: завершён ли, какие методы готовы, сводка
func (s *Server) Status(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	rs := s.runs.get(id)
	if rs == nil {
		http.Error(w, "неизвестный id", http.StatusNotFound)
		return
	}
	writeJSON(w, rs.snapshot())
}
