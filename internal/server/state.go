package server

import (
	"context"
	"sync"
	"time"

	"rootfind/internal/rootfind"
	"rootfind/internal/runner"
)

// RunParams — параметры запуска методов
type RunParams struct {
	Func       string   `json:"func" validate:"required"`
	Deriv      string   `json:"deriv"`
	A          float64  `json:"a"`
	B          float64  `json:"b" validate:"gtfield=A"`
	Methods    []string `json:"methods" validate:"omitempty,dive,required"`
	Tol        float64  `json:"tol" validate:"gte=0"`
	MaxIter    int      `json:"maxIter" validate:"gte=0,lte=100000"`
	Step       float64  `json:"step" validate:"gte=0"`
	SecantStep float64  `json:"secantStep" validate:"gte=0"`
	Dx         float64  `json:"dx" validate:"gte=0"`
	Resolution int      `json:"resolution" validate:"gte=0,lte=1000000"`
}

// RunState — состояние одного запуска
type RunState struct {
	ID        string
	Params    RunParams
	CreatedAt time.Time
	Cancel    context.CancelFunc

	mu       sync.Mutex
	outcomes map[rootfind.Method]runner.Outcome
	summary  []runner.Cluster
	err      string
	done     bool
}

func (rs *RunState) addOutcome(o runner.Outcome) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.outcomes == nil {
		rs.outcomes = map[rootfind.Method]runner.Outcome{}
	}
	rs.outcomes[o.Method] = o
}

func (rs *RunState) finish(summary []runner.Cluster, errMsg string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.summary = summary
	rs.err = errMsg
	rs.done = true
}

func (rs *RunState) outcome(m rootfind.Method) (runner.Outcome, bool) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	o, ok := rs.outcomes[m]
	return o, ok
}

// StatusView — снимок состояния запуска для /status
type StatusView struct {
	ID        string            `json:"id"`
	Done      bool              `json:"done"`
	Err       string            `json:"err,omitempty"`
	Completed []rootfind.Method `json:"completed"`
	Summary   []runner.Cluster  `json:"summary,omitempty"`
}

func (rs *RunState) snapshot() StatusView {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	v := StatusView{ID: rs.ID, Done: rs.done, Err: rs.err, Summary: rs.summary, Completed: []rootfind.Method{}}
	for _, m := range rootfind.Methods() {
		if _, ok := rs.outcomes[m]; ok {
			v.Completed = append(v.Completed, m)
		}
	}
	return v
}

// runStore — запуски в памяти процесса, между перезапусками не сохраняются.
// Хранится не больше limit запусков; лишними считаются самые старые завершённые.
type runStore struct {
	mu    sync.Mutex
	limit int
	order []string
	runs  map[string]*RunState
}

func newRunStore(limit int) *runStore {
	if limit < 1 {
		limit = 1
	}
	return &runStore{limit: limit, runs: map[string]*RunState{}}
}

func (rs *RunState) isDone() bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.done
}

// save добавляет запуск и возвращает id вытесненных
func (s *runStore) save(rs *RunState) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[rs.ID] = rs
	s.order = append(s.order, rs.ID)

	var evicted []string
	kept := s.order[:0]
	excess := len(s.order) - s.limit
	for _, id := range s.order {
		if excess > 0 && s.runs[id].isDone() {
			delete(s.runs, id)
			evicted = append(evicted, id)
			excess--
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
	return evicted
}

func (s *runStore) get(id string) *RunState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs[id]
}
