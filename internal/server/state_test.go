package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rootfind/internal/config"
)

func TestRunStoreEvictsOldestFinished(t *testing.T) {
	store := newRunStore(2)
	finished := func(id string) *RunState {
		rs := &RunState{ID: id}
		rs.finish(nil, "")
		return rs
	}

	assert.Empty(t, store.save(finished("r1")))
	assert.Empty(t, store.save(&RunState{ID: "r2"}))
	assert.Equal(t, []string{"r1"}, store.save(&RunState{ID: "r3"}))
	assert.Nil(t, store.get("r1"))

	// незавершённые запуски не вытесняются даже сверх предела
	assert.Empty(t, store.save(&RunState{ID: "r4"}))
	assert.NotNil(t, store.get("r2"))

	store.get("r2").finish(nil, "")
	assert.Equal(t, []string{"r2"}, store.save(&RunState{ID: "r5"}))
	for _, id := range []string{"r3", "r4", "r5"} {
		assert.NotNil(t, store.get(id), id)
	}
}

func TestStartRunForgetsEvictedRuns(t *testing.T) {
	cfg := config.Default()
	cfg.Server.StaticDir = t.TempDir()
	cfg.Server.MaxRuns = 1
	srv := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h := srv.NewRouter()

	start := func() string {
		w := doJSON(t, h, http.MethodPost, "/start", RunParams{
			Func: "x**2 - 4", A: -5, B: 5, Methods: []string{"bisection"},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp.ID
	}

	first := start()
	waitDone(t, h, first)
	backlog, _, cancel := srv.hub.Subscribe(first)
	cancel()
	require.NotEmpty(t, backlog)

	second := start()
	waitDone(t, h, second)

	w := doJSON(t, h, http.MethodGet, "/status?id="+first, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	backlog, _, cancel = srv.hub.Subscribe(first)
	cancel()
	assert.Empty(t, backlog)
}
