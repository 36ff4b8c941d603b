package solver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func remoteTestModel() *Model {
	return &Model{
		Name:     "remote_test",
		Maximize: true,
		Vars: []Variable{
			{Name: "x", Cost: 3, Lower: 0, Upper: Inf()},
			{Name: "y", Cost: 5, Lower: 0, Upper: 40},
		},
		Rows: []Row{leRow("cap", 100, Coef{Col: 0, Val: 1}, Coef{Col: 1, Val: 2})},
	}
}

func TestRemoteSolver_Optimal(t *testing.T) {
	var received remoteModel
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/solve", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Outcome{
			Status:    StatusOptimal,
			Objective: 300,
			Values:    []float64{100, 0},
		})
	}))
	defer srv.Close()

	s, err := NewRemoteSolver(srv.URL, 5*time.Second)
	require.NoError(t, err)

	out, err := s.Solve(context.Background(), remoteTestModel())
	require.NoError(t, err)
	assert.Equal(t, StatusOptimal, out.Status)
	assert.InDelta(t, 300, out.Objective, 1e-9)
	// Row activity is reconstructed locally when the service omits it.
	require.Len(t, out.RowActivity, 1)
	assert.InDelta(t, 100, out.RowActivity[0], 1e-9)

	// Infinite bounds travel as nulls.
	require.Len(t, received.Vars, 2)
	assert.Nil(t, received.Vars[0].Upper)
	require.NotNil(t, received.Vars[1].Upper)
	assert.Equal(t, 40.0, *received.Vars[1].Upper)
}

func TestRemoteSolver_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": "solver pool exhausted", "code": 502})
	}))
	defer srv.Close()

	s, err := NewRemoteSolver(srv.URL, 5*time.Second)
	require.NoError(t, err)

	_, err = s.Solve(context.Background(), remoteTestModel())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "solver pool exhausted")
}

func TestRemoteSolver_UnknownStatusDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "half-solved"})
	}))
	defer srv.Close()

	s, err := NewRemoteSolver(srv.URL, 5*time.Second)
	require.NoError(t, err)

	out, err := s.Solve(context.Background(), remoteTestModel())
	require.NoError(t, err)
	assert.Equal(t, StatusOther, out.Status)
	assert.Equal(t, "half-solved", out.RawStatus)
}

func TestRemoteSolver_ValueCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Outcome{Status: StatusOptimal, Values: []float64{1}})
	}))
	defer srv.Close()

	s, err := NewRemoteSolver(srv.URL, 5*time.Second)
	require.NoError(t, err)

	_, err = s.Solve(context.Background(), remoteTestModel())
	require.Error(t, err)
}

func TestRemoteSolver_RequiresBaseURL(t *testing.T) {
	_, err := NewRemoteSolver("", time.Second)
	require.Error(t, err)
}
