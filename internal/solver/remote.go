package solver

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// RemoteSolver delegates the solve to an external solver service over HTTP.
// The service receives the model as JSON on POST {base}/solve and answers
// with an Outcome in the same schema this package defines.
type RemoteSolver struct {
	httpClient *resty.Client
}

// remoteError is the error payload a solver service returns on failure.
type remoteError struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// The wire form encodes missing bounds as null instead of ±Inf, which JSON
// cannot represent.
type remoteVariable struct {
	Name  string   `json:"name"`
	Cost  float64  `json:"cost"`
	Lower *float64 `json:"lower"`
	Upper *float64 `json:"upper"`
}

type remoteRow struct {
	Name  string   `json:"name"`
	Coefs []Coef   `json:"coefs"`
	RHS   *float64 `json:"rhs"`
}

type remoteModel struct {
	Name     string           `json:"name"`
	Maximize bool             `json:"maximize"`
	Vars     []remoteVariable `json:"vars"`
	Rows     []remoteRow      `json:"rows"`
}

func finiteOrNil(v float64) *float64 {
	if math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func toWire(m *Model) *remoteModel {
	wire := &remoteModel{Name: m.Name, Maximize: m.Maximize}
	for _, v := range m.Vars {
		wire.Vars = append(wire.Vars, remoteVariable{
			Name:  v.Name,
			Cost:  v.Cost,
			Lower: finiteOrNil(v.Lower),
			Upper: finiteOrNil(v.Upper),
		})
	}
	for _, row := range m.Rows {
		wire.Rows = append(wire.Rows, remoteRow{
			Name:  row.Name,
			Coefs: row.Coefs,
			RHS:   finiteOrNil(row.RHS),
		})
	}
	return wire
}

// NewRemoteSolver builds the HTTP-backed solver. The timeout bounds one
// round trip including the remote solve itself.
func NewRemoteSolver(baseURL string, timeout time.Duration) (Solver, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("remote solver: base URL must be provided")
	}

	client := resty.New()
	client.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &RemoteSolver{httpClient: client}, nil
}

// Name identifies the backend in logs and results.
func (s *RemoteSolver) Name() string { return "remote" }

// Solve posts the model and decodes the remote outcome. Transport failures
// and non-2xx answers surface as errors; the caller maps them to an error
// result, never retries.
func (s *RemoteSolver) Solve(ctx context.Context, m *Model) (*Outcome, error) {
	outcome := new(Outcome)
	apiErr := new(remoteError)

	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetBody(toWire(m)).
		SetResult(outcome).
		SetError(apiErr).
		Post("/solve")
	if err != nil {
		return nil, fmt.Errorf("remote solve: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Error
		if message == "" {
			message = resp.Status()
		}
		return nil, fmt.Errorf("remote solver error: code=%d, message=%s", resp.StatusCode(), message)
	}

	switch outcome.Status {
	case StatusOptimal, StatusInfeasible, StatusUnbounded, StatusOther:
	default:
		// An unrecognized remote status degrades to "other" instead of
		// leaking a new status value into the core.
		outcome.RawStatus = string(outcome.Status)
		outcome.Status = StatusOther
	}

	if outcome.Status == StatusOptimal {
		if len(outcome.Values) != len(m.Vars) {
			return nil, fmt.Errorf("remote solver returned %d values for %d variables", len(outcome.Values), len(m.Vars))
		}
		if len(outcome.RowActivity) != len(m.Rows) {
			outcome.RowActivity = m.Activity(outcome.Values)
		}
	}

	return outcome, nil
}
