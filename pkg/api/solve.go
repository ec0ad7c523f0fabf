package api

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/MarquinhoCF/alwabp-solver/pkg/alwabp"
	"github.com/MarquinhoCF/alwabp-solver/pkg/cache"
	apperrors "github.com/MarquinhoCF/alwabp-solver/pkg/errors"
	"github.com/MarquinhoCF/alwabp-solver/pkg/report"
	"github.com/MarquinhoCF/alwabp-solver/pkg/solver"
	"github.com/MarquinhoCF/alwabp-solver/pkg/store"
)

// solveCacheTTL is how long solve responses stay cached.
const solveCacheTTL = 24 * time.Hour

// solveRequest is the JSON body of POST /api/v1/solve.
//
// Times is the task-by-worker duration matrix; a null entry means the
// worker cannot perform the task. Precedence edges are 0-based task
// indices.
type solveRequest struct {
	Times      [][]*float64 `json:"times"`
	Precedence []edgeJSON   `json:"precedence"`
	Seed       *int64       `json:"seed"`
	Config     *configJSON  `json:"config"`
	NoCache    bool         `json:"no_cache"`
}

type edgeJSON struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// configJSON overrides individual solver options; absent fields keep
// their defaults.
type configJSON struct {
	MaxIterations     *int     `json:"max_iterations"`
	MaxTimeMS         *int64   `json:"max_time_ms"`
	OptimalValue      *float64 `json:"optimal_value"`
	OptimalTolerance  *float64 `json:"optimal_tolerance"`
	AdaptiveTimeout   *bool    `json:"adaptive_timeout"`
	MinImprovement    *int     `json:"min_improvement"`
	MaxStagnation     *int     `json:"max_stagnation"`
	CoolingRate       *float64 `json:"cooling_rate"`
	InitialTempFactor *float64 `json:"initial_temp_factor"`
}

type solveResponse struct {
	RunID   string         `json:"run_id"`
	Cached  bool           `json:"cached"`
	Summary report.Summary `json:"summary"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "invalid request body"))
		return
	}

	inst, err := req.instance()
	if err != nil {
		writeError(w, err)
		return
	}

	cfg, err := req.config(s.solveTimeout)
	if err != nil {
		writeError(w, err)
		return
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}

	key := s.solveKey(req, cfg, seed)
	if !req.NoCache {
		if data, hit, err := s.cache.Get(r.Context(), key); err == nil && hit {
			var resp solveResponse
			if json.Unmarshal(data, &resp) == nil {
				resp.Cached = true
				writeJSON(w, http.StatusOK, resp)
				return
			}
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.solveTimeout)
	defer cancel()

	ils, err := solver.New(cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "invalid solver configuration"))
		return
	}
	res, err := ils.Solve(ctx, inst)
	if err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInfeasibleInstance, err, "search failed"))
		return
	}
	if res.Best == nil || !res.Best.IsFeasible() {
		writeError(w, apperrors.New(apperrors.ErrCodeInfeasibleSolution, "search ended without a feasible solution"))
		return
	}

	summary := report.Build(res)
	run := store.NewRun("api", instanceHash(req), seed, summary)
	if err := s.store.Insert(r.Context(), run); err != nil {
		s.logger.Warn("archive run failed", "err", err)
	}

	resp := solveResponse{RunID: run.ID, Summary: summary}
	if !req.NoCache {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(r.Context(), key, data, solveCacheTTL); err != nil {
				s.logger.Warn("cache solve response failed", "err", err)
			}
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// instance builds and validates the domain instance from the request.
func (r solveRequest) instance() (*alwabp.Instance, error) {
	if len(r.Times) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInstance, "times matrix is required")
	}

	times := make([][]float64, len(r.Times))
	for t, row := range r.Times {
		times[t] = make([]float64, len(row))
		for w, d := range row {
			if d == nil {
				times[t][w] = alwabp.Incapable
			} else {
				times[t][w] = *d
			}
		}
	}

	edges := make([]alwabp.Edge, len(r.Precedence))
	for i, e := range r.Precedence {
		edges[i] = alwabp.Edge{From: e.From, To: e.To}
	}

	inst, err := alwabp.New(times, edges)
	switch {
	case errors.Is(err, alwabp.ErrCyclicPrecedence):
		return nil, apperrors.Wrap(apperrors.ErrCodeCyclicPrecedence, err, "precedence relation contains a cycle")
	case errors.Is(err, alwabp.ErrNoCapableWorker):
		return nil, apperrors.Wrap(apperrors.ErrCodeInfeasibleInstance, err, "a task has no capable worker")
	case err != nil:
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInstance, err, "invalid instance")
	}
	return inst, nil
}

// config resolves the request overrides against the defaults and clamps
// the time budget to the server cap.
func (r solveRequest) config(maxBudget time.Duration) (solver.Config, error) {
	cfg := solver.DefaultConfig()
	if c := r.Config; c != nil {
		if c.MaxIterations != nil {
			cfg.MaxIterations = *c.MaxIterations
		}
		if c.MaxTimeMS != nil {
			cfg.MaxTime = time.Duration(*c.MaxTimeMS) * time.Millisecond
		}
		if c.OptimalValue != nil {
			cfg.OptimalValue = *c.OptimalValue
		}
		if c.OptimalTolerance != nil {
			cfg.OptimalTolerance = *c.OptimalTolerance
		}
		if c.AdaptiveTimeout != nil {
			cfg.AdaptiveTimeout = *c.AdaptiveTimeout
		}
		if c.MinImprovement != nil {
			cfg.MinImprovement = *c.MinImprovement
		}
		if c.MaxStagnation != nil {
			cfg.MaxStagnation = *c.MaxStagnation
		}
		if c.CoolingRate != nil {
			cfg.CoolingRate = *c.CoolingRate
		}
		if c.InitialTempFactor != nil {
			cfg.InitialTempFactor = *c.InitialTempFactor
		}
	}
	if cfg.MaxTime > maxBudget {
		cfg.MaxTime = maxBudget
	}
	if err := cfg.Validate(); err != nil {
		return solver.Config{}, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "invalid config")
	}
	return cfg, nil
}

// solveKey derives the cache key from the instance contents, the
// resolved configuration, and the seed.
func (s *Server) solveKey(req solveRequest, cfg solver.Config, seed int64) string {
	cfgData, _ := json.Marshal(struct {
		Cfg  solver.Config
		Seed int64
	}{cfg, seed})
	return s.keyer.SolutionKey(instanceHash(req), cache.Hash(cfgData))
}

func instanceHash(req solveRequest) string {
	data, _ := json.Marshal(struct {
		Times      [][]*float64
		Precedence []edgeJSON
	}{req.Times, req.Precedence})
	return cache.Hash(data)
}
