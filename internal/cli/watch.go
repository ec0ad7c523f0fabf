package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MarquinhoCF/alwabp-solver/pkg/alwabp"
	"github.com/MarquinhoCF/alwabp-solver/pkg/observability"
	"github.com/MarquinhoCF/alwabp-solver/pkg/solver"
)

// =============================================================================
// Messages
// =============================================================================

type initialMsg struct{ cycleTime float64 }

type iterationMsg struct {
	iteration   int
	current     float64
	best        float64
	temperature float64
	strength    int
}

type improvementMsg struct {
	iteration int
	cycleTime float64
}

type restartMsg struct{ count int }

type solveDoneMsg struct{}

// =============================================================================
// Model
// =============================================================================

// watchModel is the bubbletea model for live search progress.
type watchModel struct {
	start        time.Time
	initial      float64
	iteration    int
	current      float64
	best         float64
	temperature  float64
	strength     int
	improvements int
	restarts     int
	done         bool
}

func newWatchModel() watchModel {
	return watchModel{start: time.Now()}
}

func (m watchModel) Init() tea.Cmd {
	return nil
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case initialMsg:
		m.initial = msg.cycleTime
		m.best = msg.cycleTime
		m.current = msg.cycleTime
	case iterationMsg:
		m.iteration = msg.iteration
		m.current = msg.current
		m.best = msg.best
		m.temperature = msg.temperature
		m.strength = msg.strength
	case improvementMsg:
		m.improvements++
		m.best = msg.cycleTime
	case restartMsg:
		m.restarts = msg.count
	case solveDoneMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m watchModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Iterated local search"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(time.Since(m.start).Round(time.Second).String()))
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString("  " + StyleDim.Render(fmt.Sprintf("%-14s", label)) + StyleValue.Render(value) + "\n")
	}
	row("iteration", fmt.Sprintf("%d", m.iteration))
	row("best", fmt.Sprintf("%g", m.best))
	row("current", fmt.Sprintf("%g", m.current))
	if m.initial > 0 {
		row("initial", fmt.Sprintf("%g", m.initial))
	}
	row("temperature", fmt.Sprintf("%.3f", m.temperature))
	row("strength", fmt.Sprintf("%d", m.strength))
	row("improvements", fmt.Sprintf("%d", m.improvements))
	if m.restarts > 0 {
		row("restarts", fmt.Sprintf("%d", m.restarts))
	}

	b.WriteString("\n" + StyleDim.Render("q to stop and keep the best solution"))
	return b.String()
}

// =============================================================================
// Hooks Bridge
// =============================================================================

// teaHooks forwards search events into the running bubbletea program.
type teaHooks struct {
	program *tea.Program
}

func (h *teaHooks) OnInitial(cycleTime float64) {
	h.program.Send(initialMsg{cycleTime: cycleTime})
}

func (h *teaHooks) OnIteration(iteration int, current, best, temperature float64, strength int) {
	h.program.Send(iterationMsg{
		iteration:   iteration,
		current:     current,
		best:        best,
		temperature: temperature,
		strength:    strength,
	})
}

func (h *teaHooks) OnImprovement(iteration int, cycleTime float64) {
	h.program.Send(improvementMsg{iteration: iteration, cycleTime: cycleTime})
}

func (h *teaHooks) OnStrengthIncrease(int, int) {}

func (h *teaHooks) OnRestart(_, restartCount int) {
	h.program.Send(restartMsg{count: restartCount})
}

// =============================================================================
// Runner
// =============================================================================

type solveOutcome struct {
	res solver.Result
	err error
}

// runWatch runs the search under a live progress display. Quitting the
// display cancels the search and keeps the best solution found so far.
func (c *CLI) runWatch(ctx context.Context, s *solver.Solver, inst *alwabp.Instance) (solver.Result, error) {
	solveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(newWatchModel(), tea.WithContext(ctx), tea.WithOutput(os.Stderr))
	observability.SetSearchHooks(&teaHooks{program: program})
	defer observability.Reset()

	outcome := make(chan solveOutcome, 1)
	go func() {
		res, err := s.Solve(solveCtx, inst)
		outcome <- solveOutcome{res: res, err: err}
		program.Send(solveDoneMsg{})
	}()

	_, runErr := program.Run()
	// Display gone, stop the search if it is still going.
	cancel()
	out := <-outcome

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return out.res, runErr
	}
	if out.err != nil {
		// The user stopped early; the best solution so far still stands.
		if errors.Is(out.err, context.Canceled) && out.res.Best != nil && ctx.Err() == nil {
			return out.res, nil
		}
		return out.res, out.err
	}
	return out.res, nil
}
