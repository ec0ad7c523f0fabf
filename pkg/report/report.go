package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/MarquinhoCF/alwabp-solver/pkg/solver"
)

// StationSummary describes one station of a solved assignment.
type StationSummary struct {
	Station     int     `json:"station"`
	Worker      int     `json:"worker"`
	Tasks       []int   `json:"tasks"`
	Load        float64 `json:"load"`
	Idle        float64 `json:"idle"`
	Utilization float64 `json:"utilization"`
}

// Summary is the reportable view of a solver run: the final assignment
// broken down by station plus aggregate search statistics.
type Summary struct {
	CycleTime     float64          `json:"cycle_time"`
	Stations      []StationSummary `json:"stations"`
	BalanceIndex  float64          `json:"balance_index"`
	Iterations    int              `json:"iterations"`
	Improvements  int              `json:"improvements"`
	AcceptedWorse int              `json:"accepted_worse"`
	Restarts      int              `json:"restarts"`
	Stop          string           `json:"stop"`
	Duration      time.Duration    `json:"duration"`
}

// Build derives a [Summary] from a solver result.
//
// Utilization is each station's load divided by the cycle time. The
// balance index is the mean utilization across stations: 1.0 means a
// perfectly level line, lower values mean idle capacity.
func Build(res solver.Result) Summary {
	sol := res.Best
	inst := sol.Instance()

	stations := make([]StationSummary, inst.Stations())
	var utilSum float64
	for st := range stations {
		load := sol.StationLoad(st)
		util := 0.0
		if res.CycleTime > 0 {
			util = load / res.CycleTime
		}
		tasks := sol.StationTasks(st)
		sort.Ints(tasks)
		stations[st] = StationSummary{
			Station:     st,
			Worker:      sol.StationWorker(st),
			Tasks:       tasks,
			Load:        load,
			Idle:        res.CycleTime - load,
			Utilization: util,
		}
		utilSum += util
	}

	balance := 0.0
	if len(stations) > 0 {
		balance = utilSum / float64(len(stations))
	}

	return Summary{
		CycleTime:     res.CycleTime,
		Stations:      stations,
		BalanceIndex:  balance,
		Iterations:    res.Iterations,
		Improvements:  res.Improvements,
		AcceptedWorse: res.AcceptedWorse,
		Restarts:      res.Restarts,
		Stop:          string(res.Stop),
		Duration:      res.Duration,
	}
}

// barWidth is the character width of utilization bars in text reports.
const barWidth = 20

// WriteText renders the summary as a plain-text report.
//
// The report ends with a machine-greppable "CYCLE_TIME:" line so shell
// pipelines can extract the objective without parsing the whole output.
func (s Summary) WriteText(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Assignment (%d stations)\n", len(s.Stations))
	for _, st := range s.Stations {
		fmt.Fprintf(&b, "  station %d  worker %d  load %7.2f  idle %6.2f  %s %5.1f%%  tasks %s\n",
			st.Station, st.Worker, st.Load, st.Idle, bar(st.Utilization), st.Utilization*100, taskList(st.Tasks))
	}

	fmt.Fprintf(&b, "\nBalance index:  %.3f\n", s.BalanceIndex)
	fmt.Fprintf(&b, "Iterations:     %d (%d improvements, %d accepted worse)\n",
		s.Iterations, s.Improvements, s.AcceptedWorse)
	if s.Restarts > 0 {
		fmt.Fprintf(&b, "Restarts:       %d\n", s.Restarts)
	}
	fmt.Fprintf(&b, "Stopped:        %s after %s\n", s.Stop, s.Duration.Round(time.Millisecond))
	fmt.Fprintf(&b, "\nCYCLE_TIME: %g\n", s.CycleTime)

	_, err := io.WriteString(w, b.String())
	return err
}

// bar renders a fixed-width utilization bar.
func bar(util float64) string {
	if math.IsNaN(util) || util < 0 {
		util = 0
	}
	if util > 1 {
		util = 1
	}
	filled := int(math.Round(util * barWidth))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
}

// taskList formats task indices as a compact comma-separated list.
func taskList(tasks []int) string {
	if len(tasks) == 0 {
		return "-"
	}
	parts := make([]string, len(tasks))
	for i, t := range tasks {
		parts[i] = fmt.Sprintf("%d", t)
	}
	return strings.Join(parts, ",")
}
