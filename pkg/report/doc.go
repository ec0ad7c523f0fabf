// Package report turns solver results into human- and machine-readable
// output.
//
// [Build] derives a [Summary] from a solved assignment: per-station
// loads, utilization against the cycle time, and aggregate balance
// statistics. [Summary.WriteText] renders a plain-text report suitable
// for terminals and log files; [WriteJSON] and [ReadJSON] provide a
// round-trippable JSON encoding used by the HTTP API and the batch
// runner.
package report
