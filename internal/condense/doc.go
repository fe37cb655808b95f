// Package condense derives a dialogue-only edit plan from subtitle events.
//
// The pipeline normalizes timed events into intervals, drops lines matching
// skip patterns, removes or clips intervals inside skipped chapters, pads
// and merges the survivors into a disjoint segment timeline, selects the
// best audio and subtitle tracks, and assembles an EncodePlan for the
// encoder to execute. Every stage is a pure transformation over immutable
// inputs; the package never touches the filesystem or spawns processes.
package condense
