// Package subtitles parses and writes timed-text subtitle files.
//
// Parsers for SRT, WebVTT, and ASS/SSA produce ordered Event sequences in
// seconds. PlainText strips override tags and markup so downstream
// filtering operates on what the viewer actually reads. Writers emit SRT
// and LRC output for condensed timelines.
package subtitles
