// Package subtitles contains the segment model shared by the pipeline and
// the SRT/WebVTT serialization it ends in: timestamp formatting, subtitle
// file writing, and lightweight validation of emitted files.
package subtitles
