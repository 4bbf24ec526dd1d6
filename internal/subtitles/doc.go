// Package subtitles converts transcription segments into subtitle text.
//
// It owns the fixed-width HH:MM:SS,mmm timestamp formatting shared by the
// SRT and WebVTT dialects, the per-format renderers, and small validation
// helpers used to sanity-check written subtitle files. Everything here is
// pure string work; file placement lives in the output package.
package subtitles
