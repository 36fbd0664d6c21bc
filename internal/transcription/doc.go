// Package transcription runs WhisperX over both recordings of a pair and
// records the resulting transcript locations on the queue item.
//
// Each recording is first converted to the mono 16kHz WAV input WhisperX
// expects, then transcribed into the item's work directory. The trimming
// stage consumes the JSON transcripts to choose cut boundaries.
package transcription
