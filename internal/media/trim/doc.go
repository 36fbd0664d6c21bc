// Package trim cuts audio files at a chosen boundary using ffmpeg.
//
// Cuts always keep the head of the recording: the output runs from zero to
// the requested cut point. Stream copy is used so the operation is fast and
// lossless for the common case; ffmpeg re-encodes only when the container
// requires it.
package trim
