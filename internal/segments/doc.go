// Package segments implements the sentence-boundary cut selection used to
// trim speech recordings to a bounded duration window.
//
// The package is pure: SelectCut picks the trim boundary for a single
// transcript, Synchronize reconciles the boundaries of a recording and its
// independently transcribed diarized counterpart so both outputs end at the
// same semantic point. All decisions align to segment ends; a spoken
// utterance is never split. Window violations are reported as warnings on the
// returned Cut rather than errors so batch processing can continue.
//
// Transcription, audio I/O, and file pairing live elsewhere; callers hand
// this package already-ordered segment sequences.
package segments
