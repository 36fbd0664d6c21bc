// Package whisperx provides WhisperX transcription utilities.
//
// This package handles:
//   - Audio conversion to the mono 16kHz WAV input WhisperX expects
//   - WhisperX transcription invocation via uvx
//   - Timestamped segment extraction from the JSON results
//
// The primary use case is locating sentence boundaries for the trimming
// stage, but the utilities are generic enough for other transcription needs.
//
// Configuration options (model, CUDA, VAD method) are passed via Config.
package whisperx
