// Package trimming chooses the cut boundary for each transcribed pair and
// produces the trimmed output files.
//
// The stage loads the WhisperX transcripts recorded by the transcription
// stage, selects a sentence-aligned cut inside the configured duration
// window (synchronizing the pair when both recordings exist), cuts the
// originals with ffmpeg, and publishes the results through the configured
// export backend. A JSON report of every decision is written to the log
// directory.
package trimming
