// Package config loads, normalizes, and validates sentrim configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and overlays environment values for secrets
// such as the Hugging Face token and AWS credentials. The Config type
// centralizes every knob the CLI needs: input/output directories, the trim
// duration window, pairing markers, WhisperX settings, and export targets.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, a validated duration window, and clear validation errors.
package config
