// Package config loads, normalizes, and validates Starsweep configuration
// from a TOML file with environment variable overrides. The configuration is
// built once at process start and passed by reference into every component;
// nothing reads ambient global state after startup.
package config
