// Command starsweep is the CLI for the watch-history cleanup engine: one-shot
// runs, the scheduling daemon, configuration utilities, and run history.
package main
