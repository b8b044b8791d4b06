// Package tautulli implements the watch-history source client against the
// Tautulli v2 API.
package tautulli
