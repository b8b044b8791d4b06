// Package radarr implements the movie resolve/delete client against the
// Radarr v3 API.
package radarr
