// Package sonarr implements the series resolve/delete client against the
// Sonarr v3 API.
package sonarr
