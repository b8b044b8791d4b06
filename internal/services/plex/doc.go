// Package plex implements clients for the local Plex media server API and
// the hosted community metadata GraphQL endpoint.
package plex
