// Package ratings holds the pure DELETE/KEEP rating policy and the
// polymorphic rating sources (community, personal, history payload).
package ratings
