// Package cleanup contains the run engine and the policies it sequences:
// eligibility gates, the warn-then-delete windows, and the downstream action
// dispatcher. One Engine.Run call is one complete cleanup pass.
package cleanup
