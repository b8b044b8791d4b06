// Package history models raw watch events and aggregates them into one
// canonical record per media item: movies keyed on themselves, episodes
// rolled up into their owning series.
package history
