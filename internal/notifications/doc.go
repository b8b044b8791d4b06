// Package notifications delivers cleanup-run events via ntfy.
//
// The default implementation publishes to the topic configured in config.toml
// and gracefully degrades to a no-op when no topic is set. Warning
// notifications are batched into one digest per run so a large warning window
// never floods the subscriber.
//
// The cleanup engine depends only on the Service interface, so alternative
// transports slot in without touching engine code.
package notifications
