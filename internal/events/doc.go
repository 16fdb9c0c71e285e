// Package events implements the publish/subscribe channel that drives the
// hotel listing.
//
// Publishers enqueue topic/value pairs from any goroutine. A single
// dispatch goroutine (Run or Drain) dequeues them in FIFO order and calls
// the topic's handlers in subscription order, so handlers never run
// concurrently with each other.
//
// Every event is stamped with a sequence number from a monotonic logical
// clock. Handler errors are logged and dispatch continues.
package events
