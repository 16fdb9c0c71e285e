// Package harness replays hotel listing scenarios and checks the visible
// list after every event.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: stars_then_query
//	description: "Filters replace each other"
//	catalog: ../catalogs/hotels.json   # or inline `hotels:`
//	exact: false                       # optional, exact filter matching
//	events:
//	  - topic: stars
//	    value: { stars: 4 }
//	    expect:
//	      ids: ["4", "2"]
//	  - topic: hotel
//	    reset: true                    # publish an absent value
//	    expect:
//	      count: 4
//	expect:                            # optional, checked after all events
//	  names: ["Hotel Nuevo Boston"]
//
// Each event is published on an events.Bus and drained before the next
// one, so the trace records the list exactly as a subscriber saw it.
//
// # Deterministic Testing
//
// Sequence numbers come from testutil.DeterministicClock, so the same
// scenario always yields the same trace and golden files stay stable.
package harness
