/*
Package domain contains the core models of the flight search controller.

It defines the entities exchanged between the lookup client, the autocomplete
controller and the search orchestrator. The package is kept free of I/O so it
can be shared by every adapter.

# Key Entities

  - Place: an origin/destination candidate (airport or city), optionally nested under a parent.
  - PassengerCounts: adults, children and infants, bounded by the booking policy.
  - TravelDates: departure and return days with minimum-date enforcement.
  - SearchCriteria: the validated input of an itinerary search.
  - Itinerary: a priced offer composed of legs and segments.
  - SearchState: the lifecycle of one submission (idle, loading, success, error).
*/
package domain
