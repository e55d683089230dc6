/*
Package ports defines the driven ports (interfaces) of the flight search controller.

These interfaces decouple the controllers from the upstream flight API and from
the presentation layer, so the same autocomplete and search logic can be driven
by a CLI, a test stub or any other host.

# Key Interfaces

  - PlaceSearcher: resolves a free-text query into Place candidates.
  - ItinerarySearcher: resolves SearchCriteria into priced Itineraries.
  - LookupClient: both of the above, as implemented by the Sky Scrapper adapter.
  - Notifier: receives transient, user-facing notifications.
*/
package ports
