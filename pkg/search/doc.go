/*
Package search validates the search form and drives the SearchState lifecycle.

A submission is validated locally first; an invalid form never reaches the
network. A valid one moves the stored state to loading and then to success
(possibly with zero itineraries) or error. Failures are also pushed to the
Notifier as transient messages.

Overlapping submissions are not cancelled. By default the last one to resolve
wins; WithLatestOnly keeps only the newest submission's outcome.

The package also shapes results client-side: SortItineraries, FilterItineraries
and Cheapest.
*/
package search
