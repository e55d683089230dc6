/*
Package autocomplete implements the origin/destination input controller.

Each field turns raw keystrokes into a debounced place lookup and keeps the
resulting suggestion list until the user commits one of them.

# Key Concepts

  - Field: Origin or Destination. Fields are fully independent; each has its own
    lock, debouncer and ticket counter.
  - Ticket: a per-field monotonic number taken by every debounced query. A lookup
    result is applied only while its ticket is still the field's latest, so a slow
    response for "Lo" can never overwrite the list for "Lon".
  - Status: Empty, Pending (waiting for debounce or lookup), Suggesting, Selected.

Lookup failures are never surfaced: they are logged at warn level and the
suggestion list is cleared.
*/
package autocomplete
