/*
Package skyscrapper implements ports.LookupClient against the Sky Scrapper flights API
(RapidAPI).

Responses are never trusted implicitly: every body is decoded into generic JSON,
validated against the component schemas of an embedded OpenAPI document and only
then mapped onto domain types. A response that fails validation becomes a
*domain.RemoteError with the message "invalid response from upstream".

# Error Policy

  - Non-2xx: the payload "message" (a string, or the first value of each object in
    a list, joined with ", "), else "Request failed with status code N".
  - 2xx with status false: the payload message, else "failed to fetch airports" or
    "failed to fetch flights".
  - Transport failure: "Network Error", retried WithRetries times with a doubling backoff.

# Usage

	client := skyscrapper.New(apiKey,
		skyscrapper.WithTimeout(5*time.Second),
		skyscrapper.WithRateLimit(2, 1),
	)
	places, err := client.SearchPlaces(ctx, "Lon")
*/
package skyscrapper
