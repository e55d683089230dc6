package skyscrapper

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/aretw0/skyscout/pkg/domain"
)

type itineraryResponse struct {
	Data struct {
		Context struct {
			Status       string `json:"status"`
			TotalResults int    `json:"totalResults"`
		} `json:"context"`
		Itineraries []itineraryItem `json:"itineraries"`
	} `json:"data"`
}

type itineraryItem struct {
	ID    string `json:"id"`
	Price struct {
		Raw       float64 `json:"raw"`
		Formatted string  `json:"formatted"`
	} `json:"price"`
	Legs []legItem `json:"legs"`
	Tags []string  `json:"tags"`
}

type legItem struct {
	ID              string      `json:"id"`
	Origin          legPlace    `json:"origin"`
	Destination     legPlace    `json:"destination"`
	DurationMinutes int         `json:"durationInMinutes"`
	StopCount       int         `json:"stopCount"`
	Departure       time.Time   `json:"departure"`
	Arrival         time.Time   `json:"arrival"`
	TimeDeltaInDays int         `json:"timeDeltaInDays"`
	Carriers        legCarriers `json:"carriers"`
	Segments        []segment   `json:"segments"`
}

type legPlace struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayCode string `json:"displayCode"`
	City        string `json:"city"`
}

type legCarriers struct {
	Marketing []carrier `json:"marketing"`
	Operating []carrier `json:"operating"`
}

type carrier struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	LogoURL     string `json:"logoUrl"`
	AlternateID string `json:"alternateId"`
}

type segment struct {
	ID     string `json:"id"`
	Origin struct {
		FlightPlaceID string `json:"flightPlaceId"`
		DisplayCode   string `json:"displayCode"`
		Name          string `json:"name"`
	} `json:"origin"`
	Destination struct {
		FlightPlaceID string `json:"flightPlaceId"`
		DisplayCode   string `json:"displayCode"`
		Name          string `json:"name"`
	} `json:"destination"`
	Departure        time.Time `json:"departure"`
	Arrival          time.Time `json:"arrival"`
	DurationMinutes  int       `json:"durationInMinutes"`
	FlightNumber     string    `json:"flightNumber"`
	MarketingCarrier carrier   `json:"marketingCarrier"`
	OperatingCarrier carrier   `json:"operatingCarrier"`
}

// SearchParams renders criteria as the upstream query string.
// returnDate is only present for round trips.
func (c *Client) SearchParams(criteria domain.SearchCriteria) url.Values {
	params := url.Values{}
	params.Set("originSkyId", criteria.Origin.DisplayCode)
	params.Set("destinationSkyId", criteria.Destination.DisplayCode)
	params.Set("originEntityId", criteria.Origin.EntityID())
	params.Set("destinationEntityId", criteria.Destination.EntityID())
	params.Set("date", criteria.Departure.Format(domain.DateLayout))
	if criteria.Return != nil {
		params.Set("returnDate", criteria.Return.Format(domain.DateLayout))
	}
	params.Set("adults", strconv.Itoa(criteria.Passengers.Adults))
	params.Set("children", strconv.Itoa(criteria.Passengers.Children))
	params.Set("infants", strconv.Itoa(criteria.Passengers.Infants))

	cabin := criteria.Cabin
	if cabin == "" {
		cabin = domain.Economy
	}
	params.Set("cabinClass", cabin.Param())
	params.Set("sortBy", defaultSortBy)
	params.Set("currency", defaultCurrency)
	params.Set("market", c.market)
	params.Set("countryCode", defaultCountryCode)
	return params
}

// SearchItineraries runs a flight search. The criteria are assumed validated by the caller.
func (c *Client) SearchItineraries(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Itinerary, error) {
	body, err := c.get(ctx, "/flights/searchFlights", c.SearchParams(criteria), schemaItineraries, msgFlightsFailed)
	if err != nil {
		return nil, err
	}

	var resp itineraryResponse
	if err := decodeWire(body, &resp); err != nil {
		return nil, shapeError(200, err)
	}

	c.logger.Debug("Itineraries received",
		"count", len(resp.Data.Itineraries),
		"context_status", resp.Data.Context.Status,
	)

	items := make([]domain.Itinerary, 0, len(resp.Data.Itineraries))
	for _, it := range resp.Data.Itineraries {
		items = append(items, it.toDomain())
	}
	return items, nil
}

func (it itineraryItem) toDomain() domain.Itinerary {
	out := domain.Itinerary{
		ID:    it.ID,
		Price: domain.Price{Raw: it.Price.Raw, Formatted: it.Price.Formatted},
		Legs:  make([]domain.Leg, 0, len(it.Legs)),
		Tags:  it.Tags,
	}
	for _, l := range it.Legs {
		out.Legs = append(out.Legs, l.toDomain())
	}
	return out
}

func (l legItem) toDomain() domain.Leg {
	leg := domain.Leg{
		ID:              l.ID,
		Origin:          domain.LegPlace(l.Origin),
		Destination:     domain.LegPlace(l.Destination),
		DurationMinutes: l.DurationMinutes,
		StopCount:       l.StopCount,
		Departure:       l.Departure,
		Arrival:         l.Arrival,
		TimeDeltaInDays: l.TimeDeltaInDays,
	}
	for _, c := range l.Carriers.Marketing {
		leg.Carriers = append(leg.Carriers, domain.Carrier(c))
	}
	for _, s := range l.Segments {
		leg.Segments = append(leg.Segments, domain.Segment{
			ID:               s.ID,
			Origin:           domain.LegPlace{ID: s.Origin.FlightPlaceID, Name: s.Origin.Name, DisplayCode: s.Origin.DisplayCode},
			Destination:      domain.LegPlace{ID: s.Destination.FlightPlaceID, Name: s.Destination.Name, DisplayCode: s.Destination.DisplayCode},
			Departure:        s.Departure,
			Arrival:          s.Arrival,
			DurationMinutes:  s.DurationMinutes,
			FlightNumber:     s.FlightNumber,
			MarketingCarrier: domain.Carrier(s.MarketingCarrier),
			OperatingCarrier: domain.Carrier(s.OperatingCarrier),
		})
	}
	return leg
}
