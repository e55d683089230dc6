package skyscrapper

import (
	"context"
	"net/url"
	"unicode/utf8"

	"github.com/aretw0/skyscout/pkg/domain"
)

// MinQueryLength is the shortest query the upstream is asked about.
const MinQueryLength = 2

type placeResponse struct {
	Data []placeItem `json:"data"`
}

type placeItem struct {
	SkyID        string `json:"skyId"`
	EntityID     string `json:"entityId"`
	Presentation struct {
		Title           string `json:"title"`
		SuggestionTitle string `json:"suggestionTitle"`
		Subtitle        string `json:"subtitle"`
	} `json:"presentation"`
	Navigation struct {
		EntityID      string `json:"entityId"`
		EntityType    string `json:"entityType"`
		LocalizedName string `json:"localizedName"`
	} `json:"navigation"`
}

// SearchPlaces resolves a free-text query into airports and cities, in upstream order.
func (c *Client) SearchPlaces(ctx context.Context, query string) ([]domain.Place, error) {
	if utf8.RuneCountInString(query) < MinQueryLength {
		return nil, domain.NewValidationError("query", "must be at least 2 characters")
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("locale", c.locale)

	body, err := c.get(ctx, "/flights/searchAirport", params, schemaPlaces, msgPlacesFailed)
	if err != nil {
		return nil, err
	}

	var resp placeResponse
	if err := decodeWire(body, &resp); err != nil {
		return nil, shapeError(200, err)
	}

	places := make([]domain.Place, 0, len(resp.Data))
	for _, item := range resp.Data {
		places = append(places, item.toDomain())
	}
	return places, nil
}

func (item placeItem) toDomain() domain.Place {
	p := domain.Place{
		ID:          item.EntityID,
		Name:        item.Presentation.Title,
		DisplayCode: item.SkyID,
		City:        item.Navigation.LocalizedName,
	}
	if item.Presentation.Subtitle != "" {
		p.Parent = &domain.ParentPlace{
			ID:          item.Navigation.EntityID,
			Name:        item.Presentation.Subtitle,
			DisplayCode: item.SkyID,
			Type:        item.Navigation.EntityType,
		}
	}
	return p
}
