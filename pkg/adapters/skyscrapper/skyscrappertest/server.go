// Package skyscrappertest provides a fake Sky Scrapper upstream for tests and demos.
package skyscrappertest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/skyscout/pkg/domain"
	"github.com/go-chi/chi/v5"
)

// Request is a recorded upstream call.
type Request struct {
	Path   string
	Query  url.Values
	Header http.Header
}

// Failure forces every response to the given status and raw body.
type Failure struct {
	Status int
	Body   string
}

// Server is a running fake upstream. Point the client at URL + "/api/v1".
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	fixtures Fixtures
	requests []Request
	failure  *Failure
	latency  time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithFixtures replaces the default data set.
func WithFixtures(f Fixtures) Option {
	return func(s *Server) {
		s.fixtures = f
	}
}

// WithLatency delays every response.
func WithLatency(d time.Duration) Option {
	return func(s *Server) {
		s.latency = d
	}
}

// NewServer starts a fake upstream. Callers must Close it.
func NewServer(opts ...Option) *Server {
	s := &Server{fixtures: DefaultFixtures()}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(s.record)
	r.Route("/api/v1/flights", func(r chi.Router) {
		r.Get("/searchAirport", s.searchAirport)
		r.Get("/searchFlights", s.searchFlights)
	})
	s.Server = httptest.NewServer(r)
	return s
}

// BaseURL is the API root to pass to skyscrapper.WithBaseURL.
func (s *Server) BaseURL() string {
	return s.URL + "/api/v1"
}

// Fail makes every following response fail until Recover is called.
func (s *Server) Fail(f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = &f
}

// Recover clears a Failure.
func (s *Server) Recover() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = nil
}

// Requests returns a copy of the recorded calls.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Count returns how many calls hit the path suffix (e.g. "/searchFlights").
func (s *Server) Count(suffix string) int {
	n := 0
	for _, r := range s.Requests() {
		if strings.HasSuffix(r.Path, suffix) {
			n++
		}
	}
	return n
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
		})
		failure, latency := s.failure, s.latency
		s.mu.Unlock()

		if latency > 0 {
			select {
			case <-r.Context().Done():
				return
			case <-time.After(latency):
			}
		}
		if failure != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(failure.Status)
			_, _ = w.Write([]byte(failure.Body))
			return
		}
		if r.Header.Get("X-RapidAPI-Key") == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"message": "Invalid API key. Go to https://docs.rapidapi.com/docs/keys for more info.",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) searchAirport(w http.ResponseWriter, r *http.Request) {
	query := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("query")))
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"status":  false,
			"message": []map[string]string{{"query": "query is required"}},
		})
		return
	}

	s.mu.Lock()
	places := s.fixtures.Places
	s.mu.Unlock()

	data := make([]map[string]any, 0)
	for _, p := range places {
		if !matches(query, p.SkyID, p.Title, p.City) {
			continue
		}
		navID := p.ParentEntityID
		if navID == "" {
			navID = p.EntityID
		}
		data = append(data, map[string]any{
			"skyId":    p.SkyID,
			"entityId": p.EntityID,
			"presentation": map[string]any{
				"title":           p.Title,
				"suggestionTitle": fmt.Sprintf("%s (%s)", p.Title, p.SkyID),
				"subtitle":        p.Subtitle,
			},
			"navigation": map[string]any{
				"entityId":      navID,
				"entityType":    p.EntityType,
				"localizedName": p.City,
			},
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    true,
		"timestamp": time.Now().UnixMilli(),
		"data":      data,
	})
}

func (s *Server) searchFlights(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var problems []map[string]string
	for _, key := range []string{"originSkyId", "destinationSkyId", "originEntityId", "destinationEntityId", "date"} {
		if q.Get(key) == "" {
			problems = append(problems, map[string]string{key: key + " is required"})
		}
	}
	depart, err := time.Parse(domain.DateLayout, q.Get("date"))
	if q.Get("date") != "" && err != nil {
		problems = append(problems, map[string]string{"date": "date must be YYYY-MM-DD"})
	}
	var ret *time.Time
	if v := q.Get("returnDate"); v != "" {
		t, err := time.Parse(domain.DateLayout, v)
		if err != nil {
			problems = append(problems, map[string]string{"returnDate": "returnDate must be YYYY-MM-DD"})
		}
		ret = &t
	}
	if len(problems) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": false, "message": problems})
		return
	}

	origin, destination := q.Get("originSkyId"), q.Get("destinationSkyId")

	s.mu.Lock()
	routes := s.fixtures.Routes
	places := s.fixtures.Places
	s.mu.Unlock()

	itineraries := make([]map[string]any, 0)
	for _, route := range routes {
		if !strings.EqualFold(route.Origin, origin) || !strings.EqualFold(route.Destination, destination) {
			continue
		}
		for _, offer := range route.Offers {
			itineraries = append(itineraries, renderOffer(offer, lookupPlace(places, origin), lookupPlace(places, destination), depart, ret))
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    true,
		"timestamp": time.Now().UnixMilli(),
		"data": map[string]any{
			"context": map[string]any{
				"status":       "complete",
				"totalResults": len(itineraries),
			},
			"itineraries": itineraries,
		},
	})
}

func renderOffer(offer OfferFixture, from, to PlaceFixture, depart time.Time, ret *time.Time) map[string]any {
	legs := make([]map[string]any, 0, len(offer.Legs)*2)
	for i, l := range offer.Legs {
		legs = append(legs, renderLeg(fmt.Sprintf("%s-out-%d", offer.ID, i), l, from, to, depart))
		if ret != nil {
			legs = append(legs, renderLeg(fmt.Sprintf("%s-ret-%d", offer.ID, i), l, to, from, *ret))
		}
	}

	tags := offer.Tags
	if tags == nil {
		tags = []string{}
	}
	return map[string]any{
		"id": offer.ID,
		"price": map[string]any{
			"raw":       offer.Price,
			"formatted": fmt.Sprintf("$%.0f", offer.Price),
		},
		"legs": legs,
		"tags": tags,
	}
}

func renderLeg(id string, l LegFixture, from, to PlaceFixture, day time.Time) map[string]any {
	clock, err := time.Parse("15:04", l.Depart)
	if err != nil {
		clock = time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC)
	}
	dep := day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
	arr := dep.Add(time.Duration(l.Duration) * time.Minute)

	carrier := map[string]any{
		"id":      l.CarrierID,
		"name":    l.Carrier,
		"logoUrl": fmt.Sprintf("https://logos.skyscnr.com/images/airlines/favicon/%d.png", -l.CarrierID),
	}

	segments := make([]map[string]any, 0, l.Stops+1)
	hops := l.Stops + 1
	step := l.Duration / hops
	segDep := dep
	for i := 0; i < hops; i++ {
		segFrom, segTo := segmentPlace(from), segmentPlace(to)
		if i > 0 {
			segFrom = hubPlace()
		}
		if i < hops-1 {
			segTo = hubPlace()
		}
		segArr := segDep.Add(time.Duration(step) * time.Minute)
		segments = append(segments, map[string]any{
			"id":                fmt.Sprintf("%s-seg-%d", id, i),
			"origin":            segFrom,
			"destination":       segTo,
			"departure":         segDep.Format("2006-01-02T15:04:05"),
			"arrival":           segArr.Format("2006-01-02T15:04:05"),
			"durationInMinutes": step,
			"flightNumber":      l.FlightNumber,
			"marketingCarrier":  carrier,
			"operatingCarrier":  carrier,
		})
		segDep = segArr
	}

	return map[string]any{
		"id":                id,
		"origin":            legPlace(from),
		"destination":       legPlace(to),
		"durationInMinutes": l.Duration,
		"stopCount":         l.Stops,
		"departure":         dep.Format("2006-01-02T15:04:05"),
		"arrival":           arr.Format("2006-01-02T15:04:05"),
		"timeDeltaInDays":   int(domain.Day(arr).Sub(domain.Day(dep)).Hours() / 24),
		"carriers": map[string]any{
			"marketing": []map[string]any{carrier},
		},
		"segments": segments,
	}
}

func legPlace(p PlaceFixture) map[string]any {
	return map[string]any{
		"id":          p.SkyID,
		"name":        p.Title,
		"displayCode": p.SkyID,
		"city":        p.City,
	}
}

func segmentPlace(p PlaceFixture) map[string]any {
	return map[string]any{
		"flightPlaceId": p.SkyID,
		"displayCode":   p.SkyID,
		"name":          p.Title,
		"type":          "Airport",
	}
}

func hubPlace() map[string]any {
	return map[string]any{
		"flightPlaceId": "FRA",
		"displayCode":   "FRA",
		"name":          "Frankfurt International",
		"type":          "Airport",
	}
}

func lookupPlace(places []PlaceFixture, skyID string) PlaceFixture {
	for _, p := range places {
		if strings.EqualFold(p.SkyID, skyID) {
			return p
		}
	}
	return PlaceFixture{SkyID: skyID, EntityID: skyID, Title: skyID}
}

func matches(query string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
