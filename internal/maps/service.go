package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"quotewidget_backend/platform/apperr"
	"quotewidget_backend/platform/logger"
)

const nominatimURL = "https://nominatim.openstreetmap.org/search"

const earthRadiusMiles = 3958.8

type Service struct {
	client *http.Client
	log    *logger.Logger
}

func NewService(log *logger.Logger) *Service {
	return &Service{
		client: &http.Client{Timeout: 5 * time.Second},
		log:    log,
	}
}

func (s *Service) SearchAddress(ctx context.Context, query string) ([]AddressSuggestion, error) {
	rawResults, err := s.geocode(ctx, query, 5)
	if err != nil {
		return nil, err
	}

	suggestions := make([]AddressSuggestion, 0, len(rawResults))
	for _, raw := range rawResults {
		suggestion, ok := buildSuggestion(raw)
		if !ok {
			continue
		}

		suggestions = append(suggestions, suggestion)
	}

	return suggestions, nil
}

// EstimateDistance geocodes both endpoints and returns the great-circle
// mileage between them. It is an estimate for pricing, not a routed
// driving distance.
func (s *Service) EstimateDistance(ctx context.Context, from, to string) (DistanceEstimate, error) {
	fromLat, fromLon, err := s.geocodeOne(ctx, from)
	if err != nil {
		return DistanceEstimate{}, err
	}
	toLat, toLon, err := s.geocodeOne(ctx, to)
	if err != nil {
		return DistanceEstimate{}, err
	}

	miles := haversineMiles(fromLat, fromLon, toLat, toLon)
	return DistanceEstimate{
		From:  from,
		To:    to,
		Miles: math.Round(miles*10) / 10,
	}, nil
}

func (s *Service) geocode(ctx context.Context, query string, limit int) ([]nominatimResponse, error) {
	params := url.Values{}
	params.Add("q", query)
	params.Add("format", "json")
	params.Add("addressdetails", "1")
	params.Add("limit", strconv.Itoa(limit))
	params.Add("countrycodes", "us")

	reqURL := fmt.Sprintf("%s?%s", nominatimURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", "QuoteWidget/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Error("nominatim request failed", "error", err)
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		s.log.Error("nominatim upstream error", "status", resp.StatusCode)
		return nil, fmt.Errorf("upstream api error: %d", resp.StatusCode)
	}

	var rawResults []nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&rawResults); err != nil {
		s.log.Error("failed to decode nominatim payload", "error", err)
		return nil, err
	}

	return rawResults, nil
}

func (s *Service) geocodeOne(ctx context.Context, query string) (lat, lon float64, err error) {
	results, err := s.geocode(ctx, query, 1)
	if err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, apperr.NotFound("address could not be located")
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return 0, 0, fmt.Errorf("geocoder returned unparseable coordinates for %q", query)
	}
	return lat, lon, nil
}

func haversineMiles(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusMiles * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func buildSuggestion(raw nominatimResponse) (AddressSuggestion, bool) {
	if raw.Address.Road == "" {
		return AddressSuggestion{}, false
	}

	city := pickCity(raw.Address)
	if city == "" {
		return AddressSuggestion{}, false
	}

	suggestion := AddressSuggestion{
		Street:      raw.Address.Road,
		HouseNumber: raw.Address.HouseNumber,
		ZipCode:     raw.Address.Postcode,
		City:        city,
		State:       raw.Address.State,
		Lat:         raw.Lat,
		Lon:         raw.Lon,
	}

	suggestion.Label = buildLabel(suggestion)

	return suggestion, true
}

func pickCity(address nominatimAddress) string {
	if address.City != "" {
		return address.City
	}
	if address.Town != "" {
		return address.Town
	}
	if address.Village != "" {
		return address.Village
	}
	if address.Municipality != "" {
		return address.Municipality
	}
	return address.Hamlet
}

func buildLabel(suggestion AddressSuggestion) string {
	parts := []string{}
	if suggestion.HouseNumber != "" {
		parts = append(parts, suggestion.HouseNumber)
	}
	parts = append(parts, suggestion.Street, ",", suggestion.City)
	if suggestion.State != "" {
		parts = append(parts, suggestion.State)
	}
	if suggestion.ZipCode != "" {
		parts = append(parts, suggestion.ZipCode)
	}

	label := strings.Join(parts, " ")
	label = strings.ReplaceAll(label, " ,", ",")
	return strings.TrimSpace(label)
}
