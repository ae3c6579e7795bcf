// Package geocode implementa el port de geocoding contra un servicio
// HTTP externo compatible con la API de búsqueda de Nominatim.
package geocode

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pet-donor-connect/internal/domain/geo"
	"pet-donor-connect/internal/observability"
	"pet-donor-connect/internal/platform/httpclient"
	"pet-donor-connect/internal/ports/geocode"
)

type Client struct {
	http *httpclient.Client
}

func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc}, nil
}

// NewClientWithHTTP permite inyectar el httpclient (tests).
func NewClientWithHTTP(hc *httpclient.Client) *Client {
	return &Client{http: hc}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resuelve una dirección a coordenadas. Devuelve
// geocode.ErrNoResult cuando el servicio no encuentra nada; los errores
// de red o formato se propagan tal cual.
func (c *Client) Geocode(ctx context.Context, address string) (geo.Point, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return geo.Point{}, geocode.ErrNoResult
	}

	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")

	var results []searchResult
	if err := c.http.GetJSON(ctx, "/search", q, nil, &results); err != nil {
		observability.GeocodeLookupsTotal.WithLabelValues("error").Inc()
		return geo.Point{}, err
	}

	if len(results) == 0 {
		observability.GeocodeLookupsTotal.WithLabelValues("no_result").Inc()
		return geo.Point{}, geocode.ErrNoResult
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		observability.GeocodeLookupsTotal.WithLabelValues("error").Inc()
		return geo.Point{}, err
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		observability.GeocodeLookupsTotal.WithLabelValues("error").Inc()
		return geo.Point{}, err
	}

	observability.GeocodeLookupsTotal.WithLabelValues("hit").Inc()
	return geo.Point{Lat: lat, Lng: lng}, nil
}
