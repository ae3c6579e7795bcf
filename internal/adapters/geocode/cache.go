package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"pet-donor-connect/internal/domain/geo"
	"pet-donor-connect/internal/observability"
	"pet-donor-connect/internal/ports/geocode"
)

const (
	cachePrefix = "geocode:addr:"
	cacheTTL    = 24 * time.Hour
)

// CachedGeocoder envuelve otro Geocoder con una cache Redis por
// dirección normalizada. Las direcciones cambian de coordenada casi
// nunca; el TTL largo evita golpear el servicio externo en cada
// refresco del mapa.
type CachedGeocoder struct {
	next   geocode.Geocoder
	client *redis.Client
}

func NewCachedGeocoder(ctx context.Context, redisURL string, next geocode.Geocoder) (*CachedGeocoder, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.PoolTimeout = 4 * time.Second

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &CachedGeocoder{next: next, client: client}, nil
}

// NewCachedGeocoderWithClient permite inyectar el cliente Redis (tests).
func NewCachedGeocoderWithClient(client *redis.Client, next geocode.Geocoder) *CachedGeocoder {
	return &CachedGeocoder{next: next, client: client}
}

type cachedPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
	// NoResult cachea también los negativos: una dirección que no
	// resuelve hoy tampoco va a resolver en el próximo request.
	NoResult bool `json:"no_result,omitempty"`
}

func (g *CachedGeocoder) Geocode(ctx context.Context, address string) (geo.Point, error) {
	key := cachePrefix + normalizeAddress(address)

	if data, err := g.client.Get(ctx, key).Bytes(); err == nil {
		var cp cachedPoint
		if err := json.Unmarshal(data, &cp); err == nil {
			observability.GeocodeLookupsTotal.WithLabelValues("cached").Inc()
			if cp.NoResult {
				return geo.Point{}, geocode.ErrNoResult
			}
			return geo.Point{Lat: cp.Lat, Lng: cp.Lng}, nil
		}
		// Entrada corrupta: se trata como miss.
	}

	pt, err := g.next.Geocode(ctx, address)
	switch {
	case err == nil:
		g.store(ctx, key, cachedPoint{Lat: pt.Lat, Lng: pt.Lng})
	case err == geocode.ErrNoResult:
		g.store(ctx, key, cachedPoint{NoResult: true})
	}
	return pt, err
}

// store es best-effort: si Redis falla, el resultado igual se devuelve.
func (g *CachedGeocoder) store(ctx context.Context, key string, cp cachedPoint) {
	data, err := json.Marshal(cp)
	if err != nil {
		return
	}
	_ = g.client.Set(ctx, key, data, cacheTTL).Err()
}

func (g *CachedGeocoder) Close() error {
	return g.client.Close()
}

func normalizeAddress(address string) string {
	return strings.ToLower(strings.Join(strings.Fields(address), " "))
}
