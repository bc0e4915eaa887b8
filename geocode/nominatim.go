package geocode

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// Geocoder turns a coordinate pair into a short human-readable place label
// via Nominatim reverse lookup. Results are cached per coordinate pair so the
// statistics endpoint never repeats a lookup for the same venue.
type Geocoder struct {
	client *resty.Client

	mu    sync.Mutex
	cache map[string]string
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
}

func NewGeocoder() *Geocoder {
	client := resty.New().
		SetBaseURL("https://nominatim.openstreetmap.org").
		SetTimeout(10*time.Second).
		SetHeader("User-Agent", "geoplanner")
	return &Geocoder{
		client: client,
		cache:  make(map[string]string),
	}
}

// ReverseLookup resolves (lat, lon) to a label like "Plaza Bolívar,
// Maracaibo". On any failure it falls back to the raw coordinate pair, so
// callers never need an error path.
func (g *Geocoder) ReverseLookup(lat, lon float64) string {
	key := fmt.Sprintf("%.6f,%.6f", lat, lon)

	g.mu.Lock()
	if cached, ok := g.cache[key]; ok {
		g.mu.Unlock()
		return cached
	}
	g.mu.Unlock()

	label := g.fetch(lat, lon)

	g.mu.Lock()
	g.cache[key] = label
	g.mu.Unlock()
	return label
}

func (g *Geocoder) fetch(lat, lon float64) string {
	fallback := fmt.Sprintf("%.6f, %.6f", lat, lon)

	var result reverseResponse
	resp, err := g.client.R().
		SetQueryParams(map[string]string{
			"lat":             fmt.Sprintf("%f", lat),
			"lon":             fmt.Sprintf("%f", lon),
			"format":          "json",
			"accept-language": "es",
		}).
		SetResult(&result).
		Get("/reverse")
	if err != nil || resp.IsError() || result.DisplayName == "" {
		return fallback
	}

	// "Plaza Bolívar, Centro, Maracaibo, Zulia, Venezuela" ->
	// "Plaza Bolívar, Maracaibo"
	parts := strings.Split(result.DisplayName, ",")
	if len(parts) >= 3 {
		return fmt.Sprintf("%s, %s", strings.TrimSpace(parts[0]), strings.TrimSpace(parts[len(parts)-3]))
	}
	return result.DisplayName
}
