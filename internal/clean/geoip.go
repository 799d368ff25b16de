package clean

import (
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"
)

// Locator resolves an anonymous author, named by IP address, to a country.
type Locator interface {
	Locate(name string) (country, iso string, err error)
}

// GeoIP locates addresses with a GeoLite2 Country database.
type GeoIP struct {
	reader *geoip2.Reader
}

// OpenGeoIP opens a GeoLite2 Country (.mmdb) database.
func OpenGeoIP(path string) (*GeoIP, error) {
	r, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening GeoLite2 database: %w", err)
	}
	return &GeoIP{reader: r}, nil
}

// Locate returns the English country name and ISO code for the IP address
// name.
func (g *GeoIP) Locate(name string) (string, string, error) {
	ip := net.ParseIP(name)
	if ip == nil {
		return "", "", fmt.Errorf("%w: %q", ErrNotIP, name)
	}
	rec, err := g.reader.Country(ip)
	if err != nil {
		return "", "", fmt.Errorf("locating %s: %w", name, err)
	}
	return rec.Country.Names["en"], rec.Country.IsoCode, nil
}

// Close closes the database.
func (g *GeoIP) Close() error {
	return g.reader.Close()
}
