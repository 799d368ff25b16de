// Package langs maps ISO 3166 territories to the languages spoken there.
package langs

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// ErrUnknownTerritory indicates a territory code without language data.
var ErrUnknownTerritory = errors.New("langs: unknown territory")

// secondary lists further official languages of multilingual territories,
// most widely spoken first. The primary language comes from CLDR likely
// subtags.
var secondary = map[string][]string{
	"BE": {"fr", "de"},
	"BY": {"ru"},
	"CA": {"fr"},
	"CH": {"fr", "it"},
	"CY": {"tr"},
	"FI": {"sv"},
	"IE": {"ga"},
	"IN": {"en"},
	"LU": {"fr", "de"},
	"MT": {"en"},
	"NZ": {"mi"},
	"PK": {"en"},
	"PY": {"gn"},
	"SG": {"zh", "ms", "ta"},
	"ZA": {"zu", "xh", "af"},
}

// Official returns the official languages of territory as ISO 639 base
// codes, the most widely spoken first. territory is an ISO 3166-1 alpha-2,
// alpha-3 or UN M.49 code in any case.
func Official(territory string) ([]string, error) {
	region, err := language.ParseRegion(strings.TrimSpace(territory))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTerritory, territory)
	}
	tag, err := language.Compose(region)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTerritory, territory)
	}
	base, conf := tag.Base()
	if conf == language.No {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTerritory, territory)
	}

	primary := base.String()
	out := []string{primary}
	for _, l := range secondary[region.String()] {
		if l != primary {
			out = append(out, l)
		}
	}
	return out, nil
}

// Primary returns the most widely spoken official language of territory.
func Primary(territory string) (string, error) {
	l, err := Official(territory)
	if err != nil {
		return "", err
	}
	return l[0], nil
}

// Base reduces a language tag such as "pt-BR" or "zh_Hant" to its ISO 639
// base code. Unparseable input is returned lowercased.
func Base(tag string) string {
	t, err := language.Parse(strings.ReplaceAll(strings.TrimSpace(tag), "_", "-"))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(tag))
	}
	b, _ := t.Base()
	return b.String()
}
