package availability

import (
	"errors"
	"time"
)

// reasons an item is unavailable
var (
	ErrEmbargo        = errors.New("embargoed")
	ErrNotWhitelisted = errors.New("country not whitelisted")
	ErrBlacklisted    = errors.New("country blacklisted")
)

const defaultCatalogue = "premium"

// Restriction scopes a country allow or deny list to the catalogues it
// applies to. A nil country list means the list is absent; an empty non-nil
// allow list admits nobody.
type Restriction struct {
	Catalogues         []string
	CountriesAllowed   []string
	CountriesForbidden []string
}

func (r Restriction) appliesTo(catalogue string) bool {
	return contains(r.Catalogues, catalogue)
}

// Window marks when an item becomes available.
type Window struct {
	Start time.Time
}

// User carries the account facts availability decisions depend on.
type User struct {
	Country    string
	Attributes map[string]string
}

// Catalogue returns the user's catalogue attribute, defaulting to premium.
func (u User) Catalogue() string {
	if catalogue, ok := u.Attributes["catalogue"]; ok {
		return catalogue
	}
	return defaultCatalogue
}

// Available reports whether any declared window has started at the given
// time. Items without windows are considered available.
func Available(windows []Window, at time.Time) error {
	if len(windows) == 0 {
		// not all items have availability specified
		return nil
	}
	for _, window := range windows {
		if !at.Before(window.Start) {
			return nil
		}
	}
	return ErrEmbargo
}

// AllowedForUser evaluates the first restriction matching the user's
// catalogue that carries a country list: an allow list requires membership,
// a deny list forbids it. Without an applicable restriction the item is
// allowed.
func AllowedForUser(user User, restrictions []Restriction) error {
	catalogue := user.Catalogue()
	for _, restriction := range restrictions {
		if !restriction.appliesTo(catalogue) {
			continue
		}
		if restriction.CountriesAllowed != nil {
			if contains(restriction.CountriesAllowed, user.Country) {
				return nil
			}
			return ErrNotWhitelisted
		}
		if restriction.CountriesForbidden != nil {
			if contains(restriction.CountriesForbidden, user.Country) {
				return ErrBlacklisted
			}
			return nil
		}
	}
	return nil
}

// ForUser combines the window and restriction checks, windows first.
func ForUser(user User, windows []Window, restrictions []Restriction, at time.Time) error {
	if err := Available(windows, at); err != nil {
		return err
	}
	return AllowedForUser(user, restrictions)
}

// Embargoed reports whether at falls before the earliest availability.
func Embargoed(earliest, at time.Time) bool {
	return at.Before(earliest)
}

func contains(list []string, value string) bool {
	for _, candidate := range list {
		if candidate == value {
			return true
		}
	}
	return false
}
