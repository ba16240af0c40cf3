// Package models defines the core data structures for sessions, favorites
// and country catalog records.
package models

// Session represents the current signed-in user. It is a client-side record:
// no backend ever verifies it, and at most one session exists at a time.
type Session struct {
	// ID is the identifier of the session's user.
	ID string `json:"id"`
	// Email is the address the user signed in with.
	Email string `json:"email"`
	// Name is the display name shown in the UI.
	Name string `json:"name"`
}

// FavoriteEntry is one saved country in the favorites collection.
type FavoriteEntry struct {
	// CCA3 is the unique alpha-3 catalog code of the country.
	CCA3 string `json:"cca3"`
	// Name is the common name of the country at the time it was saved.
	Name string `json:"name"`
	// Flag is the URL of the country's flag image.
	Flag string `json:"flag"`
}

// Country mirrors the subset of the upstream catalog record the application
// consumes.
type Country struct {
	Name       CountryName         `json:"name"`
	Capital    []string            `json:"capital"`
	Population int64               `json:"population"`
	Region     string              `json:"region"`
	Subregion  string              `json:"subregion"`
	Area       float64             `json:"area"`
	Flags      Flags               `json:"flags"`
	Languages  map[string]string   `json:"languages"`
	Currencies map[string]Currency `json:"currencies"`
	Borders    []string            `json:"borders"`
	CCA3       string              `json:"cca3"`
	UNMember   bool                `json:"unMember"`
}

// CountryName holds the common and official names of a country.
type CountryName struct {
	Common   string `json:"common"`
	Official string `json:"official"`
}

// Flags holds the flag image URLs of a country.
type Flags struct {
	PNG string `json:"png"`
	SVG string `json:"svg"`
}

// Currency describes one currency used by a country.
type Currency struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// FlagURL returns the preferred flag image URL, PNG first with SVG as the
// fallback.
func (c Country) FlagURL() string {
	if c.Flags.PNG != "" {
		return c.Flags.PNG
	}
	return c.Flags.SVG
}
