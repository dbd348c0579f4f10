package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownGenre = errors.New("unknown genre")

// Genre is the fixed set of categories a MediaItem can belong to.
type Genre int

const (
	Comedy Genre = iota + 1
	Romance
	Adventure
	Action
	Horror
	Drama
	ScienceFiction
	Documentary
)

var genreLabels = map[Genre]string{
	Comedy:         "Comedy",
	Romance:        "Romance",
	Adventure:      "Adventure",
	Action:         "Action",
	Horror:         "Horror",
	Drama:          "Drama",
	ScienceFiction: "Science Fiction",
	Documentary:    "Documentary",
}

// Genres lists every genre in declaration order.
func Genres() []Genre {
	return []Genre{Comedy, Romance, Adventure, Action, Horror, Drama, ScienceFiction, Documentary}
}

func (g Genre) String() string {
	if label, ok := genreLabels[g]; ok {
		return label
	}
	return fmt.Sprintf("Genre(%d)", int(g))
}

// Valid reports whether g is one of the declared genres.
func (g Genre) Valid() bool {
	_, ok := genreLabels[g]
	return ok
}

// ParseGenre matches a label case-insensitively.
func ParseGenre(s string) (Genre, error) {
	s = strings.TrimSpace(s)
	for _, g := range Genres() {
		if strings.EqualFold(genreLabels[g], s) {
			return g, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownGenre, s)
}

// MarshalText never fails. Values outside the enumeration render as "Genre(n)",
// which UnmarshalText rejects.
func (g Genre) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *Genre) UnmarshalText(text []byte) error {
	parsed, err := ParseGenre(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
