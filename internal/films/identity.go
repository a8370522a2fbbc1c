package films

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultPattern matches file stems of the form "(1997) Titanic" or
// "[2009] Up", with optional bracketed extra info after the title.
const DefaultPattern = `^[([](?P<year>\d{4})[])]\s(?P<title>[^[]+)(?:\[|$)`

// Identity is the canonical key for a film. Equality is exact string and
// integer match after whitespace trimming; no case folding or punctuation
// stripping is applied, so provider titles must match local titles verbatim.
type Identity struct {
	Title string
	Year  int
}

// NewIdentity trims the title and returns the identity.
func NewIdentity(title string, year int) Identity {
	return Identity{Title: strings.TrimSpace(title), Year: year}
}

func (id Identity) String() string {
	return fmt.Sprintf("(%d) %s", id.Year, id.Title)
}

// Pattern extracts identities from extension-stripped file names. The
// underlying expression must define `title` and `year` named capture groups.
type Pattern struct {
	re         *regexp.Regexp
	titleIndex int
	yearIndex  int
}

// CompilePattern validates and compiles a filename pattern. A pattern
// without both named groups is a configuration error, not a per-file one.
func CompilePattern(expr string) (*Pattern, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		expr = DefaultPattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile filename pattern: %w", err)
	}
	titleIndex, yearIndex := -1, -1
	for i, name := range re.SubexpNames() {
		switch name {
		case "title":
			titleIndex = i
		case "year":
			yearIndex = i
		}
	}
	if titleIndex < 0 || yearIndex < 0 {
		return nil, fmt.Errorf("filename pattern %q must define `title` and `year` capture groups", expr)
	}
	return &Pattern{re: re, titleIndex: titleIndex, yearIndex: yearIndex}, nil
}

// MustCompilePattern is CompilePattern for patterns known to be valid.
func MustCompilePattern(expr string) *Pattern {
	p, err := CompilePattern(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// Match extracts an identity from an extension-stripped file name.
// It returns false when the stem does not match the pattern.
func (p *Pattern) Match(stem string) (Identity, bool) {
	groups := p.re.FindStringSubmatch(stem)
	if groups == nil {
		return Identity{}, false
	}
	year, err := strconv.Atoi(groups[p.yearIndex])
	if err != nil {
		return Identity{}, false
	}
	title := strings.TrimSpace(groups[p.titleIndex])
	if title == "" {
		return Identity{}, false
	}
	return Identity{Title: title, Year: year}, true
}

// String returns the source expression.
func (p *Pattern) String() string {
	return p.re.String()
}
