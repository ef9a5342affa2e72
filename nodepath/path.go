package nodepath

import (
	"slices"
	"strconv"
	"strings"

	"github.com/erraggy/oasmodel/oaserrors"
)

// SegmentKind distinguishes the three kinds of path segments.
type SegmentKind int

const (
	// Property selects a fixed, named property of a node.
	Property SegmentKind = iota
	// Index selects a position in an ordered sequence of nodes.
	Index
	// Key selects an entry of a keyed collection of nodes.
	Key
)

// String returns the segment kind name.
func (k SegmentKind) String() string {
	switch k {
	case Property:
		return "property"
	case Index:
		return "index"
	case Key:
		return "key"
	default:
		return "unknown"
	}
}

// Segment is one step of a Path.
type Segment struct {
	Kind SegmentKind
	// Name is the property name or the key, depending on Kind.
	Name string
	// Pos is the sequence index when Kind is Index.
	Pos int
}

// Prop returns a property segment.
func Prop(name string) Segment { return Segment{Kind: Property, Name: name} }

// At returns an index segment.
func At(i int) Segment { return Segment{Kind: Index, Pos: i} }

// KeyOf returns a key segment.
func KeyOf(k string) Segment { return Segment{Kind: Key, Name: k} }

// String renders the segment in its path encoding.
func (s Segment) String() string {
	var b strings.Builder
	s.writeTo(&b)
	return b.String()
}

func (s Segment) writeTo(b *strings.Builder) {
	switch s.Kind {
	case Index:
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(s.Pos))
		b.WriteByte(']')
	case Key:
		b.WriteByte('[')
		b.WriteString(strconv.Quote(s.Name))
		b.WriteByte(']')
	default:
		b.WriteByte('/')
		b.WriteString(s.Name)
	}
}

// Path is an immutable address of a node within one document snapshot.
// The zero value is the root path.
type Path struct {
	segs []Segment
}

// Root returns the path of the document root.
func Root() Path { return Path{} }

// New returns a path made of segs.
func New(segs ...Segment) Path {
	return Path{segs: slices.Clone(segs)}
}

// Len returns the number of segments.
func (p Path) Len() int { return len(p.segs) }

// IsRoot reports whether p addresses the document root.
func (p Path) IsRoot() bool { return len(p.segs) == 0 }

// Segments returns a copy of the segments.
func (p Path) Segments() []Segment { return slices.Clone(p.segs) }

// Segment returns the i-th segment.
func (p Path) Segment(i int) Segment { return p.segs[i] }

// Last returns the final segment; ok is false for the root path.
func (p Path) Last() (Segment, bool) {
	if len(p.segs) == 0 {
		return Segment{}, false
	}
	return p.segs[len(p.segs)-1], true
}

// Append returns a new path extended by segs.
func (p Path) Append(segs ...Segment) Path {
	out := make([]Segment, 0, len(p.segs)+len(segs))
	out = append(out, p.segs...)
	out = append(out, segs...)
	return Path{segs: out}
}

// Parent returns p without its final segment.
func (p Path) Parent() Path {
	if len(p.segs) == 0 {
		return p
	}
	return Path{segs: p.segs[:len(p.segs)-1 : len(p.segs)-1]}
}

// Equal reports whether two paths address the same position.
func (p Path) Equal(q Path) bool {
	return slices.Equal(p.segs, q.segs)
}

// HasPrefix reports whether q is an ancestor of, or equal to, p.
func (p Path) HasPrefix(q Path) bool {
	return len(q.segs) <= len(p.segs) && slices.Equal(p.segs[:len(q.segs)], q.segs)
}

// String renders the path. The root renders as "/".
func (p Path) String() string {
	if len(p.segs) == 0 {
		return "/"
	}
	var b strings.Builder
	if p.segs[0].Kind != Property {
		b.WriteByte('/')
	}
	for _, s := range p.segs {
		s.writeTo(&b)
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler.
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Path) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ValidPropertyName reports whether name can be encoded as a bare property segment.
func ValidPropertyName(name string) bool {
	return name != "" && !strings.ContainsAny(name, `/[]"`)
}

// Parse decodes a path string produced by Path.String.
func Parse(s string) (Path, error) {
	if s == "" || s[0] != '/' {
		return Path{}, malformed(s, "path must start with '/'")
	}
	if s == "/" {
		return Root(), nil
	}

	var segs []Segment
	i := 1
	if s[1] != '[' {
		name, next, err := readProperty(s, i)
		if err != nil {
			return Path{}, err
		}
		segs = append(segs, Prop(name))
		i = next
	}
	for i < len(s) {
		switch s[i] {
		case '/':
			name, next, err := readProperty(s, i+1)
			if err != nil {
				return Path{}, err
			}
			segs = append(segs, Prop(name))
			i = next
		case '[':
			seg, next, err := readSelector(s, i+1)
			if err != nil {
				return Path{}, err
			}
			segs = append(segs, seg)
			i = next
		default:
			return Path{}, malformed(s, "unexpected character "+strconv.QuoteRune(rune(s[i]))+" at offset "+strconv.Itoa(i))
		}
	}
	return Path{segs: segs}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Path {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

func readProperty(s string, start int) (string, int, error) {
	end := start
	for end < len(s) && s[end] != '/' && s[end] != '[' {
		if s[end] == ']' || s[end] == '"' {
			return "", 0, malformed(s, "invalid character in property name at offset "+strconv.Itoa(end))
		}
		end++
	}
	if end == start {
		return "", 0, malformed(s, "empty property name at offset "+strconv.Itoa(start))
	}
	return s[start:end], end, nil
}

func readSelector(s string, start int) (Segment, int, error) {
	if start >= len(s) {
		return Segment{}, 0, malformed(s, "unterminated selector")
	}
	if s[start] == '"' {
		end := start + 1
		for end < len(s) && s[end] != '"' {
			if s[end] == '\\' {
				end++
			}
			end++
		}
		if end >= len(s) {
			return Segment{}, 0, malformed(s, "unterminated key")
		}
		key, err := strconv.Unquote(s[start : end+1])
		if err != nil {
			return Segment{}, 0, malformed(s, "invalid key quoting: "+err.Error())
		}
		if end+1 >= len(s) || s[end+1] != ']' {
			return Segment{}, 0, malformed(s, "expected ']' after key")
		}
		return KeyOf(key), end + 2, nil
	}

	end := start
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start || end >= len(s) || s[end] != ']' {
		return Segment{}, 0, malformed(s, "index must be a non-negative integer in brackets")
	}
	n, err := strconv.Atoi(s[start:end])
	if err != nil {
		return Segment{}, 0, malformed(s, "index out of range")
	}
	return At(n), end + 1, nil
}

func malformed(path, msg string) error {
	return &oaserrors.StructuralError{
		Path:    path,
		Reason:  oaserrors.ReasonMalformedPath,
		Message: msg,
	}
}
