package frontmatter

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alnah/go-md2json/internal/meta"
)

// ErrMalformed indicates the metadata block is not valid YAML or does not
// describe a mapping.
var ErrMalformed = errors.New("malformed frontmatter")

// MaxAliasDepth bounds alias resolution to reject self-referencing documents.
const MaxAliasDepth = 64

// Alias expansion limits: a document may build at most
// minValueBudget + valuesPerByte*len(input) values.
const (
	minValueBudget = 10_000
	valuesPerByte  = 100
)

// timestamp11 matches YAML 1.1 timestamps with a time part, including the
// forms yaml.v3 leaves as strings: a space before the time or the zone, and
// one-digit or minute-less offsets ("2001-12-14 21:59:43.10 -5").
var timestamp11 = regexp.MustCompile(
	`^(\d{4})-(\d{1,2})-(\d{1,2})(?:[Tt]|[ \t]+)(\d{1,2}):(\d{2}):(\d{2})(?:\.(\d*))?` +
		`(?:[ \t]*(Z|([-+])(\d{1,2})(?::(\d{2}))?))?$`)

// YAML core tags produced by yaml.v3 tag resolution.
const (
	tagNull      = "!!null"
	tagBool      = "!!bool"
	tagInt       = "!!int"
	tagFloat     = "!!float"
	tagStr       = "!!str"
	tagTimestamp = "!!timestamp"
	tagBinary    = "!!binary"
	tagMerge     = "!!merge"
	tagMap       = "!!map"
	tagSeq       = "!!seq"
)

// Parse decodes the metadata lines into a Map.
//
// Blank or comment-only input yields an empty Map. The root must be a
// mapping. Only plain scalars, sequences and mappings are built; explicit
// tags outside the YAML core schema are rejected. Unquoted timestamps
// become time values, with UTC assumed when no offset is given.
func Parse(metaLines []string) (*meta.Map, error) {
	text := strings.Join(metaLines, "\n")
	if strings.TrimSpace(text) == "" {
		return meta.NewMap(), nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return meta.NewMap(), nil
		}
		root = root.Content[0]
	}
	if root.Kind == 0 {
		return meta.NewMap(), nil
	}

	c := &converter{budget: minValueBudget + valuesPerByte*len(text)}
	v, err := c.value(root, 0)
	if err != nil {
		return nil, err
	}

	switch v.Kind() {
	case meta.KindNull:
		return meta.NewMap(), nil
	case meta.KindMap:
		m, _ := v.Map()
		return m, nil
	default:
		return nil, fmt.Errorf("%w: expected a mapping at line %d, got %s", ErrMalformed, root.Line, v.Kind())
	}
}

// converter builds meta values from a yaml.v3 node tree. budget counts down
// the values it may still build, so alias fan-out cannot grow without bound.
type converter struct {
	budget int
}

func (c *converter) value(n *yaml.Node, depth int) (meta.Value, error) {
	c.budget--
	if c.budget < 0 {
		return meta.Value{}, fmt.Errorf("%w: document expands to too many values at line %d", ErrMalformed, n.Line)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return meta.NullValue(), nil
		}
		return c.value(n.Content[0], depth)
	case yaml.AliasNode:
		if depth >= MaxAliasDepth || n.Alias == nil {
			return meta.Value{}, fmt.Errorf("%w: alias %q nests too deeply at line %d", ErrMalformed, n.Value, n.Line)
		}
		return c.value(n.Alias, depth+1)
	case yaml.SequenceNode:
		if err := checkTag(n, tagSeq); err != nil {
			return meta.Value{}, err
		}
		items := make([]meta.Value, 0, len(n.Content))
		for _, child := range n.Content {
			item, err := c.value(child, depth)
			if err != nil {
				return meta.Value{}, err
			}
			items = append(items, item)
		}
		return meta.ListValue(items...), nil
	case yaml.MappingNode:
		if err := checkTag(n, tagMap); err != nil {
			return meta.Value{}, err
		}
		m := meta.NewMap()
		if err := c.mapping(n, m, depth); err != nil {
			return meta.Value{}, err
		}
		return meta.MapValue(m), nil
	case yaml.ScalarNode:
		return c.scalar(n)
	}
	return meta.Value{}, fmt.Errorf("%w: unsupported node at line %d", ErrMalformed, n.Line)
}

func (c *converter) mapping(n *yaml.Node, m *meta.Map, depth int) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valNode := n.Content[i], n.Content[i+1]

		if keyNode.Kind == yaml.ScalarNode && keyNode.ShortTag() == tagMerge {
			if err := c.merge(valNode, m, depth); err != nil {
				return err
			}
			continue
		}

		key, err := c.key(keyNode, depth)
		if err != nil {
			return err
		}
		val, err := c.value(valNode, depth)
		if err != nil {
			return err
		}
		m.Set(key, val)
	}
	return nil
}

// merge applies a "<<" merge key: values from the referenced mapping(s) are
// copied without overriding keys already present.
func (c *converter) merge(n *yaml.Node, m *meta.Map, depth int) error {
	if depth >= MaxAliasDepth {
		return fmt.Errorf("%w: merge nests too deeply at line %d", ErrMalformed, n.Line)
	}

	var sources []*yaml.Node
	switch target := resolveAlias(n); target.Kind {
	case yaml.MappingNode:
		sources = append(sources, target)
	case yaml.SequenceNode:
		for _, item := range target.Content {
			sources = append(sources, resolveAlias(item))
		}
	default:
		return fmt.Errorf("%w: merge value must be a mapping at line %d", ErrMalformed, n.Line)
	}

	for _, src := range sources {
		if src.Kind != yaml.MappingNode {
			return fmt.Errorf("%w: merge value must be a mapping at line %d", ErrMalformed, src.Line)
		}
		merged := meta.NewMap()
		if err := c.mapping(src, merged, depth+1); err != nil {
			return err
		}
		for _, k := range merged.Keys() {
			if _, exists := m.Get(k); exists {
				continue
			}
			v, _ := merged.Get(k)
			m.Set(k, v)
		}
	}
	return nil
}

// key renders a mapping key as a string. Scalar keys keep their source
// text; dates are written in ISO form.
func (c *converter) key(n *yaml.Node, depth int) (string, error) {
	n = resolveAlias(n)
	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("%w: mapping keys must be scalars at line %d", ErrMalformed, n.Line)
	}
	v, err := c.scalar(n)
	if err != nil {
		return "", err
	}
	if v.IsNull() {
		return "null", nil
	}
	switch v.Kind() {
	case meta.KindTime:
		t, _ := v.Time()
		return t.Format(time.RFC3339Nano), nil
	case meta.KindBool:
		b, _ := v.Bool()
		return strconv.FormatBool(b), nil
	}
	return n.Value, nil
}

func (c *converter) scalar(n *yaml.Node) (meta.Value, error) {
	switch tag := n.ShortTag(); tag {
	case tagNull:
		return meta.NullValue(), nil
	case tagStr:
		// Plain, untagged scalars only: quoting or !!str keeps a string.
		if n.Style == 0 {
			if t, ok := parseTimestamp11(n.Value); ok {
				return meta.TimeValue(t), nil
			}
		}
		return meta.StringValue(n.Value), nil
	case tagBinary:
		return meta.StringValue(n.Value), nil
	case tagBool:
		var b bool
		if err := n.Decode(&b); err != nil {
			return meta.Value{}, decodeErr(n, err)
		}
		return meta.BoolValue(b), nil
	case tagInt:
		var i int64
		if err := n.Decode(&i); err == nil {
			return meta.IntValue(i), nil
		}
		// Out of int64 range: keep the magnitude as a float.
		var f float64
		if err := n.Decode(&f); err != nil {
			return meta.Value{}, decodeErr(n, err)
		}
		return meta.FloatValue(f), nil
	case tagFloat:
		var f float64
		if err := n.Decode(&f); err != nil {
			return meta.Value{}, decodeErr(n, err)
		}
		return meta.FloatValue(f), nil
	case tagTimestamp:
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return meta.Value{}, decodeErr(n, err)
		}
		return meta.TimeValue(t), nil
	default:
		return meta.Value{}, fmt.Errorf("%w: unsupported tag %q at line %d", ErrMalformed, tag, n.Line)
	}
}

// parseTimestamp11 parses the YAML 1.1 timestamp forms yaml.v3 does not
// resolve. Without a zone the time is UTC.
func parseTimestamp11(s string) (time.Time, bool) {
	m := timestamp11.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	num := func(i int) int {
		n, _ := strconv.Atoi(m[i])
		return n
	}

	nsec := 0
	if frac := m[7]; frac != "" {
		if len(frac) > 9 {
			frac = frac[:9]
		}
		nsec, _ = strconv.Atoi(frac + strings.Repeat("0", 9-len(frac)))
	}

	loc := time.UTC
	if m[8] != "" && m[8] != "Z" {
		offset := num(10)*3600 + num(11)*60
		if m[9] == "-" {
			offset = -offset
		}
		loc = time.FixedZone("", offset)
	}

	t := time.Date(num(1), time.Month(num(2)), num(3), num(4), num(5), num(6), nsec, loc)
	// time.Date normalizes out-of-range fields; reject instead.
	if int(t.Month()) != num(2) || t.Day() != num(3) || t.Hour() != num(4) || t.Minute() != num(5) || t.Second() != num(6) {
		return time.Time{}, false
	}
	return t, true
}

// checkTag rejects collections carrying an explicit non-core tag.
func checkTag(n *yaml.Node, want string) error {
	if tag := n.ShortTag(); tag != want {
		return fmt.Errorf("%w: unsupported tag %q at line %d", ErrMalformed, tag, n.Line)
	}
	return nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for i := 0; n.Kind == yaml.AliasNode && n.Alias != nil && i < MaxAliasDepth; i++ {
		n = n.Alias
	}
	return n
}

func decodeErr(n *yaml.Node, err error) error {
	return fmt.Errorf("%w: line %d: %v", ErrMalformed, n.Line, err)
}
