package preset

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-voicefx/dsp/pipeline"
	"github.com/cwbudde/algo-voicefx/dsp/primitive"
)

//go:embed presets.yaml
var presetsYAML []byte

// ErrMalformed is returned for a preset table that does not follow the
// node grammar.
var ErrMalformed = errors.New("preset: malformed preset table")

const mixKey = "mix"

type table struct {
	Presets yaml.Node `yaml:"presets"`
}

// Load decodes a YAML preset table into a new registry validated against
// lib. The registry is returned unsealed so callers may add entries.
func Load(r io.Reader, lib *primitive.Library) (*Registry, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var t table
	if err := dec.Decode(&t); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrMalformed)
		}

		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if t.Presets.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: presets must be a mapping", ErrMalformed, t.Presets.Line)
	}

	reg := NewRegistry(lib)

	content := t.Presets.Content
	for i := 0; i+1 < len(content); i += 2 {
		name := content[i].Value

		root, err := parseNode(content[i+1])
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}

		if err := reg.Register(name, root); err != nil {
			return nil, err
		}
	}

	return reg, nil
}

// LoadFile is Load over the file at path.
func LoadFile(path string, lib *primitive.Library) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("preset: open table: %w", err)
	}
	defer f.Close()

	return Load(f, lib)
}

// Default returns the sealed registry built from the embedded preset table.
// It is built once and shared.
var Default = sync.OnceValues(func() (*Registry, error) {
	reg, err := Load(bytes.NewReader(presetsYAML), primitive.DefaultLibrary())
	if err != nil {
		return nil, err
	}

	reg.Seal()

	return reg, nil
})

func parseNode(y *yaml.Node) (pipeline.Node, error) {
	if y.Kind == yaml.AliasNode {
		y = y.Alias
	}

	switch y.Kind {
	case yaml.SequenceNode:
		children, err := parseList(y)
		if err != nil {
			return nil, err
		}

		return pipeline.NewChain(children...)

	case yaml.MappingNode:
		if len(y.Content) != 2 {
			return nil, fmt.Errorf("%w: line %d: node map must have exactly one key, has %d",
				ErrMalformed, y.Line, len(y.Content)/2)
		}

		key, val := y.Content[0], y.Content[1]
		if key.Value == mixKey {
			return parseMix(val)
		}

		return parseStage(key, val)

	default:
		return nil, fmt.Errorf("%w: line %d: expected list or map", ErrMalformed, y.Line)
	}
}

func parseList(y *yaml.Node) ([]pipeline.Node, error) {
	out := make([]pipeline.Node, 0, len(y.Content))

	for _, item := range y.Content {
		n, err := parseNode(item)
		if err != nil {
			return nil, err
		}

		out = append(out, n)
	}

	return out, nil
}

func parseMix(y *yaml.Node) (pipeline.Node, error) {
	if y.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: line %d: mix expects a list of branches", ErrMalformed, y.Line)
	}

	branches, err := parseList(y)
	if err != nil {
		return nil, err
	}

	return pipeline.NewMixBus(branches...)
}

func parseStage(key, val *yaml.Node) (pipeline.Node, error) {
	kind, err := primitive.ParseKind(key.Value)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", key.Line, err)
	}

	var params map[string]float64

	switch val.Kind {
	case yaml.ScalarNode:
		if val.Tag != "!!null" {
			return nil, fmt.Errorf("%w: line %d: %s parameters must be a map", ErrMalformed, val.Line, kind)
		}
	case yaml.MappingNode:
		if err := val.Decode(&params); err != nil {
			return nil, fmt.Errorf("%w: line %d: %s: %w", ErrMalformed, val.Line, kind, err)
		}
	default:
		return nil, fmt.Errorf("%w: line %d: %s parameters must be a map", ErrMalformed, val.Line, kind)
	}

	d, err := primitive.New(kind, params)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", val.Line, err)
	}

	return pipeline.NewStage(d), nil
}
