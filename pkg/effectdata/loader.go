package effectdata

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"forge/pkg/effect"
)

// LoadFile reads and builds one EffectData from the YAML document at path.
func LoadFile(path string) (*effect.EffectData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("effectdata: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes one EffectData document from r.
func Load(r io.Reader) (*effect.EffectData, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("effectdata: decode: %w", err)
	}
	return doc.Build()
}

// LoadAllFile reads a "---"-separated multi-document YAML stream at path,
// building one EffectData per document.
func LoadAllFile(path string) ([]*effect.EffectData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("effectdata: open %s: %w", path, err)
	}
	defer f.Close()
	return LoadAll(f)
}

// LoadAll decodes every document in the "---"-separated stream r.
func LoadAll(r io.Reader) ([]*effect.EffectData, error) {
	dec := yaml.NewDecoder(r)
	var out []*effect.EffectData
	for {
		var doc Document
		err := dec.Decode(&doc)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("effectdata: decode: %w", err)
		}
		ed, err := doc.Build()
		if err != nil {
			return nil, err
		}
		out = append(out, ed)
	}
	return out, nil
}
