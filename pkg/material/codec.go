package material

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes a scalar as Name, null as None, a sequence as Tuple
// and a mapping as Faces.
func (s *Spec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*s = None()
			return nil
		}
		*s = Name(value.Value)
		return nil
	case yaml.SequenceNode:
		var names []string
		if err := value.Decode(&names); err != nil {
			return fmt.Errorf("decoding material tuple: %w", err)
		}
		*s = Tuple(names...)
		return nil
	case yaml.MappingNode:
		var f FaceSet
		if err := value.Decode(&f); err != nil {
			return fmt.Errorf("decoding material faces: %w", err)
		}
		*s = Faces(f)
		return nil
	default:
		return fmt.Errorf("line %d: unsupported material spec node", value.Line)
	}
}

// MarshalYAML encodes the spec in the same shapes UnmarshalYAML accepts.
func (s Spec) MarshalYAML() (any, error) {
	switch s.kind {
	case KindName:
		return s.names[0], nil
	case KindTuple:
		return s.names, nil
	case KindFaces:
		return s.faces, nil
	default:
		return nil, nil
	}
}

// UnmarshalJSON mirrors UnmarshalYAML for JSON documents.
func (s *Spec) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = None()
		return nil
	}
	switch data[0] {
	case '"':
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*s = Name(name)
	case '[':
		var names []string
		if err := json.Unmarshal(data, &names); err != nil {
			return fmt.Errorf("decoding material tuple: %w", err)
		}
		*s = Tuple(names...)
	case '{':
		var f FaceSet
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("decoding material faces: %w", err)
		}
		*s = Faces(f)
	default:
		return fmt.Errorf("unsupported material spec %q", data)
	}
	return nil
}

// MarshalJSON encodes the spec in the same shapes UnmarshalJSON accepts.
func (s Spec) MarshalJSON() ([]byte, error) {
	v, _ := s.MarshalYAML()
	return json.Marshal(v)
}
