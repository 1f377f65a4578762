package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WriteScene writes a scene to a YAML file
func WriteScene(s *Scene, path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// ReadScene reads a scene from a YAML file
func ReadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", path, err)
	}

	return &s, nil
}

// UnmarshalYAML fills fields missing from the file with NewLayer defaults,
// so a layer without scale or opacity is drawn unscaled and fully visible.
func (l *Layer) UnmarshalYAML(value *yaml.Node) error {
	type plain Layer
	out := plain(NewLayer("", ""))
	if err := value.Decode(&out); err != nil {
		return err
	}
	*l = Layer(out)
	return nil
}
