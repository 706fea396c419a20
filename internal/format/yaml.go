package format

import "gopkg.in/yaml.v3"

// YAML is an alternative human-editable charset file format.
type YAML struct{}

// Marshal serializes f to YAML bytes.
func (YAML) Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// Unmarshal deserializes YAML bytes into a File.
func (YAML) Unmarshal(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Name returns "yaml".
func (YAML) Name() string { return "yaml" }

// Extensions returns the extensions served by the YAML format.
func (YAML) Extensions() []string { return []string{"yaml", "yml"} }
