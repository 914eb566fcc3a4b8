package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ManifestFileName is the project manifest looked up at the workspace root.
const ManifestFileName = "package.json"

// Manifest is the action project descriptor. Exactly one of Vro or Abx is
// expected to be set; which one decides the execution platform.
type Manifest struct {
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Version      string            `json:"version"`
	Files        []string          `json:"files,omitempty"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
	Platform     PlatformSpec      `json:"platform"`
	Vro          *VroSpec          `json:"vro,omitempty"`
	Abx          *AbxSpec          `json:"abx,omitempty"`
}

type PlatformSpec struct {
	Action        string   `json:"action"`
	Entrypoint    string   `json:"entrypoint"`
	Runtime       string   `json:"runtime"`
	Base          string   `json:"base,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	MemoryLimitMb int      `json:"memoryLimitMb,omitempty"`
	TimeoutSec    int      `json:"timeoutSec,omitempty"`
	Files         []string `json:"files,omitempty"`
}

type VroSpec struct {
	Module     string `json:"module"`
	ID         string `json:"id,omitempty"`
	Inputs     Inputs `json:"inputs,omitempty"`
	OutputType string `json:"outputType,omitempty"`
}

type AbxSpec struct {
	Inputs Inputs `json:"inputs,omitempty"`
}

// BundleAllowList returns the explicit file patterns of the manifest. The
// top-level "files" entry wins over "platform.files".
func (m Manifest) BundleAllowList() []string {
	if len(m.Files) > 0 {
		return m.Files
	}
	return m.Platform.Files
}

// Input is one declared action parameter.
type Input struct {
	Name string
	Type string
}

// Inputs keeps action parameters in declaration order. It is encoded as a
// JSON object of name to type.
type Inputs []Input

func (in *Inputs) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*in = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("inputs must be an object of name to type")
	}
	var result Inputs
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("inputs key must be a string")
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("input %q: %w", key, err)
		}
		result = append(result, Input{Name: key, Type: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*in = result
	return nil
}

func (in Inputs) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, input := range in {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(input.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(input.Type)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
