package manifest

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Sections holds the two dependency sections written to a manifest.
type Sections struct {
	Dependencies    map[string]string
	DevDependencies map[string]string
}

var prettyOptions = &pretty.Options{Width: 80, Indent: "  "}

// Merge returns base with its dependencies and devDependencies replaced by
// s. An empty section removes the key. All other fields keep their value
// and position.
func Merge(base []byte, s Sections) ([]byte, error) {
	if len(base) == 0 {
		base = []byte("{}")
	}
	out, err := setSection(base, KeyDependencies, s.Dependencies)
	if err != nil {
		return nil, err
	}
	out, err = setSection(out, KeyDevDependencies, s.DevDependencies)
	if err != nil {
		return nil, err
	}
	return pretty.PrettyOptions(out, prettyOptions), nil
}

// Save merges s into base and writes the result to dir/package.json,
// creating dir when needed.
func Save(dir string, base []byte, s Sections) error {
	data, err := Merge(base, s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(Path(dir), data, 0644)
}

func setSection(data []byte, key string, deps map[string]string) ([]byte, error) {
	if len(deps) == 0 {
		return sjson.DeleteBytes(data, key)
	}
	// encoding/json emits map keys sorted, which is the section order we want.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(deps); err != nil {
		return nil, err
	}
	return sjson.SetRawBytes(data, key, bytes.TrimSpace(buf.Bytes()))
}
