package manifest

import (
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"

	"github.com/matzehuels/linkdeps/pkg/errors"
)

// FileName is the manifest file read from every package directory.
const FileName = "package.json"

// Section keys used in manifests.
const (
	KeyDependencies    = "dependencies"
	KeyDevDependencies = "devDependencies"
)

// Declaration is one name → specifier pair from a dependency map.
type Declaration struct {
	Name string
	Spec string
}

// Declarations holds the regular and development partitions of a
// dependency map, each in authored order.
type Declarations struct {
	Dependencies    []Declaration
	DevDependencies []Declaration
}

// BinEntry is one executable exported through the "bin" field.
type BinEntry struct {
	Name string // Executable name (the package name for the string form)
	Path string // Path relative to the package directory
}

// PackageDescriptor is the parsed content of a package.json.
type PackageDescriptor struct {
	Name    string
	Version string
	Private bool

	// Native dependency fields.
	Dependencies    []Declaration
	DevDependencies []Declaration

	// Own overrides the native fields when present ("linkdeps.own").
	Own *Declarations
	// Local lists local packages ("linkdeps.local").
	Local *Declarations

	Bin []BinEntry

	// Raw is the manifest as read, kept so it can be rewritten without
	// losing unrelated fields.
	Raw []byte
}

// OwnDeclarations returns the override declarations when the manifest has
// them, and its native dependency fields otherwise.
func (d *PackageDescriptor) OwnDeclarations() Declarations {
	if d.Own != nil {
		return *d.Own
	}
	return Declarations{
		Dependencies:    d.Dependencies,
		DevDependencies: d.DevDependencies,
	}
}

// LocalDeclarations returns the local package declarations, empty when the
// manifest has none.
func (d *PackageDescriptor) LocalDeclarations() Declarations {
	if d.Local != nil {
		return *d.Local
	}
	return Declarations{}
}

// Sections returns the native dependency fields as plain maps. This is the
// previous state a new resolution result is diffed against.
func (d *PackageDescriptor) Sections() Sections {
	return Sections{
		Dependencies:    toMap(d.Dependencies),
		DevDependencies: toMap(d.DevDependencies),
	}
}

// Path returns the manifest path for a package directory.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Read reads and parses the manifest in dir.
func Read(dir string) (*PackageDescriptor, error) {
	path := Path(dir)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "cannot parse %s", path)
	}
	return d, nil
}

// Parse decodes manifest JSON.
func Parse(data []byte) (*PackageDescriptor, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "manifest must be a JSON object")
	}

	d := &PackageDescriptor{
		Name:            root.Get("name").String(),
		Version:         root.Get("version").String(),
		Private:         root.Get("private").Bool(),
		Dependencies:    declarations(root.Get(KeyDependencies)),
		DevDependencies: declarations(root.Get(KeyDevDependencies)),
		Own:             partitions(root.Get("linkdeps.own")),
		Local:           partitions(root.Get("linkdeps.local")),
		Raw:             data,
	}
	d.Bin = bins(root.Get("bin"), d.Name)
	return d, nil
}

func partitions(r gjson.Result) *Declarations {
	if !r.IsObject() {
		return nil
	}
	return &Declarations{
		Dependencies:    declarations(r.Get(KeyDependencies)),
		DevDependencies: declarations(r.Get(KeyDevDependencies)),
	}
}

func declarations(r gjson.Result) []Declaration {
	if !r.IsObject() {
		return nil
	}
	var out []Declaration
	r.ForEach(func(key, value gjson.Result) bool {
		out = append(out, Declaration{Name: key.String(), Spec: value.String()})
		return true
	})
	return out
}

func bins(r gjson.Result, pkgName string) []BinEntry {
	switch {
	case r.Type == gjson.String:
		if r.String() == "" {
			return nil
		}
		return []BinEntry{{Name: pkgName, Path: r.String()}}
	case r.IsObject():
		var out []BinEntry
		r.ForEach(func(key, value gjson.Result) bool {
			out = append(out, BinEntry{Name: key.String(), Path: value.String()})
			return true
		})
		return out
	}
	return nil
}

func toMap(decls []Declaration) map[string]string {
	m := make(map[string]string, len(decls))
	for _, d := range decls {
		m[d.Name] = d.Spec
	}
	return m
}
