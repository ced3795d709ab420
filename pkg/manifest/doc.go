// Package manifest reads and writes package.json files for linkdeps.
//
// # Reading
//
// [Parse] decodes a manifest into a [PackageDescriptor]. Dependency maps
// are kept as ordered [Declaration] slices in the order they were authored,
// because resolution order (and therefore diff output and conflict
// messages) must be reproducible. Parsing is done with gjson, which walks
// objects in document order.
//
// The linkdeps-specific fields live under a "linkdeps" key:
//
//	{
//	  "name": "app",
//	  "linkdeps": {
//	    "own":   {"dependencies": {"mkdirp": "^0.5.0"}},
//	    "local": {"dependencies": {"libs/a": "*"}, "devDependencies": {"tools/b": "*"}}
//	  }
//	}
//
// "own" overrides the package's native dependencies/devDependencies.
// "local" maps a path (relative to the declaring package) to the literal "*".
//
// # Writing
//
// [Merge] replaces the dependencies and devDependencies sections of an
// existing manifest while leaving every other field untouched and in
// place. [Save] writes the result as package.json in a directory.
package manifest
