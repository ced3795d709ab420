package linkdeps_test

import (
	"fmt"

	"github.com/matzehuels/linkdeps/pkg/linkdeps"
)

func ExampleDiff() {
	prev := map[string]string{"x": "^1.0.0", "old": "*"}
	next := map[string]string{"x": "^1.0.0", "a": "^2.0.0"}

	for _, e := range linkdeps.Diff(prev, next) {
		fmt.Printf("%s %s: %s\n", e.Action, e.Name, e.Spec)
	}
	// Output:
	// + a: ^2.0.0
	//   x: ^1.0.0
	// - old: *
}
