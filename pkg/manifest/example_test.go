package manifest_test

import (
	"fmt"

	"github.com/matzehuels/pypin/pkg/manifest"
)

func ExampleClassify() {
	for _, raw := range []string{"# pinned", "-r base.txt", "flask>=1.0", "requests"} {
		l := manifest.Classify(raw)
		fmt.Printf("%-12s %-11s %q\n", raw, l.Kind, l.Name)
	}
	// Output:
	// # pinned     comment     ""
	// -r base.txt  directive   ""
	// flask>=1.0   requirement "flask"
	// requests     requirement "requests"
}
