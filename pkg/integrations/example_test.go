package integrations_test

import (
	"fmt"

	"github.com/matzehuels/pypin/pkg/integrations"
)

func ExampleNormalizePkgName() {
	fmt.Println(integrations.NormalizePkgName("Typing_Extensions"))
	fmt.Println(integrations.NormalizePkgName("zope.interface"))
	// Output:
	// typing-extensions
	// zope-interface
}
