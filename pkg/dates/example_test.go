package dates_test

import (
	"fmt"

	"github.com/matzehuels/pypin/pkg/dates"
)

func ExampleParse() {
	for _, s := range []string{"14-03-2021", "03/14/2021", "14 March 2021"} {
		d, err := dates.Parse(s)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		fmt.Println(d)
	}
	// Output:
	// 2021-03-14
	// 2021-03-14
	// 2021-03-14
}
