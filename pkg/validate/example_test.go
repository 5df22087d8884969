package validate_test

import (
	"fmt"

	"github.com/matzehuels/depdoc/pkg/deps"
	"github.com/matzehuels/depdoc/pkg/validate"
)

func ExampleCompare() {
	installed := deps.NewInventory(
		deps.Package{Manager: deps.Composer, Name: "monolog/monolog", Version: "2.9.2"},
		deps.Package{Manager: deps.Node, Name: "lodash", Version: "4.17.21"},
	)
	documented := deps.NewInventory(
		deps.Package{Manager: deps.Composer, Name: "monolog/monolog", Version: "2.9.1"},
		deps.Package{Manager: deps.Composer, Name: "psr/log", Version: "3.0.0"},
		deps.Package{Manager: deps.Cargo, Name: "serde", Version: "1.0.193"},
	)

	for _, r := range validate.Compare(validate.Strict(), installed, documented) {
		fmt.Println(r)
	}
	// Output:
	// [composer] psr/log: documented with version "3.0.0" but not installed
	// [composer] monolog/monolog: version mismatch, documented "2.9.1" but installed "2.9.2"
	// [node] lodash: installed with version "4.17.21" but not documented
	// [cargo] package manager is documented but not supported
}

func ExampleNewStrictMode() {
	installed := deps.NewInventory(deps.Package{Manager: deps.Node, Name: "left-pad", Version: "1.3.0"})
	documented := deps.NewInventory()

	lenient := validate.NewStrictMode(true, true, false)
	fmt.Println(len(validate.Compare(lenient, installed, documented)))
	fmt.Println(len(validate.Compare(validate.Strict(), installed, documented)))
	// Output:
	// 0
	// 1
}
