package scrub_test

import (
	"fmt"

	"github.com/jmylchreest/scrub/pkg/cleaner/scrub"
)

func ExampleClean() {
	result := scrub.Clean(
		`<div class="card shadow"><div class="body" style="padding:0"><p class="lead">Hello</p></div></div>`,
		scrub.WithStripStyles(true),
		scrub.WithBeautify(false),
	)
	if result.Err != nil {
		fmt.Println("error:", result.Err)
		return
	}
	fmt.Println(result.HTML)

	if stats, ok := result.Stats(); ok {
		fmt.Println("classes removed:", stats.ClassesRemoved)
		fmt.Println("wrappers bubbled:", stats.DivsBubbledUp)
	}
	// Output:
	// <div><p>Hello</p></div>
	// classes removed: 4
	// wrappers bubbled: 1
}

func ExampleClean_preserveClasses() {
	result := scrub.Clean(
		`<div class="row col-md-6 legacy-wrapper">x</div>`,
		scrub.WithPreserveClasses(scrub.Exact("row"), scrub.MustPattern("^col-")),
		scrub.WithBeautify(false),
	)
	fmt.Println(result.HTML)
	// Output:
	// <div class="row col-md-6">x</div>
}

func ExampleStripClasses() {
	fmt.Println(scrub.StripClasses(`<div class="test"><h1>Some Title</h1></div>`))
	// Output:
	// <div><h1>Some Title</h1></div>
}

func ExampleIsValidHTML() {
	fmt.Println(scrub.IsValidHTML(`<div class="test"></div>`))
	fmt.Println(scrub.IsValidHTML(`<div class="test"></div`))
	fmt.Println(scrub.IsValidHTML(`plain text`))
	// Output:
	// true
	// false
	// false
}
