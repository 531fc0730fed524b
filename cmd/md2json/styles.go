package main

import (
	"fmt"

	md2json "github.com/alnah/go-md2json"
)

// runStyles lists the registered highlight styles, one per line.
func runStyles(env *Environment) {
	for _, name := range md2json.Styles() {
		fmt.Fprintln(env.Stdout, name)
	}
}
