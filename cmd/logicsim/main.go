// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command logicsim loads circuit descriptions and simulates them.
//
//	logicsim run adder.yaml --set a=high --set b=high
//	logicsim graph adder.yaml --format dot | dot -Tsvg > adder.svg
//	logicsim check adder.yaml
//	logicsim serve adder.yaml --listen :8080
//
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
