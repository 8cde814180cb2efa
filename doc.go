/*
Package carve is a content aware image resize library. It rescales the
source image seamlessly both vertically and horizontally by eliminating
the less important parts of the image.

The package provides a command line interface, supporting various flags
for different types of rescaling operations. To check the supported
commands type:

	$ carve --help

In case you wish to integrate the API in a self constructed environment
here is a simple example:

	package main

	import (
		"fmt"
		"github.com/seamlab/carve"
	)

	func main() {
		p := &carve.Processor{
			// Initialize struct variables
		}

		if err := p.Process(in, out); err != nil {
			fmt.Printf("Error rescaling image: %s", err.Error())
		}
	}
*/
package carve
