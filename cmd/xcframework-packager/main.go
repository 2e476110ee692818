package main

import (
	"github.com/oshokin/xcframework-packager/cmd/xcframework-packager/cmd"
)

func main() {
	cmd.Execute()
}
