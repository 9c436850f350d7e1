package main

import "github.com/nfrund/zippytrip/cmd/zippy-cli/cmd"

func main() {
	cmd.Execute()
}
