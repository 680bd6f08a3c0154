package main

import "github.com/wispkit/qrforge/cmd/qrforge/cmd"

func main() {
	cmd.Execute()
}
