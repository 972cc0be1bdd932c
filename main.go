package main

import "github.com/HeyAvijitRoy/cip-stem-intelligence/cmd"

func main() {
	cmd.Execute()
}
