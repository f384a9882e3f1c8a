package main

import "github.com/dogeorg/wifid/cmd/wifid/cmd"

func main() {
	cmd.Execute()
}
