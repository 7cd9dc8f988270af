package main

import "github.com/acdenisSK/release-maker/cmd"

func main() {
	cmd.Run()
}
