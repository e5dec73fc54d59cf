package main

import "github.com/rskv-p/stuff/cmd"

func main() {
	cmd.Execute()
}
