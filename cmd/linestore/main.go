package main

import "linestore/cmd/linestore/cmd"

func main() {
	cmd.Execute()
}
