package main

import "valet/cmd"

func main() {
	cmd.Execute()
}
