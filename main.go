package main

import "zen/cmd"

func main() {
	cmd.Execute()
}
