package main

import "crush/cmd"

func main() {
	cmd.Execute()
}
