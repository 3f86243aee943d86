package main

import "github.com/bhimrazy/ghweekly/cmd"

func main() {
	cmd.Execute()
}
