package main

import "cinelog/cmd/cli/command"

func main() {
	command.Execute()
}
