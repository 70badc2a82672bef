package main

import "github.com/momeni/dealerweb/cmd/dealerweb/command"

func main() {
	command.Execute()
}
