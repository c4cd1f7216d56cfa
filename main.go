package main

import "github.com/tmaia/bugreport/internal/commands"

func main() {
	commands.Execute()
}
