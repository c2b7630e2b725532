package main

import "martianoff/gala/cmd/gala/commands"

func main() {
	commands.Execute()
}
