package main

import "b2bees-backend/cmd/beesctl/commands"

func main() {
	commands.Execute()
}
