package main

import "kanban-today.com/kanban-today/cmd"

func main() {
	cmd.Execute()
}
