package main

import "github.com/tasktamer/tasktamer/cmd"

func main() {
	cmd.Execute()
}
