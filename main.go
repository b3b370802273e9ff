package main

import "github.com/itsmostafa/catpage/cmd"

func main() {
	cmd.Execute()
}
