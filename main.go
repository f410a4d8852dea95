package main

import "github.com/peekknuf/studentqa/cmd"

func main() {
	cmd.Execute()
}
