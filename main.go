package main

import "github.com/stevehiehn/chatrun/cmd"

func main() {
	cmd.Execute()
}
