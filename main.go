package main

import "github.com/kamusis/kwfinder/cmd"

func main() {
	cmd.Execute()
}
