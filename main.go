package main

import "github.com/darmiel/homeyctl/cmd"

func main() {
	cmd.Execute()
}
