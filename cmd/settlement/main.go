package main

import "github.com/myfans/settlement/internal/cli"

func main() {
	cli.Execute()
}
