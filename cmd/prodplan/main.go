package main

import "prodplan/internal/adapters/cli"

func main() {
	cli.Execute()
}
