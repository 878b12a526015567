package main

import "invconv/internal/cli"

func main() {
	cli.Execute()
}
