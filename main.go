package main

import "asinwatch/internal/cli"

func main() {
	cli.Execute()
}
