package main

import "insiderwire/internal/cli"

func main() {
	cli.Run()
}
