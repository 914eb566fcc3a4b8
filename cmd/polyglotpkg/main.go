package main

import "polyglotpkg/internal/cli"

func main() {
	cli.Execute()
}
