package main

import "github.com/pytogo/website/pkg/cli"

func main() {
	cli.Execute()
}
