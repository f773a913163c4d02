package main

import "github.com/tessro/play-notion/internal/cli"

func main() {
	cli.Execute()
}
