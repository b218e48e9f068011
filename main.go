package main

import "github.com/jetaudio/jetaudio/internal/cli"

func main() {
	cli.Execute()
}
