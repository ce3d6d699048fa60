// Command hidralife tracks daily water intake from the terminal.
package main

import "github.com/theirongolddev/hidralife/cmd"

func main() {
	cmd.Execute()
}
