package main

import "github.com/theirongolddev/spendora/cmd"

func main() {
	cmd.Execute()
}
