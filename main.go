package main

import "github.com/santaclaude2025/tgstats/cmd"

func main() {
	cmd.Execute()
}
