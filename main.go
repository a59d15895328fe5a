package main

import "github.com/josephlewis42/replrc/cmd"

func main() {
	cmd.Execute()
}
