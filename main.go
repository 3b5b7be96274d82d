package main

import "github.com/kozaktomas/face-vault/cmd"

func main() {
	cmd.Execute()
}
