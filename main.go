package main

import "github.com/SafeMPC/pox-signer/cmd"

func main() {
	cmd.Execute()
}
