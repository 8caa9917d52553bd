package main

import "github.com/sumireworks/ybarc/cmd"

func main() {
	cmd.Execute()
}
