package main

import "github.com/gaurav-prasanna/lmdpipe/cmd"

func main() {
	cmd.Execute()
}
