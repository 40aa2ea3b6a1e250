package main

import "github.com/dzjyyds666/tq/cmd"

func main() {
	cmd.Execute()
}
