package main

import "github.com/Tiliavir/trivial-time-client/cmd"

func main() {
	cmd.Execute()
}
