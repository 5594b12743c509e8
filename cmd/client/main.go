package main

import "reviewroom/cmd/client/cmd"

func main() {
	cmd.Execute()
}
