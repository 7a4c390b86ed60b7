package main

import "ahha/cmd"

func main() {
	cmd.Execute()
}
