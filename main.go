package main

import "neocomm-backend/cmd"

func main() {
	cmd.Run()
}
