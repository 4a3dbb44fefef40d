package main

import "pilgrimage-booking/cmd"

func main() {
	cmd.Execute()
}
