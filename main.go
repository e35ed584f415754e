package main

import "kenics-pageant-site/cmd"

func main() {
	cmd.Run()
}
