package main

import "github.com/emedina/horas/cmd"

func main() {
	cmd.Execute()
}
