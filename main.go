package main

import (
	"FitPulse/cmd"
)

func main() {
	cmd.Execute()
}
