package main

import (
	"go.ntppool.org/whowon/cli"
	basecmd "go.ntppool.org/whowon/cmd"
)

func main() {
	basecmd.Run(&cli.Cmd{}, "whowon", "Pick the entries closest to a winning number")
}
