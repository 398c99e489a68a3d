package main

import (
	"flag"
)

func main() {
	flag.Parse()

	app := NewApp()

	if flag.NArg() > 0 {
		app.PathLabel.SetText(flag.Arg(0))
	}

	app.Run()
}
