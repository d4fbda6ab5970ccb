package main

import "github.com/visagelab/faceanalysis/cmd"

func main() {
	cmd.Execute()
}
