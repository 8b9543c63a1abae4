package main

import "github.com/yunesj/picture-rotation-fixer/cmd/rotatefix/cmd"

func main() {
	cmd.Execute()
}
