package main

import "github.com/uyuni-project/dump-extract/cmd"

func main() {
	cmd.Execute()
}
