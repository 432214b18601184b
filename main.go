package main

import "github.com/gabriel-melki/video-compressing/cmd"

func main() {
	cmd.Execute()
}
