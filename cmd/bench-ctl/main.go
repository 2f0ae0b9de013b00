package main

import (
	"tarediiran-industries.com/bench-tools/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		panic(err)
	}
}
