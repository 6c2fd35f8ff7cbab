package main

import (
	"os"

	"github.com/weijenchou/dogdietlinebot/internal/cli"
)

// @title Dog Diet Assistant API
// @version 1.0
// @description Perfiles de perros, metas nutricionales, registro diario y turnos de conversación.
// @BasePath /
func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
