package main

import (
	"github.com/printcraft/storefront/app/cmd"
	"github.com/printcraft/storefront/app/configs"
)

func main() {
	env := configs.LoadEnv()

	cmd.RunCli(env)
}
