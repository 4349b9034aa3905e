package main

import (
	"log"
	"os"
	"riskmodel/cmd"
)

func main() {
	deps, err := cmd.InitializeDependencies(os.Getenv("RISK_CONFIG_FILE"))
	if err != nil {
		log.Fatal(err)
	}
	deps.ApiHandler.Logger.Infof("starting api on port %d", deps.Config.Port)
	err = deps.ApiHandler.StartApi(deps.Config.Port)
	if err != nil {
		log.Fatal(err)
	}
}
