package main

import (
	"github.com/SundayYogurt/investment_service/config"
	"github.com/SundayYogurt/investment_service/internal/api"
)

func main() {
	//load configuration
	cfg := config.LoadConfig()

	api.StartServer(cfg)
}
