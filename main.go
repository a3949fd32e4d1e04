package main

import (
	"github.com/portaleuropa/testimonial_service/config"
	"github.com/portaleuropa/testimonial_service/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
