package main

import (
	"log"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name 服务名称
	Name = "site_radar"
	// Version 版本号
	Version string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("site_radar: %v", err)
	}
}
