package main

import (
	"fmt"
	"os"
)

type Config struct {
	Port string
}

func LoadConfig() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	return &Config{
		Port: port,
	}
}

func (c *Config) Print() {
	fmt.Println("Listening on port:", c.Port)
}
