package main

import (
	"flag"
	"log"

	"github.com/alexandre-normand/norrisbot"
	"github.com/alexandre-normand/norrisbot/config"
)

func main() {
	configurationPath := flag.String("config", "", "optional path to a configuration file (any format viper reads)")
	flag.Parse()

	v := config.NewViperWithDefaults()

	if *configurationPath != "" {
		v.SetConfigFile(*configurationPath)
		if err := v.ReadInConfig(); err != nil {
			log.Fatalf("Error loading configuration file [%s]: %v", *configurationPath, err)
		}
	}

	if v.GetString(config.TokenKey) == "" {
		log.Fatal("Missing slack token: set NORRISBOT_TOKEN or the token configuration key")
	}

	bot, err := norrisbot.New(v.GetString(config.BotNameKey), v)
	if err != nil {
		log.Fatal(err)
	}
	defer bot.Close()

	if err := bot.Run(); err != nil {
		log.Fatal(err)
	}
}
