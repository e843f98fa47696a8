package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Host     string   `koanf:"host"`
	Database Database `koanf:"db"`
	Holidays Holidays `koanf:"holidays"`
	Payroll  Payroll  `koanf:"payroll"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

// Holidays configures the public bank-holiday feed used to refresh
// locally stored holidays.
type Holidays struct {
	FeedURL       string `koanf:"feedurl"`
	Region        string `koanf:"region"`
	CacheTTLHours int    `koanf:"cachettlhours"`
}

// Payroll holds wage-calculation settings. Timezone is the civil
// reference timezone used for calendar-day boundaries, weekday and
// night-window classification.
type Payroll struct {
	Timezone string `koanf:"timezone"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Host: "http://localhost:3000",
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "fleetwage",
			Pass:   "",
			Name:   "fleetwage",
			Schema: "fleetwage",
		},
		Holidays: Holidays{
			FeedURL:       "https://www.gov.uk/bank-holidays.json",
			Region:        "england-and-wales",
			CacheTTLHours: 24,
		},
		Payroll: Payroll{
			Timezone: "Europe/London",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "FLEETWAGE_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "FLEETWAGE_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
