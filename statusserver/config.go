package statusserver

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultSocketPath is where 'serve' accepts status reports unless told otherwise.
const DefaultSocketPath = "/var/run/piclock-status.sock"

// Config is the 'serve' configuration. File values override the defaults,
// command line values override the file.
type Config struct {
	Listen string `yaml:"listen"`
	Socket string `yaml:"socket"`
	User   string `yaml:"user"`
	Secret string `yaml:"secret"`
	Realm  string `yaml:"realm"`
}

func defaultConfig() Config {
	return Config{
		Listen: ":8080",
		Socket: DefaultSocketPath,
		User:   "piclock",
		Realm:  "piclock",
	}
}

func loadConfig(configPath string) (Config, error) {
	cfg := defaultConfig()
	if configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, fmt.Errorf("loadConfig: ReadFile: %s", err.Error())
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("loadConfig: %s: %s", configPath, err.Error())
	}

	return cfg, nil
}

func (o *Opts) config() (Config, error) {
	cfg, err := loadConfig(o.Config)
	if err != nil {
		return cfg, err
	}

	override := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	override(&cfg.Listen, o.Listen)
	override(&cfg.Socket, o.Socket)
	override(&cfg.User, o.User)
	override(&cfg.Secret, o.Secret)
	override(&cfg.Realm, o.Realm)

	return cfg, nil
}
