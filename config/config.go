package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`
	Redis struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Bank struct {
		// MaxTxnLimit caps the amount of a single deposit, withdrawal or
		// transfer. Amounts above it are rejected as invalid.
		MaxTxnLimit  string `mapstructure:"max_txn_limit"`
		ReportsDir   string `mapstructure:"reports_dir"`
		EmailLogFile string `mapstructure:"email_log_file"`
	} `mapstructure:"bank"`
}

var AppConfig Config

func LoadConfig(path string) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yml")

	viper.SetDefault("bank.max_txn_limit", "1000000")
	viper.SetDefault("bank.reports_dir", "reports")
	viper.SetDefault("bank.email_log_file", "reports/email_log.txt")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file, %s", err)
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
}
