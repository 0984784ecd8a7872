package config

import (
	"flag"
	"os"
	"time"

	"github.com/and161185/autotrade/internal/model"
)

type Config struct {
	RunAddress           string
	DatabaseURI          string
	SecretKey            string
	DemoPassword         string
	LogFile              string
	InvoiceSweepInterval time.Duration
	Payee                model.BankAccount
}

func NewConfig() *Config {
	cfg := &Config{}
	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "HTTP server address")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "DB connection string, in-memory demo store when empty")
	flag.StringVar(&cfg.SecretKey, "k", "dev-secret", "token signing key")
	flag.StringVar(&cfg.DemoPassword, "p", "password123", "password of the seeded demo users")
	flag.StringVar(&cfg.LogFile, "l", "server.log", "log file, written next to stdout")
	flag.DurationVar(&cfg.InvoiceSweepInterval, "i", time.Minute, "invoice status sweep interval")
	flag.Parse()

	ReadServerEnvironment(cfg)

	return cfg
}

func ReadServerEnvironment(cfg *Config) {
	if runAddress := os.Getenv("RUN_ADDRESS"); runAddress != "" {
		cfg.RunAddress = runAddress
	}

	if databaseURI := os.Getenv("DATABASE_URI"); databaseURI != "" {
		cfg.DatabaseURI = databaseURI
	}

	if secretKey := os.Getenv("SECRET_KEY"); secretKey != "" {
		cfg.SecretKey = secretKey
	}

	if demoPassword := os.Getenv("DEMO_PASSWORD"); demoPassword != "" {
		cfg.DemoPassword = demoPassword
	}

	if logFile := os.Getenv("LOG_FILE"); logFile != "" {
		cfg.LogFile = logFile
	}

	if interval := os.Getenv("INVOICE_SWEEP_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil && d > 0 {
			cfg.InvoiceSweepInterval = d
		}
	}

	if bank := os.Getenv("PAYEE_BANK_NAME"); bank != "" {
		cfg.Payee.BankName = bank
	}
	if branch := os.Getenv("PAYEE_BRANCH_NAME"); branch != "" {
		cfg.Payee.BranchName = branch
	}
	if accountType := os.Getenv("PAYEE_ACCOUNT_TYPE"); accountType != "" {
		cfg.Payee.AccountType = accountType
	}
	if number := os.Getenv("PAYEE_ACCOUNT_NUMBER"); number != "" {
		cfg.Payee.AccountNumber = number
	}
	if holder := os.Getenv("PAYEE_ACCOUNT_HOLDER"); holder != "" {
		cfg.Payee.AccountHolder = holder
	}
}
