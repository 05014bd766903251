package main

import "time"

type Config struct {
	LogLevel            string        `env:"LOG_LEVEL,default=info"`
	CipherSuite         string        `env:"CIPHER_SUITE,default=aes-gcm"`
	TypingClearInterval time.Duration `env:"TYPING_CLEAR_INTERVAL,default=3s"`
	SeedDemoData        bool          `env:"SEED_DEMO_DATA,default=true"`
}
