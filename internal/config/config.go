package config

import "github.com/caarlos0/env/v9"

type Config struct {
	Port                   string `env:"PORT" envDefault:"8080"`
	DBUser                 string `env:"DB_USER,required"`
	DBPassword             string `env:"DB_PASSWORD,required"`
	DBHost                 string `env:"DB_HOST,required"` // e.g. tcp(host:3306) or unix(/cloudsql/instance)
	DBName                 string `env:"DB_NAME,required"`
	DBPort                 string `env:"DB_PORT" envDefault:"3306"`
	InstanceConnectionName string `env:"INSTANCE_CONNECTION_NAME"`
	FirebaseProjectID      string `env:"FIREBASE_PROJECT_ID"`
	StorageBucket          string `env:"STORAGE_BUCKET"`
	CredentialsFile        string `env:"GOOGLE_APPLICATION_CREDENTIALS"`

	// StrictStatusFlow makes request status transitions monotonic:
	// listing an item or scheduling a meeting never moves a request
	// backwards or out of a terminal state. Off by default to match
	// the historical latest-action-wins behavior.
	StrictStatusFlow bool `env:"STRICT_STATUS_FLOW" envDefault:"false"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
