package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DBType      string `envconfig:"DB_TYPE" default:"sqlite"`
	PostgresURL string `envconfig:"POSTGRES_URL"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"employees.db"`

	MongoURL      string `envconfig:"MONGO_URL"`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"employeemanagement"`

	DynamoTable    string `envconfig:"DYNAMODB_TABLE" default:"employee_details"`
	DynamoEndpoint string `envconfig:"DYNAMODB_ENDPOINT"`
	AWSRegion      string `envconfig:"AWS_REGION" default:"us-east-1"`

	Port string `envconfig:"PORT" default:"8080"`

	BcryptCost       int           `envconfig:"BCRYPT_COST" default:"10"`
	SessionTTL       time.Duration `envconfig:"SESSION_TTL" default:"30m"`
	CookieSecure     bool          `envconfig:"COOKIE_SECURE" default:"false"`
	CSRFEnabled      bool          `envconfig:"CSRF_ENABLED" default:"true"`
	CORSOrigin       string        `envconfig:"CORS_ALLOWED_ORIGIN"`
	LoginSuccessPath string        `envconfig:"LOGIN_SUCCESS_PATH" default:"/dashboard"`

	// SeedUsers is a list of username:password:ROLE entries.
	SeedUsers []string `envconfig:"SEED_USERS" default:"kiruthick:12345:USER,admin:admin123:ADMIN"`

	R2 R2Config `envconfig:"R2"`
}

// R2Config holds the optional object storage target for exported rosters.
// Keys are read with the R2_ prefix of the parent field.
type R2Config struct {
	Bucket          string `envconfig:"BUCKET"`
	AccountID       string `envconfig:"ACCOUNT_ID"`
	PublicURL       string `envconfig:"PUBLIC_URL"`
	AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
	SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
}

// Enabled reports whether every R2 setting needed for uploads is present.
func (c R2Config) Enabled() bool {
	return c.Bucket != "" && c.AccountID != "" && c.PublicURL != "" &&
		c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// SeedUser is one parsed SEED_USERS entry.
type SeedUser struct {
	Username string
	Password string
	Role     string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that envconfig cannot express as tags.
func (c *Config) Validate() error {
	switch c.DBType {
	case "sqlite", "mongo", "dynamodb":
	case "postgres":
		if c.PostgresURL == "" {
			return fmt.Errorf("POSTGRES_URL is required when DB_TYPE=postgres")
		}
	default:
		return fmt.Errorf("DB_TYPE %q not supported", c.DBType)
	}
	if c.DBType == "mongo" && c.MongoURL == "" {
		return fmt.Errorf("MONGO_URL is required when DB_TYPE=mongo")
	}
	if c.BcryptCost < 10 || c.BcryptCost > 12 {
		return fmt.Errorf("BCRYPT_COST must be between 10 and 12, got %d", c.BcryptCost)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if !strings.HasPrefix(c.LoginSuccessPath, "/") {
		return fmt.Errorf("LOGIN_SUCCESS_PATH must be an absolute path")
	}
	if _, err := c.Seeds(); err != nil {
		return err
	}
	return nil
}

// Seeds parses SeedUsers. Passwords may contain ':'; the role is the last field.
func (c *Config) Seeds() ([]SeedUser, error) {
	if len(c.SeedUsers) == 0 {
		return nil, fmt.Errorf("SEED_USERS must define at least one user")
	}
	out := make([]SeedUser, 0, len(c.SeedUsers))
	for _, entry := range c.SeedUsers {
		entry = strings.TrimSpace(entry)
		first := strings.Index(entry, ":")
		last := strings.LastIndex(entry, ":")
		if first <= 0 || last == first || last == len(entry)-1 {
			return nil, fmt.Errorf("invalid SEED_USERS entry %q, want username:password:ROLE", entry)
		}
		out = append(out, SeedUser{
			Username: entry[:first],
			Password: entry[first+1 : last],
			Role:     strings.ToUpper(entry[last+1:]),
		})
	}
	return out, nil
}

// String masks credentials so the config can be logged at startup.
func (c *Config) String() string {
	return fmt.Sprintf("Config{DB: %s, Port: %s, BcryptCost: %d, SessionTTL: %s, CSRF: %t, Seeds: %d user(s), R2: %t}",
		c.DBType, c.Port, c.BcryptCost, c.SessionTTL, c.CSRFEnabled, len(c.SeedUsers), c.R2.Enabled())
}
