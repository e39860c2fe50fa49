package config

import (
	"strings"
	"testing"
)

func TestLoadDefaultsAndValidate(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	c := Load()
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if c.AppPort != "8080" || c.RedisDB != 0 {
		t.Fatalf("defaults: %+v", c)
	}
	if !strings.Contains(c.MySQLDSN(), "tcp(mysql:3306)/rapport") {
		t.Fatalf("dsn=%q", c.MySQLDSN())
	}
}

func TestValidate_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if err := Load().Validate(); err == nil {
		t.Fatal("want error for missing JWT_SECRET")
	}
}

func TestValidate_BadPort(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("MYSQL_PORT", "not-a-port")
	if err := Load().Validate(); err == nil {
		t.Fatal("want error for bad MYSQL_PORT")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SIGN_TOKEN_TTL_HOURS", "2")
	t.Setenv("BCRYPT_COST", "10")
	c := Load()
	if c.SignTokenTTL.Hours() != 2 {
		t.Fatalf("ttl=%v", c.SignTokenTTL)
	}
	if c.BcryptCost != 10 {
		t.Fatalf("cost=%d", c.BcryptCost)
	}
}
