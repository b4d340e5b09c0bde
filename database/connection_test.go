package database

import "testing"

func TestBuildDSNLocalTCP(t *testing.T) {
	dsn := buildDSN(dbConfig{
		User:     "postgres",
		Password: "secret",
		Name:     "faqbot",
		Host:     "localhost",
		Port:     "5432",
	})
	want := "host=localhost user=postgres password=secret dbname=faqbot port=5432 sslmode=disable"
	if dsn != want {
		t.Errorf("dsn = %q, want %q", dsn, want)
	}
}

func TestBuildDSNCloudSQLSocket(t *testing.T) {
	dsn := buildDSN(dbConfig{
		User:                   "postgres",
		Password:               "secret",
		Name:                   "faqbot",
		InstanceConnectionName: "project:region:instance",
	})
	want := "host=/cloudsql/project:region:instance user=postgres password=secret dbname=faqbot sslmode=disable"
	if dsn != want {
		t.Errorf("dsn = %q, want %q", dsn, want)
	}
}

func TestConfigFromEnvDefaults(t *testing.T) {
	for _, v := range []string{"DB_USER", "DB_PASS", "DB_NAME", "DB_HOST", "DB_PORT", "INSTANCE_CONNECTION_NAME"} {
		t.Setenv(v, "")
	}

	cfg := configFromEnv()
	if cfg.User != "postgres" || cfg.Name != "faqbot" || cfg.Host != "localhost" || cfg.Port != "5432" {
		t.Errorf("defaults wrong: %+v", cfg)
	}
}

func TestConfigFromEnvOverrides(t *testing.T) {
	t.Setenv("DB_USER", "faq")
	t.Setenv("DB_NAME", "faqdb")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6432")
	t.Setenv("INSTANCE_CONNECTION_NAME", "")

	cfg := configFromEnv()
	if cfg.User != "faq" || cfg.Name != "faqdb" || cfg.Host != "db.internal" || cfg.Port != "6432" {
		t.Errorf("overrides lost: %+v", cfg)
	}
}
