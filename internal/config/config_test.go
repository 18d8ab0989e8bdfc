package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiry.Duration())
	assert.Equal(t, 60*time.Second, cfg.CacheTTL)
	assert.Equal(t, "feedback", cfg.AMQPExchange)
	assert.Equal(t, ":3000", cfg.Addr())
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRY", "90m")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("REDIS_DB", "2")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 90*time.Minute, cfg.JWTExpiry.Duration())
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 2, cfg.RedisDB)
}

func TestExpiry_Decode(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "7d", want: 7 * 24 * time.Hour},
		{in: "1d", want: 24 * time.Hour},
		{in: "12h", want: 12 * time.Hour},
		{in: "0d", wantErr: true},
		{in: "-5m", wantErr: true},
		{in: "xd", wantErr: true},
		{in: "soon", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var e Expiry
			err := e.Decode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Duration())
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	c := &Config{DBDriver: "mysql", DBUser: "u", DBPassword: "p", DBHost: "h", DBName: "fb"}
	assert.Equal(t, "u:p@tcp(h:3306)/fb?parseTime=true&loc=UTC&charset=utf8mb4", c.DSN())

	c.DBDriver = "postgres"
	assert.Contains(t, c.DSN(), "host=h user=u password=p dbname=fb port=5432")

	c.DBDriver = "sqlite"
	assert.Equal(t, "fb.db", c.DSN())

	c.DBDSN = "explicit"
	assert.Equal(t, "explicit", c.DSN())
}
