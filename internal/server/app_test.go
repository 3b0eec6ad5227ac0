package server

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/storefront/internal/server/config"
	"github.com/dmitrijs2005/storefront/internal/server/mailer"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrHTTP = "127.0.0.1:0"
	return c
}

func TestNewApp_MemoryDefaults(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)

	assert.IsType(t, &repomanager.MemoryRepositoryManager{}, app.repos)
	assert.Nil(t, app.db)
	assert.Nil(t, app.redis)
	assert.NotNil(t, app.userService)
}

func TestNewApp_MailerSelection(t *testing.T) {
	app := &App{config: testConfig(), logger: newLogger("debug")}

	m, err := app.newMailer()
	require.NoError(t, err)
	assert.IsType(t, &mailer.LogMailer{}, m)

	app.config.SMTPHost = "smtp.example"
	m, err = app.newMailer()
	require.NoError(t, err)
	assert.IsType(t, &mailer.SMTPMailer{}, m)

	app.config.SMTPFrom = ""
	_, err = app.newMailer()
	assert.Error(t, err)
}

func TestNewApp_BadBackends(t *testing.T) {
	c := testConfig()
	c.DatabaseDSN = "postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1"
	_, err := NewApp(context.Background(), c)
	assert.ErrorContains(t, err, "db init error")

	c = testConfig()
	c.RedisAddr = "127.0.0.1:1"
	_, err = NewApp(context.Background(), c)
	assert.ErrorContains(t, err, "failed to connect to redis")
}

func TestNewLogger_FallsBackToInfo(t *testing.T) {
	assert.NotNil(t, newLogger("verbose"))
}

func TestRun_StopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
