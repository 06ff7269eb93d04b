package service

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/gamesurvey-backend/internal/config"
	"github.com/stemsi/gamesurvey-backend/internal/testutil"
	"golang.org/x/crypto/bcrypt"
)

var testLog = zerolog.New(io.Discard)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:  "test-secret",
		SessionTTL: time.Hour,
		BcryptCost: bcrypt.MinCost,
	}
}

func newTestAccountService() (*AccountService, *testutil.Accounts) {
	accounts := testutil.NewAccounts()
	auth := NewAuthService(testConfig(), testutil.NewSessions())
	return NewAccountService(accounts, auth, testLog), accounts
}
