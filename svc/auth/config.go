package auth

import "time"

// Config holds the auth settings loaded from the environment.
type Config struct {
	TokenSecret string        `env:"AUTH_TOKEN_SECRET,required"`       // TokenSecret signs identity tokens.
	TokenTTL    time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"2h"`   // TokenTTL is the lifetime of issued tokens.
	BcryptCost  int           `env:"AUTH_BCRYPT_COST" envDefault:"10"` // BcryptCost is the password hashing cost.
}
