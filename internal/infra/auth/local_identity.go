package auth

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"releaf/internal/domain/entity"
	"releaf/internal/domain/service"
	"releaf/internal/errors"
)

// Account is one entry in the local accounts file.
type Account struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"passwordHash"`
}

// LocalIdentity authenticates against a JSON accounts file with bcrypt password
// hashes. It exists so development installs can sign in without Firebase.
type LocalIdentity struct {
	accounts map[string]Account // keyed by lowercased email
	hasher   service.PasswordHasher
	tokens   *localTokenService
}

// NewLocalIdentity loads the accounts file and wires the password hasher and
// token service together.
func NewLocalIdentity(accountsPath string, hasher service.PasswordHasher, tokens *localTokenService) (*LocalIdentity, error) {
	data, err := os.ReadFile(accountsPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read accounts file")
	}

	var accounts []Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, errors.Wrap(err, "failed to parse accounts file")
	}

	byEmail := make(map[string]Account, len(accounts))
	for _, account := range accounts {
		byEmail[strings.ToLower(account.Email)] = account
	}

	return &LocalIdentity{
		accounts: byEmail,
		hasher:   hasher,
		tokens:   tokens,
	}, nil
}

// SignIn checks the credentials and returns a signed session token plus the
// session it asserts. The same generic error covers unknown accounts and wrong
// passwords.
func (l *LocalIdentity) SignIn(_ context.Context, email, password string) (string, entity.Session, error) {
	account, ok := l.accounts[strings.ToLower(email)]
	if !ok {
		return "", entity.Anonymous(), errors.WithStack(service.ErrBadCredentials)
	}

	if !l.hasher.Check(password, account.PasswordHash) {
		return "", entity.Anonymous(), errors.WithStack(service.ErrBadCredentials)
	}

	session := entity.Session{
		UserID: account.ID,
		Name:   account.Name,
		Email:  account.Email,
	}

	token, err := l.tokens.IssueToken(session)
	if err != nil {
		return "", entity.Anonymous(), err
	}

	return token, session, nil
}
