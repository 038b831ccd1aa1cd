package sessionsvc

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"github.com/trezcool/educonnect/core"
)

var NowFunc = time.Now // mockable

// userInfo is the file written by the web login.
type userInfo struct {
	Token string `json:"token"`
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FileStore reads the credential saved at login. The file is read on every call, so a new login
// is picked up without restarting.
type FileStore struct {
	path string
}

var _ core.CredentialStore = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Credential() (core.Credential, error) {
	data, err := ioutil.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return core.Credential{}, core.ErrNotAuthenticated
		}
		return core.Credential{}, errors.Wrap(err, "reading session file")
	}

	var info userInfo
	if err = json.Unmarshal(data, &info); err != nil {
		return core.Credential{}, errors.Wrap(err, "decoding session file")
	}
	cred := core.Credential{
		Token:  strings.TrimSpace(info.Token),
		UserID: info.ID,
		Name:   info.Name,
		Email:  info.Email,
	}
	return checked(cred)
}

// Save writes the credential the same way the web login does.
func (s *FileStore) Save(cred core.Credential) error {
	data, err := json.Marshal(userInfo{Token: cred.Token, ID: cred.UserID, Name: cred.Name, Email: cred.Email})
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}
	if err = os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return errors.Wrap(err, "creating session directory")
	}
	return errors.Wrap(ioutil.WriteFile(s.path, data, 0600), "writing session file")
}

// StaticStore serves a token given through the configuration or the command line.
type StaticStore struct {
	token string
}

var _ core.CredentialStore = (*StaticStore)(nil)

func NewStaticStore(token string) *StaticStore {
	return &StaticStore{token: strings.TrimSpace(token)}
}

func (s *StaticStore) Credential() (core.Credential, error) {
	return checked(core.Credential{Token: s.token})
}

// NewStore prefers the configured token over the session file.
func NewStore(conf *core.Config) core.CredentialStore {
	if conf.Session.Token != "" {
		return NewStaticStore(conf.Session.Token)
	}
	return NewFileStore(conf.Session.File)
}

// checked rejects a missing token, and a JWT whose expiry has passed.
// Tokens that are not JWTs are left for the backend to judge.
func checked(cred core.Credential) (core.Credential, error) {
	if cred.IsZero() {
		return core.Credential{}, core.ErrNotAuthenticated
	}

	claims := new(jwt.StandardClaims)
	if _, _, err := new(jwt.Parser).ParseUnverified(cred.Token, claims); err != nil {
		return cred, nil
	}
	if !claims.VerifyExpiresAt(NowFunc().Unix(), false) {
		return core.Credential{}, &core.AuthError{Message: core.SessionExpiredText}
	}
	if cred.UserID == "" {
		cred.UserID = claims.Subject
	}
	return cred, nil
}
