package session

import (
	"os"
	"path/filepath"
	"slices"
	"sync/atomic"
	"time"

	"gopkg.in/yaml.v3"
)

// AdminRole is the role marker the backend puts on administrator accounts.
const AdminRole = "ROLE_ADMIN"

// Identity is the denormalized user snapshot stored next to the credential
// so commands can render "who am I" without re-decoding the token.
type Identity struct {
	ID       string   `yaml:"id" json:"id"`
	Username string   `yaml:"username" json:"username"`
	Email    string   `yaml:"email" json:"email"`
	Roles    []string `yaml:"roles" json:"roles"`
}

// PendingRegistration is the transient state of a multi-step signup.
// The password is deliberately not part of it; it is collected only at
// the final step and never written to disk.
type PendingRegistration struct {
	RegistrationID string `yaml:"registration_id"`
	Email          string `yaml:"email"`
}

// Store is the single source of truth for "is someone logged in, and as
// whom". Everything else in the CLI goes through this interface instead of
// touching the session files directly.
type Store interface {
	// SaveSession persists the credential and identity, overwriting any
	// prior session unconditionally.
	SaveSession(credential string, identity Identity) error
	// Credential returns the stored bearer credential. Absence (or
	// unreadable storage) is signaled by ok=false, never by an error.
	Credential() (credential string, ok bool)
	// Identity returns the stored identity snapshot.
	Identity() (identity Identity, ok bool)
	// IsAuthenticated is true iff a credential is present and unexpired.
	IsAuthenticated() bool
	// IsAdmin is true iff the identity carries the administrator role.
	IsAdmin() bool
	// ClearSession removes credential and identity. Idempotent.
	ClearSession() error
	// AuthorizationHeader returns the value for the Authorization header,
	// or "" when there is no usable (present, unexpired) credential.
	AuthorizationHeader() string
	// Generation is bumped on every save/clear. A response obtained under
	// an older generation must not be applied to authenticated-only output.
	Generation() uint64

	SavePendingRegistration(reg PendingRegistration) error
	PendingRegistration() (reg PendingRegistration, ok bool)
	ClearPendingRegistration() error
}

const (
	sessionFileName      = "session.yaml"
	registrationFileName = "registration.yaml"
)

type sessionFile struct {
	Credential string   `yaml:"credential"`
	Identity   Identity `yaml:"identity"`
}

// FileStore keeps the session in YAML files under a directory,
// ~/.blogctl by default. It is the browser-storage analog: the session
// file survives between invocations, the registration file only until
// the signup flow completes or is abandoned.
type FileStore struct {
	dir string
	now func() time.Time
	gen atomic.Uint64
}

// NewFileStore creates a store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir, now: time.Now}
}

func (s *FileStore) sessionPath() string {
	return filepath.Join(s.dir, sessionFileName)
}

func (s *FileStore) registrationPath() string {
	return filepath.Join(s.dir, registrationFileName)
}

func (s *FileStore) readSession() (sessionFile, bool) {
	data, err := os.ReadFile(s.sessionPath())
	if err != nil {
		return sessionFile{}, false
	}
	var f sessionFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		// Corrupt storage reads as "no session".
		return sessionFile{}, false
	}
	if f.Credential == "" {
		return sessionFile{}, false
	}
	return f, true
}

func (s *FileStore) write(path string, v any) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func (s *FileStore) SaveSession(credential string, identity Identity) error {
	if err := s.write(s.sessionPath(), sessionFile{Credential: credential, Identity: identity}); err != nil {
		return err
	}
	s.gen.Add(1)
	return nil
}

func (s *FileStore) Credential() (string, bool) {
	f, ok := s.readSession()
	if !ok {
		return "", false
	}
	return f.Credential, true
}

func (s *FileStore) Identity() (Identity, bool) {
	f, ok := s.readSession()
	if !ok {
		return Identity{}, false
	}
	return f.Identity, true
}

func (s *FileStore) IsAuthenticated() bool {
	cred, ok := s.Credential()
	return ok && !credentialExpired(cred, s.now())
}

func (s *FileStore) IsAdmin() bool {
	identity, ok := s.Identity()
	return ok && slices.Contains(identity.Roles, AdminRole)
}

func (s *FileStore) ClearSession() error {
	err := os.Remove(s.sessionPath())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	s.gen.Add(1)
	return nil
}

func (s *FileStore) AuthorizationHeader() string {
	cred, ok := s.Credential()
	if !ok || credentialExpired(cred, s.now()) {
		return ""
	}
	return "Bearer " + cred
}

func (s *FileStore) Generation() uint64 {
	return s.gen.Load()
}

func (s *FileStore) SavePendingRegistration(reg PendingRegistration) error {
	return s.write(s.registrationPath(), reg)
}

func (s *FileStore) PendingRegistration() (PendingRegistration, bool) {
	data, err := os.ReadFile(s.registrationPath())
	if err != nil {
		return PendingRegistration{}, false
	}
	var reg PendingRegistration
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return PendingRegistration{}, false
	}
	if reg.RegistrationID == "" {
		return PendingRegistration{}, false
	}
	return reg, true
}

func (s *FileStore) ClearPendingRegistration() error {
	err := os.Remove(s.registrationPath())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
