// Package permission loads commander permission tiers from a YAML file.
//
// File layout:
//
//	groups:
//	  default:
//	    permissions: [delegate.use]
//	  admin:
//	    inherit: [default]
//	    permissions: ["delegate.*"]
//	users:
//	  alice:
//	    groups: [admin]
//	    permissions: [calc.run]
//
// Users not listed receive the permissions of the "default" group.
package permission

import (
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	dlgerror "github.com/PolyRocketMatt/Delegate-sub000/foundation/core/error"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/command"
	"github.com/PolyRocketMatt/Delegate-sub000/pkg/core/logging"
)

// DefaultGroup is applied to users without an entry
const DefaultGroup = "default"

// Group is a named set of tiers
type Group struct {
	Permissions []string `yaml:"permissions"`
	Inherit     []string `yaml:"inherit"`
}

// User assigns groups and direct tiers to a commander
type User struct {
	Groups      []string `yaml:"groups"`
	Permissions []string `yaml:"permissions"`
}

// File is the YAML document
type File struct {
	Groups map[string]Group `yaml:"groups"`
	Users  map[string]User  `yaml:"users"`
}

// Store resolves commanders against a permission file. It is safe for
// concurrent use and may be reloaded while in use.
type Store struct {
	mu       sync.RWMutex
	path     string
	users    map[string][]command.Permission
	defaults []command.Permission
	logger   *logging.Logger

	watchMu  sync.Mutex
	watching bool
}

// New creates an empty store; every commander is denied everything
func New(logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Store{
		users:  make(map[string][]command.Permission),
		logger: logger.With("component", "permissions"),
	}
}

// Load reads the permission file at path
func Load(path string, logger *logging.Logger) (*Store, error) {
	s := New(logger)
	s.path = path
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the file backing the store
func (s *Store) Path() string {
	return s.path
}

// Reload re-reads the backing file. On error the previous state is kept.
func (s *Store) Reload() error {
	if s.path == "" {
		return dlgerror.New("permission store has no file").WithCode(dlgerror.CodeConfigError)
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return dlgerror.Wrap(err, "failed to read permission file").
			WithCode(dlgerror.CodeConfigError).
			WithDetail("path", s.path)
	}
	if err := s.Parse(data); err != nil {
		return err
	}
	s.logger.Info("Permissions loaded", "path", s.path, "users", s.userCount())
	return nil
}

// Parse replaces the store content with a YAML document
func (s *Store) Parse(data []byte) error {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return dlgerror.Wrap(err, "invalid permission file").WithCode(dlgerror.CodeInvalidConfig)
	}

	users, defaults, err := file.resolve()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.users = users
	s.defaults = defaults
	s.mu.Unlock()
	return nil
}

// Permissions returns the resolved tiers of a commander
func (s *Store) Permissions(name string) []command.Permission {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tiers, ok := s.users[strings.ToLower(name)]
	if !ok {
		tiers = s.defaults
	}
	return append([]command.Permission(nil), tiers...)
}

// Users returns the names of all listed commanders
func (s *Store) Users() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.users))
	for name := range s.users {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Commander returns a commander backed by the store. Its tiers follow
// later reloads.
func (s *Store) Commander(name string) command.Commander {
	return &storeCommander{name: name, store: s}
}

func (s *Store) has(name string, tier command.Permission) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tiers, ok := s.users[strings.ToLower(name)]
	if !ok {
		tiers = s.defaults
	}
	for _, granted := range tiers {
		if command.Grants(granted, tier) {
			return true
		}
	}
	return false
}

func (s *Store) userCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

type storeCommander struct {
	name  string
	store *Store
}

func (c *storeCommander) Identifier() string { return c.name }

func (c *storeCommander) HasPermission(tier command.Permission) bool {
	return c.store.has(c.name, tier)
}

// resolve flattens group inheritance into per-user tier sets
func (f File) resolve() (map[string][]command.Permission, []command.Permission, error) {
	groups := make(map[string]Group, len(f.Groups))
	for name, g := range f.Groups {
		groups[strings.ToLower(name)] = g
	}

	cache := make(map[string][]string)
	var expand func(name string, visiting map[string]bool) ([]string, error)
	expand = func(name string, visiting map[string]bool) ([]string, error) {
		if tiers, ok := cache[name]; ok {
			return tiers, nil
		}
		g, ok := groups[name]
		if !ok {
			return nil, dlgerror.Newf("unknown permission group %q", name).
				WithCode(dlgerror.CodeInvalidConfig).
				WithDetail("group", name)
		}
		if visiting[name] {
			return nil, dlgerror.Newf("permission group %q has cyclic inheritance", name).
				WithCode(dlgerror.CodeInvalidConfig).
				WithDetail("group", name)
		}
		visiting[name] = true
		defer delete(visiting, name)

		tiers := append([]string(nil), g.Permissions...)
		for _, parent := range g.Inherit {
			inherited, err := expand(strings.ToLower(parent), visiting)
			if err != nil {
				return nil, err
			}
			tiers = append(tiers, inherited...)
		}
		cache[name] = tiers
		return tiers, nil
	}

	var defaults []command.Permission
	if _, ok := groups[DefaultGroup]; ok {
		tiers, err := expand(DefaultGroup, map[string]bool{})
		if err != nil {
			return nil, nil, err
		}
		defaults = normalize(tiers)
	}

	users := make(map[string][]command.Permission, len(f.Users))
	for name, u := range f.Users {
		tiers := append([]string(nil), u.Permissions...)
		for _, group := range u.Groups {
			inherited, err := expand(strings.ToLower(group), map[string]bool{})
			if err != nil {
				return nil, nil, err
			}
			tiers = append(tiers, inherited...)
		}
		users[strings.ToLower(name)] = normalize(tiers)
	}
	return users, defaults, nil
}

// normalize trims, deduplicates and sorts tiers
func normalize(tiers []string) []command.Permission {
	seen := make(map[string]bool, len(tiers))
	out := make([]command.Permission, 0, len(tiers))
	for _, t := range tiers {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, command.Permission(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
