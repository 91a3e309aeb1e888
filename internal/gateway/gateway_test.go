package gateway

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/ironstrike-games/studio-api/internal/credentials"
	"github.com/ironstrike-games/studio-api/internal/store"
	"github.com/ironstrike-games/studio-api/types"
	"github.com/sirupsen/logrus"
)

// In-memory collaborators for gateway tests. They mirror the persistence
// contracts, including the zero-rows-is-success deletes and the role
// predicate on profile deletion.

type fakeProfileStore struct {
	profiles map[string]types.UserProfile

	insertErr error
	countErr  error
	listErr   error
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[string]types.UserProfile)}
}

func (f *fakeProfileStore) GetByID(ctx context.Context, id string) (types.UserProfile, error) {
	profile, ok := f.profiles[id]
	if !ok {
		return types.UserProfile{}, store.ErrNotFound
	}
	return profile, nil
}

func (f *fakeProfileStore) Count(ctx context.Context) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return len(f.profiles), nil
}

func (f *fakeProfileStore) Insert(ctx context.Context, profile types.UserProfile) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.profiles[profile.ID] = profile
	return nil
}

func (f *fakeProfileStore) UpdateNameAvatar(ctx context.Context, id, name, avatarURL string) error {
	profile, ok := f.profiles[id]
	if !ok {
		return store.ErrNotFound
	}
	profile.Name = name
	profile.AvatarURL = avatarURL
	f.profiles[id] = profile
	return nil
}

func (f *fakeProfileStore) ListAll(ctx context.Context) ([]types.UserProfile, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]types.UserProfile, 0, len(f.profiles))
	for _, profile := range f.profiles {
		out = append(out, profile)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JoinDate.Before(out[j].JoinDate) })
	return out, nil
}

// Delete refuses Admin rows the same way the SQL predicate does: the row is
// simply not matched, and the call still succeeds.
func (f *fakeProfileStore) Delete(ctx context.Context, id string) error {
	profile, ok := f.profiles[id]
	if !ok {
		return nil
	}
	if profile.Role == types.RoleAdmin {
		return nil
	}
	delete(f.profiles, id)
	return nil
}

type fakeGameStore struct {
	games map[string]types.Game

	listErr   error
	insertErr error
	updateErr error
	deleteErr error
}

func newFakeGameStore() *fakeGameStore {
	return &fakeGameStore{games: make(map[string]types.Game)}
}

func (f *fakeGameStore) List(ctx context.Context) ([]types.Game, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]types.Game, 0, len(f.games))
	for _, game := range f.games {
		out = append(out, game)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeGameStore) Insert(ctx context.Context, game types.Game) (types.Game, error) {
	if f.insertErr != nil {
		return types.Game{}, f.insertErr
	}
	game.ID = uuid.NewString()
	f.games[game.ID] = game
	return game, nil
}

func (f *fakeGameStore) Update(ctx context.Context, game types.Game) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.games[game.ID]; !ok {
		return store.ErrNotFound
	}
	f.games[game.ID] = game
	return nil
}

func (f *fakeGameStore) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.games, id)
	return nil
}

func (f *fakeGameStore) DeleteAllExcept(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for key := range f.games {
		if key != id {
			delete(f.games, key)
		}
	}
	return nil
}

type fakeChangelogStore struct {
	logs map[string]types.Changelog

	listErr   error
	insertErr error
	updateErr error
	deleteErr error
}

func newFakeChangelogStore() *fakeChangelogStore {
	return &fakeChangelogStore{logs: make(map[string]types.Changelog)}
}

func (f *fakeChangelogStore) ListByDateDesc(ctx context.Context) ([]types.Changelog, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]types.Changelog, 0, len(f.logs))
	for _, log := range f.logs {
		out = append(out, log)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (f *fakeChangelogStore) Insert(ctx context.Context, log types.Changelog) (types.Changelog, error) {
	if f.insertErr != nil {
		return types.Changelog{}, f.insertErr
	}
	log.ID = uuid.NewString()
	f.logs[log.ID] = log
	return log, nil
}

func (f *fakeChangelogStore) Update(ctx context.Context, log types.Changelog) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.logs[log.ID]; !ok {
		return store.ErrNotFound
	}
	f.logs[log.ID] = log
	return nil
}

func (f *fakeChangelogStore) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.logs, id)
	return nil
}

func (f *fakeChangelogStore) DeleteAllExcept(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for key := range f.logs {
		if key != id {
			delete(f.logs, key)
		}
	}
	return nil
}

// fakeCredentials issues one token per user and validates tokens by lookup.
type fakeCredentials struct {
	users     map[string]fakeCredential // keyed by email
	sessions  map[string]credentials.User
	confirmed bool

	signUpErr  error
	signInErr  error
	getUserErr error
	signOutErr error

	signedOut []string
}

type fakeCredential struct {
	user     credentials.User
	password string
}

func newFakeCredentials() *fakeCredentials {
	return &fakeCredentials{
		users:     make(map[string]fakeCredential),
		sessions:  make(map[string]credentials.User),
		confirmed: true,
	}
}

func (f *fakeCredentials) SignUp(ctx context.Context, email, password string, metadata map[string]string) (credentials.User, *credentials.Session, error) {
	if f.signUpErr != nil {
		return credentials.User{}, nil, f.signUpErr
	}
	if _, ok := f.users[email]; ok {
		return credentials.User{}, nil, credentials.ErrEmailTaken
	}

	user := credentials.User{ID: uuid.NewString(), Email: email, Metadata: metadata}
	f.users[email] = fakeCredential{user: user, password: password}
	if !f.confirmed {
		return user, nil, nil
	}
	return user, f.issue(user), nil
}

func (f *fakeCredentials) SignInWithPassword(ctx context.Context, email, password string) (*credentials.Session, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	cred, ok := f.users[email]
	if !ok || cred.password != password {
		return nil, credentials.ErrInvalidCredentials
	}
	return f.issue(cred.user), nil
}

func (f *fakeCredentials) GetUser(ctx context.Context, token string) (credentials.User, error) {
	if f.getUserErr != nil {
		return credentials.User{}, f.getUserErr
	}
	user, ok := f.sessions[token]
	if !ok {
		return credentials.User{}, credentials.ErrInvalidSession
	}
	return user, nil
}

func (f *fakeCredentials) SignOut(ctx context.Context, token string) error {
	f.signedOut = append(f.signedOut, token)
	if f.signOutErr != nil {
		return f.signOutErr
	}
	delete(f.sessions, token)
	return nil
}

func (f *fakeCredentials) issue(user credentials.User) *credentials.Session {
	token := fmt.Sprintf("token-%s", uuid.NewString())
	f.sessions[token] = user
	return &credentials.Session{Token: token, User: user}
}

type testGateway struct {
	gw         *Gateway
	profiles   *fakeProfileStore
	games      *fakeGameStore
	changelogs *fakeChangelogStore
	creds      *fakeCredentials
}

func newTestGateway(cfg Config) testGateway {
	profiles := newFakeProfileStore()
	games := newFakeGameStore()
	changelogs := newFakeChangelogStore()
	creds := newFakeCredentials()

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	return testGateway{
		gw:         New(cfg, profiles, games, changelogs, creds, nil, log),
		profiles:   profiles,
		games:      games,
		changelogs: changelogs,
		creds:      creds,
	}
}
