package api

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/models"
)

// fakeDB is an in-memory stand-in for the gorm repositories. It runs the same
// model hooks and enforces the unique email indexes.
type fakeDB struct {
	mu       sync.Mutex
	clock    time.Time
	clients  map[string]models.Client
	projects map[string]models.Project
	users    map[string]models.User

	// When failErr is set, user lookups after the first failAfter ones fail.
	userLookups int
	failAfter   int
	failErr     error
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		clock:    time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
		clients:  map[string]models.Client{},
		projects: map[string]models.Project{},
		users:    map[string]models.User{},
	}
}

// tick returns a strictly increasing timestamp so ordering is deterministic.
func (db *fakeDB) tick() time.Time {
	db.clock = db.clock.Add(time.Second)
	return db.clock
}

func (db *fakeDB) stores() stores {
	return stores{
		clients:  fakeClients{db},
		projects: fakeProjects{db},
		users:    fakeUsers{db},
	}
}

type fakeClients struct{ db *fakeDB }

func (f fakeClients) withProjects(c models.Client) *models.Client {
	c.Projects = []models.Project{}
	for _, p := range sortedProjects(f.db.projects) {
		if p.ClientID == c.ID {
			c.Projects = append(c.Projects, p)
		}
	}
	return &c
}

func (f fakeClients) FindAll(ctx context.Context) ([]*models.Client, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	clients := make([]models.Client, 0, len(f.db.clients))
	for _, c := range f.db.clients {
		clients = append(clients, c)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].CreatedAt.After(clients[j].CreatedAt) })

	res := make([]*models.Client, 0, len(clients))
	for _, c := range clients {
		res = append(res, f.withProjects(c))
	}
	return res, nil
}

func (f fakeClients) FindByID(ctx context.Context, id string) (*models.Client, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	c, ok := f.db.clients[id]
	if !ok {
		return nil, nil
	}
	return f.withProjects(c), nil
}

func (f fakeClients) Add(ctx context.Context, client *models.Client) error {
	return f.save(client, true)
}

func (f fakeClients) Update(ctx context.Context, client *models.Client) error {
	return f.save(client, false)
}

func (f fakeClients) save(client *models.Client, create bool) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	if create {
		if err := client.BeforeCreate(nil); err != nil {
			return err
		}
	}
	if err := client.BeforeSave(nil); err != nil {
		return err
	}
	for id, other := range f.db.clients {
		if id != client.ID && other.Email == client.Email {
			return gorm.ErrDuplicatedKey
		}
	}

	now := f.db.tick()
	if create {
		client.CreatedAt = now
	}
	client.UpdatedAt = now

	stored := *client
	stored.Projects = nil
	f.db.clients[client.ID] = stored
	return nil
}

func (f fakeClients) Delete(ctx context.Context, id string) (bool, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	if _, ok := f.db.clients[id]; !ok {
		return false, nil
	}
	delete(f.db.clients, id)
	return true, nil
}

type fakeProjects struct{ db *fakeDB }

func sortedProjects(projects map[string]models.Project) []models.Project {
	res := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		res = append(res, p)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res
}

func (f fakeProjects) withClient(p models.Project) *models.Project {
	p.Client = nil
	if c, ok := f.db.clients[p.ClientID]; ok {
		p.Client = &c
	}
	return &p
}

func (f fakeProjects) FindAll(ctx context.Context, filter models.ProjectFilter) ([]*models.Project, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	res := []*models.Project{}
	for _, p := range sortedProjects(f.db.projects) {
		if filter.ClientID != "" && p.ClientID != filter.ClientID {
			continue
		}
		res = append(res, f.withClient(p))
	}
	return res, nil
}

func (f fakeProjects) FindByID(ctx context.Context, id string) (*models.Project, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	p, ok := f.db.projects[id]
	if !ok {
		return nil, nil
	}
	return f.withClient(p), nil
}

func (f fakeProjects) Add(ctx context.Context, project *models.Project) error {
	return f.save(project, true)
}

func (f fakeProjects) Update(ctx context.Context, project *models.Project) error {
	return f.save(project, false)
}

func (f fakeProjects) save(project *models.Project, create bool) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	if create {
		if err := project.BeforeCreate(nil); err != nil {
			return err
		}
	}
	if err := project.BeforeSave(nil); err != nil {
		return err
	}

	now := f.db.tick()
	if create {
		project.CreatedAt = now
	}
	project.UpdatedAt = now

	stored := *project
	stored.Client = nil
	f.db.projects[project.ID] = stored
	return nil
}

func (f fakeProjects) Delete(ctx context.Context, id string) (bool, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	if _, ok := f.db.projects[id]; !ok {
		return false, nil
	}
	delete(f.db.projects, id)
	return true, nil
}

type fakeUsers struct{ db *fakeDB }

func (f fakeUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	f.db.userLookups++
	if f.db.failErr != nil && f.db.userLookups > f.db.failAfter {
		return nil, f.db.failErr
	}

	u, ok := f.db.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f fakeUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range f.db.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (f fakeUsers) Add(ctx context.Context, user *models.User) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	if err := user.BeforeCreate(nil); err != nil {
		return err
	}
	if err := user.BeforeSave(nil); err != nil {
		return err
	}
	for _, other := range f.db.users {
		if other.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}

	now := f.db.tick()
	user.CreatedAt = now
	user.UpdatedAt = now
	f.db.users[user.ID] = *user
	return nil
}
