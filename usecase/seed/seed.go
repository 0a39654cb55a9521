package seed

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/todoledger/domain"
	"github.com/fastygo/todoledger/repository"
	"github.com/fastygo/todoledger/usecase"
)

// BossEmail is the seeded user every seeded task is created by.
const BossEmail = "bobby.da.boss@example.com"

// Dataset is what a Bootstrap transaction inserted.
type Dataset struct {
	Users []domain.User `json:"users"`
	Tasks []domain.Task `json:"tasks"`
}

// Seeder inserts the demo dataset with one batch call per store.
type Seeder struct {
	users  repository.UserRepository
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(users repository.UserRepository, tasks repository.TaskRepository, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		users:  users,
		tasks:  tasks,
		logger: logger,
	}
}

func (s *Seeder) Bootstrap(ctx context.Context, txn domain.Bootstrap) (*Dataset, error) {
	data := Build(txn.Timestamp)

	if err := s.users.AddAll(ctx, data.Users); err != nil {
		s.logger.Error("bootstrap users failed", zap.Int("count", len(data.Users)), zap.Error(err))
		return nil, err
	}
	if err := s.tasks.AddAll(ctx, data.Tasks); err != nil {
		s.logger.Error("bootstrap tasks failed", zap.Int("count", len(data.Tasks)), zap.Error(err))
		return nil, err
	}

	s.logger.Info("bootstrap complete",
		zap.Int("users", len(data.Users)),
		zap.Int("tasks", len(data.Tasks)),
	)
	return data, nil
}

// SeedIfEmpty runs Bootstrap only when the participant store holds no users.
func (s *Seeder) SeedIfEmpty(ctx context.Context, txn domain.Bootstrap) (bool, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		s.logger.Debug("bootstrap skipped", zap.Int("users", count))
		return false, nil
	}
	if _, err := s.Bootstrap(ctx, txn); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Seeder) Register(d *usecase.Dispatcher) {
	d.RegisterCommand(domain.KindBootstrap, usecase.Handle(s.Bootstrap))
}

// Build returns the demo dataset stamped with the given time.
func Build(at time.Time) *Dataset {
	users := []domain.User{
		{Email: BossEmail, FirstName: "Bobby", LastName: "Da Boss", Password: "u talkin' to me?"},
		{Email: "catwoman@example.com", FirstName: "Selina", LastName: "Kyle", Password: "they may chase me, but they'll never catch me!"},
		{Email: "batman@example.com", FirstName: "Bruce", LastName: "Wayne", Password: "holy blockchain, robin!"},
		{Email: "superman@example.com", FirstName: "Clark", LastName: "Kent", Password: "up, up, and away!"},
		{Email: "spiderman@example.com", FirstName: "Peter", LastName: "Parker", Password: "itsy bitsy spider climbed up the water spout"},
	}
	for i := range users {
		users[i].CreatedAt = at
	}

	tasks := []domain.Task{
		{Name: "Build a Bat Mobile!", State: domain.TaskInactive, Duration: domain.DurationLong, Energy: domain.EnergyNormal, Location: "Wayne Manor, Gotham City"},
		{Name: "Save Lois Lane!", State: domain.TaskInactive, Duration: domain.DurationFourHours, Energy: domain.EnergyHigh, Location: "LexCorp Towers"},
		{Name: "Buy a gift for Mary Jane!", State: domain.TaskInactive, Duration: domain.DurationTwoHours, Energy: domain.EnergyLow, Location: "Forest Hills, New York"},
		{Name: "Steal Cataran diamond!", State: domain.TaskInactive, Duration: domain.DurationThirtyMinutes, Energy: domain.EnergyHigh, Location: "Spiffany's Jewelry Store, Gotham City"},
		{Name: "Keep the super heroes busy", State: domain.TaskActive, Duration: domain.DurationLong, Energy: domain.EnergyLow, Location: "Wynn Tower, Las Vegas"},
	}
	boss := domain.UserRef(BossEmail)
	for i := range tasks {
		tasks[i].ID = fmt.Sprintf("Task-%d", i+1)
		tasks[i].CreatedBy = boss
		tasks[i].CreatedAt = at
	}

	return &Dataset{Users: users, Tasks: tasks}
}
