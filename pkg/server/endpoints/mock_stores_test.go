package endpoints

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/doodlesbykumbi/autocrud/pkg/definition"
	"github.com/doodlesbykumbi/autocrud/pkg/model"
	"github.com/doodlesbykumbi/autocrud/pkg/server/store"
)

// MockRecordsStore implements store.RecordsStore for testing using testify/mock
type MockRecordsStore struct {
	mock.Mock
}

func (m *MockRecordsStore) CreateRecord(modelName string, data model.JSONMap, ownerID *string) (*model.Record, error) {
	args := m.Called(modelName, data, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Record), args.Error(1)
}

func (m *MockRecordsStore) GetRecord(modelName string, id string) (*model.Record, error) {
	args := m.Called(modelName, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Record), args.Error(1)
}

func (m *MockRecordsStore) ListRecords(modelName string, opts store.ListOptions) ([]model.Record, error) {
	args := m.Called(modelName, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Record), args.Error(1)
}

func (m *MockRecordsStore) UpdateRecord(modelName string, id string, patch model.JSONMap, ownerField string) (*model.Record, error) {
	args := m.Called(modelName, id, patch, ownerField)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Record), args.Error(1)
}

func (m *MockRecordsStore) DeleteRecord(modelName string, id string) error {
	args := m.Called(modelName, id)
	return args.Error(0)
}

// MockUsersStore implements store.UsersStore for testing using testify/mock
type MockUsersStore struct {
	mock.Mock
}

func (m *MockUsersStore) GetUserByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUsersStore) CreateUser(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUsersStore) UpdatePasswordHash(email string, hash string) error {
	args := m.Called(email, hash)
	return args.Error(0)
}

func (m *MockUsersStore) CountUsers() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// MockModelFilesStore implements store.ModelFilesStore for testing using testify/mock
type MockModelFilesStore struct {
	mock.Mock
}

func (m *MockModelFilesStore) UpsertModelFile(file *model.ModelFile) error {
	args := m.Called(file)
	return args.Error(0)
}

func (m *MockModelFilesStore) ListModelFiles() ([]model.ModelFile, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ModelFile), args.Error(1)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func (m *MockHealthStore) CheckConnectivity() error {
	args := m.Called()
	return args.Error(0)
}

// MockProvisioner implements provision.Provisioner for testing using testify/mock
type MockProvisioner struct {
	mock.Mock
}

func (m *MockProvisioner) Provision(ctx context.Context, def *definition.Model) error {
	args := m.Called(def.Name)
	return args.Error(0)
}
