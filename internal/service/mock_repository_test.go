package service

import (
	"context"

	"github.com/AbhishekS200607/quickaid/internal/model"
	"github.com/AbhishekS200607/quickaid/internal/repository"

	"github.com/stretchr/testify/mock"
)

type mockContactRepository struct {
	mock.Mock
}

var _ repository.ContactRepository = (*mockContactRepository)(nil)

func (m *mockContactRepository) Find(ctx context.Context, q model.ContactQuery) ([]model.Contact, error) {
	args := m.Called(ctx, q)
	contacts, _ := args.Get(0).([]model.Contact)
	return contacts, args.Error(1)
}

func (m *mockContactRepository) DistinctCities(ctx context.Context, verified bool, exclude string) ([]string, error) {
	args := m.Called(ctx, verified, exclude)
	cities, _ := args.Get(0).([]string)
	return cities, args.Error(1)
}

func (m *mockContactRepository) Create(ctx context.Context, contact *model.Contact) error {
	return m.Called(ctx, contact).Error(0)
}

func (m *mockContactRepository) SetVerified(ctx context.Context, id string, verified bool) error {
	return m.Called(ctx, id, verified).Error(0)
}

func (m *mockContactRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockContactRepository) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
