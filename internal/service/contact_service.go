package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/AbhishekS200607/quickaid/internal/model"
	"github.com/AbhishekS200607/quickaid/internal/repository"
)

// cityAllQuery is the query value that disables the city filter
const cityAllQuery = "all"

// ContactService defines the public and moderation operations on contacts
type ContactService interface {
	ListPublic(ctx context.Context, city string) ([]model.Contact, error)
	ListCities(ctx context.Context) ([]string, error)
	Submit(ctx context.Context, req model.SubmitContactRequest) (*model.Contact, error)

	// Admin methods
	ListPending(ctx context.Context) ([]model.Contact, error)
	Approve(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error

	Ping(ctx context.Context) error
}

type contactService struct {
	repo repository.ContactRepository
}

// NewContactService creates a new ContactService
func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactService{repo: repo}
}

// PublicQuery shapes the store query for the public listing
func PublicQuery(city string) model.ContactQuery {
	q := model.ContactQuery{Verified: true, OrderBy: model.OrderByUpvotes}
	if city != "" && city != cityAllQuery {
		q.CityIn = []string{city, model.CityAll}
	}
	return q
}

// PendingQuery shapes the store query for the moderation queue
func PendingQuery() model.ContactQuery {
	return model.ContactQuery{Verified: false, OrderBy: model.OrderByCreatedAt}
}

func (s *contactService) ListPublic(ctx context.Context, city string) ([]model.Contact, error) {
	contacts, err := s.repo.Find(ctx, PublicQuery(city))
	if err != nil {
		return nil, fmt.Errorf("failed to list verified contacts: %w", err)
	}
	return nonNil(contacts), nil
}

func (s *contactService) ListCities(ctx context.Context) ([]string, error) {
	cities, err := s.repo.DistinctCities(ctx, true, model.CityAll)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	out := make([]string, 0, len(cities))
	for _, city := range cities {
		if city != model.CityAll {
			out = append(out, city)
		}
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

func (s *contactService) Submit(ctx context.Context, req model.SubmitContactRequest) (*model.Contact, error) {
	contact, err := SanitizeSubmission(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to store submission: %w", err)
	}
	return contact, nil
}

func (s *contactService) ListPending(ctx context.Context) ([]model.Contact, error) {
	contacts, err := s.repo.Find(ctx, PendingQuery())
	if err != nil {
		return nil, fmt.Errorf("failed to list pending contacts: %w", err)
	}
	return nonNil(contacts), nil
}

func (s *contactService) Approve(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return repository.ErrContactNotFound
	}
	if err := s.repo.SetVerified(ctx, id, true); err != nil {
		return fmt.Errorf("failed to approve contact %s: %w", id, err)
	}
	return nil
}

func (s *contactService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return repository.ErrContactNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete contact %s: %w", id, err)
	}
	return nil
}

func (s *contactService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// nonNil keeps empty listings encoding as [] rather than null
func nonNil(contacts []model.Contact) []model.Contact {
	if contacts == nil {
		return []model.Contact{}
	}
	return contacts
}
