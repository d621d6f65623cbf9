package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sndservices/snd-crm-backend/internal/database/repository"
	"github.com/sndservices/snd-crm-backend/internal/models"
)

var (
	// ErrPhoneExists is returned when a client with the phone already exists
	ErrPhoneExists = errors.New("client with this phone number already exists")
	// ErrClientNotFound is returned when no client matches the lookup
	ErrClientNotFound = errors.New("client not found")
)

const clientCacheTTL = 10 * time.Minute

// ClientService owns client business logic: per-branch numbering happens in
// the repository transaction, duplicate-phone checks and caching happen here.
type ClientService struct {
	clientRepo *repository.ClientRepository
	branchRepo *repository.BranchRepository
	cache      Cache
}

func NewClientService(clientRepo *repository.ClientRepository, branchRepo *repository.BranchRepository, cache Cache) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		branchRepo: branchRepo,
		cache:      cache,
	}
}

// Create validates and creates a new client, assigning the next client
// number within the branch.
func (s *ClientService) Create(ctx context.Context, client *models.Client) (*models.Client, error) {
	if _, err := s.branchRepo.GetByID(client.BranchID); err != nil {
		return nil, fmt.Errorf("branch not found: %w", err)
	}

	exists, err := s.clientRepo.CheckPhoneExists(client.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to check phone: %w", err)
	}
	if exists {
		return nil, ErrPhoneExists
	}

	if err := s.clientRepo.Create(client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	cacheDel(ctx, s.cache, branchClientsCacheKey(client.BranchID))
	return client, nil
}

// GetByID fetches a single client, cache-aside
func (s *ClientService) GetByID(ctx context.Context, id string) (*models.Client, error) {
	cacheKey := clientCacheKey(id)

	var cached models.Client
	if cacheGet(ctx, s.cache, cacheKey, &cached) {
		return &cached, nil
	}

	client, err := s.clientRepo.GetByID(id)
	if err != nil {
		return nil, ErrClientNotFound
	}

	cacheSet(ctx, s.cache, cacheKey, client, clientCacheTTL)
	return client, nil
}

// GetByBranch returns a paginated client listing for a branch with optional
// name/phone search. Paginated listings are not cached.
func (s *ClientService) GetByBranch(branchID string, page, pageSize int, search string) ([]models.Client, int64, error) {
	return s.clientRepo.GetByBranch(branchID, page, pageSize, search)
}

// Update modifies a client and invalidates its cache entries
func (s *ClientService) Update(ctx context.Context, id string, updates *models.Client) (*models.Client, error) {
	client, err := s.clientRepo.GetByID(id)
	if err != nil {
		return nil, ErrClientNotFound
	}

	if updates.Phone != "" && updates.Phone != client.Phone {
		exists, err := s.clientRepo.CheckPhoneExists(updates.Phone)
		if err != nil {
			return nil, fmt.Errorf("failed to check phone: %w", err)
		}
		if exists {
			return nil, ErrPhoneExists
		}
		client.Phone = updates.Phone
	}

	if updates.FirstName != "" {
		client.FirstName = updates.FirstName
	}
	if updates.LastName != "" {
		client.LastName = updates.LastName
	}
	if updates.Email != "" {
		client.Email = updates.Email
	}
	if updates.AltPhone != "" {
		client.AltPhone = updates.AltPhone
	}
	if updates.CompanyName != "" {
		client.CompanyName = updates.CompanyName
	}
	if updates.AdSource != "" {
		client.AdSource = updates.AdSource
	}
	client.AllowBilling = updates.AllowBilling
	client.TaxExempt = updates.TaxExempt

	if err := s.clientRepo.Update(client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	cacheDel(ctx, s.cache, clientCacheKey(id), branchClientsCacheKey(client.BranchID))
	return client, nil
}

// Delete removes a client and invalidates its cache entries
func (s *ClientService) Delete(ctx context.Context, id string) error {
	client, err := s.clientRepo.GetByID(id)
	if err != nil {
		return ErrClientNotFound
	}

	if err := s.clientRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	cacheDel(ctx, s.cache, clientCacheKey(id), branchClientsCacheKey(client.BranchID))
	return nil
}

func clientCacheKey(id string) string {
	return fmt.Sprintf("client:%s", id)
}

func branchClientsCacheKey(branchID string) string {
	return fmt.Sprintf("clients:branch:%s", branchID)
}
